package models

import "strings"

// QuotaType categorises who or what a quota entry applies to.
type QuotaType int

const (
	QuotaTypeUnknown QuotaType = iota
	QuotaTypeUser
	QuotaTypeDirectory
	QuotaTypeDefaultUser
	QuotaTypeGroup
)

var quotaTypeNames = map[QuotaType]string{
	QuotaTypeUnknown:     "UNKNOWN",
	QuotaTypeUser:        "USER",
	QuotaTypeDirectory:   "DIRECTORY",
	QuotaTypeDefaultUser: "DEFAULT-USER",
	QuotaTypeGroup:       "GROUP",
}

func (t QuotaType) String() string {
	if name, ok := quotaTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

func QuotaTypeFromString(s string) QuotaType {
	s = strings.ToUpper(strings.TrimSpace(s))
	for typ, name := range quotaTypeNames {
		if name == s {
			return typ
		}
	}
	return QuotaTypeUnknown
}

func (t QuotaType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *QuotaType) UnmarshalText(text []byte) error {
	*t = QuotaTypeFromString(string(text))
	return nil
}

// QuotaEntry is one row of a storage quota report. A HardLimit of zero
// means the entry is unlimited and contributes 0% usage by definition.
type QuotaEntry struct {
	Type      QuotaType `json:"type"`
	AppliesTo string    `json:"applies_to"`
	Path      string    `json:"path"`
	Snapshot  string    `json:"snapshot,omitempty"`

	HardLimit     uint64  `json:"hard_limit_bytes"`
	SoftLimit     *uint64 `json:"soft_limit_bytes"`
	AdvisoryLimit *uint64 `json:"advisory_limit_bytes"`
	Used          uint64  `json:"used_bytes"`

	// ReductionRatio and EfficiencyRatio are carried through from the
	// source verbatim and never recomputed.
	ReductionRatio  *float64 `json:"reduction_ratio"`
	EfficiencyRatio *float64 `json:"efficiency_ratio"`
}

// UsagePct is used/hard expressed as a percentage. Unlimited entries
// report zero, never a division fault.
func (q QuotaEntry) UsagePct() float64 {
	if q.HardLimit == 0 {
		return 0
	}
	return float64(q.Used) / float64(q.HardLimit) * 100
}

// OverHardLimit reports whether usage has reached the hard limit.
func (q QuotaEntry) OverHardLimit() bool {
	return q.HardLimit > 0 && q.Used >= q.HardLimit
}

// OverSoftLimit reports whether usage has reached the soft limit, when
// one is set.
func (q QuotaEntry) OverSoftLimit() bool {
	return q.SoftLimit != nil && *q.SoftLimit > 0 && q.Used >= *q.SoftLimit
}
