package quota

import (
	"fmt"

	"github.com/shanecorder/slurm-schmutz/pkg/config"
	"github.com/shanecorder/slurm-schmutz/pkg/models"
	"github.com/shanecorder/slurm-schmutz/pkg/render"
	"github.com/shanecorder/slurm-schmutz/pkg/units"
)

// Entry is one quota row in a report, the source entry plus its derived
// usage percentage.
type Entry struct {
	models.QuotaEntry
	UsagePct float64 `json:"usage_pct"`
}

// Summary holds the aggregate statistics of a report. They are always
// recomputed from the entries the view kept, never carried over from a
// wider view.
type Summary struct {
	TotalEntries    int     `json:"total_entries"`
	TotalHardBytes  uint64  `json:"total_hard_bytes"`
	TotalUsedBytes  uint64  `json:"total_used_bytes"`
	OverallUsagePct float64 `json:"overall_usage_pct"`
	OverHardCount   int     `json:"over_hard_count"`
	OverSoftCount   int     `json:"over_soft_count"`
	HighUsageCount  int     `json:"high_usage_count"`
	SkippedRows     int     `json:"skipped_rows"`
}

// Report is the finished result model handed to the renderer.
type Report struct {
	Title    string   `json:"title"`
	Summary  Summary  `json:"summary"`
	Quotas   []Entry  `json:"quotas"`
	Warnings []string `json:"warnings,omitempty"`

	// threshold used for row status hints, carried so that rendering
	// matches the summary's high-usage count
	highUsagePct float64
}

// Aggregator builds the three report views over a parsed quota file.
type Aggregator struct {
	cfg config.QuotaConfig
}

func NewAggregator(cfg config.QuotaConfig) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// Admin reports every entry.
func (a *Aggregator) Admin(parsed ParseResult) Report {
	return a.build("Storage Quota Report", parsed.Entries, parsed.Warnings)
}

// User reports the entries that apply to the named user, by exact
// match. Zero matches is a valid, empty report.
func (a *Aggregator) User(parsed ParseResult, name string) Report {
	var kept []models.QuotaEntry
	for _, e := range parsed.Entries {
		if e.AppliesTo == name {
			kept = append(kept, e)
		}
	}
	return a.build(fmt.Sprintf("Storage Quota Report for %s", name), kept, parsed.Warnings)
}

// Highlights reports the entries breaching either threshold: usage at
// or above usagePct, or a reported efficiency ratio below
// efficiencyPct when expressed as a percentage. Input order is kept.
func (a *Aggregator) Highlights(parsed ParseResult, usagePct, efficiencyPct float64) Report {
	var kept []models.QuotaEntry
	for _, e := range parsed.Entries {
		lowEfficiency := e.EfficiencyRatio != nil && *e.EfficiencyRatio*100 < efficiencyPct
		if e.UsagePct() >= usagePct || lowEfficiency {
			kept = append(kept, e)
		}
	}
	title := fmt.Sprintf("Quota Highlights (usage >= %.0f%% or efficiency < %.0f%%)", usagePct, efficiencyPct)
	return a.build(title, kept, parsed.Warnings)
}

func (a *Aggregator) build(title string, entries []models.QuotaEntry, warnings []string) Report {
	report := Report{
		Title:        title,
		Quotas:       make([]Entry, 0, len(entries)),
		Warnings:     warnings,
		highUsagePct: a.cfg.HighUsagePct,
	}

	var s Summary
	s.TotalEntries = len(entries)
	s.SkippedRows = len(warnings)
	for _, e := range entries {
		report.Quotas = append(report.Quotas, Entry{QuotaEntry: e, UsagePct: e.UsagePct()})

		s.TotalHardBytes += e.HardLimit
		s.TotalUsedBytes += e.Used
		if e.OverHardLimit() {
			s.OverHardCount++
		}
		if e.OverSoftLimit() {
			s.OverSoftCount++
		}
		if e.UsagePct() >= a.cfg.HighUsagePct {
			s.HighUsageCount++
		}
	}
	if s.TotalHardBytes > 0 {
		s.OverallUsagePct = float64(s.TotalUsedBytes) / float64(s.TotalHardBytes) * 100
	}
	report.Summary = s
	return report
}

// Document builds the tabular representation all non-JSON encodings
// share, so every format reports the same numbers.
func (r Report) Document() *render.Document {
	doc := &render.Document{
		Title: r.Title,
		Summary: []render.Pair{
			{Key: "Entries", Value: fmt.Sprintf("%d", r.Summary.TotalEntries)},
			{Key: "Hard Limit", Value: units.FormatSize(r.Summary.TotalHardBytes)},
			{Key: "Used", Value: units.FormatSize(r.Summary.TotalUsedBytes)},
			{Key: "Overall Usage", Value: fmt.Sprintf("%.1f%%", r.Summary.OverallUsagePct)},
			{Key: "Over Hard Limit", Value: fmt.Sprintf("%d", r.Summary.OverHardCount)},
			{Key: "Over Soft Limit", Value: fmt.Sprintf("%d", r.Summary.OverSoftCount)},
			{Key: "High Usage", Value: fmt.Sprintf("%d", r.Summary.HighUsageCount)},
		},
		Columns: []render.Column{
			{Name: "Type"},
			{Name: "Applies To"},
			{Name: "Path"},
			{Name: "Hard", AlignRight: true},
			{Name: "Used", AlignRight: true},
			{Name: "Usage", AlignRight: true},
			{Name: "Efficiency", AlignRight: true},
		},
		Warnings: r.Warnings,
	}

	for _, q := range r.Quotas {
		hard := units.Absent
		if q.HardLimit > 0 {
			hard = units.FormatSize(q.HardLimit)
		}
		eff := units.Absent
		if q.EfficiencyRatio != nil {
			eff = fmt.Sprintf("%.1f%%", *q.EfficiencyRatio*100)
		}
		pct := q.UsagePct
		doc.Rows = append(doc.Rows, render.Row{
			Cells: []string{
				q.Type.String(),
				q.AppliesTo,
				q.Path,
				hard,
				units.FormatSize(q.Used),
				fmt.Sprintf("%.1f%%", pct),
				eff,
			},
			Status: r.rowStatus(q),
			BarPct: &pct,
		})
	}
	return doc
}

func (r Report) rowStatus(q Entry) render.Status {
	high := r.highUsagePct
	if high == 0 {
		high = 80
	}
	switch {
	case q.OverHardLimit():
		return render.StatusBad
	case q.OverSoftLimit() || q.UsagePct >= high:
		return render.StatusWarning
	default:
		return render.StatusGood
	}
}
