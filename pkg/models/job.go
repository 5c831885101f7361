package models

import (
	"strings"
	"time"
)

// JobStateType is the scheduler-reported state of a job at the moment it
// was observed.
type JobStateType int

const (
	JobStateUnknown JobStateType = iota // must be first

	// Job is waiting in the queue for resources.
	JobStatePending

	JobStateRunning

	// Job finished with a zero exit code.
	JobStateCompleted

	// Job finished with a non-zero exit code.
	JobStateFailed

	// Job was cancelled by the user or an administrator.
	JobStateCancelled

	// Job hit its wall-time limit.
	JobStateTimeout

	JobStateNodeFail
	JobStatePreempted
)

var jobStateNames = map[JobStateType]string{
	JobStateUnknown:   "UNKNOWN",
	JobStatePending:   "PENDING",
	JobStateRunning:   "RUNNING",
	JobStateCompleted: "COMPLETED",
	JobStateFailed:    "FAILED",
	JobStateCancelled: "CANCELLED",
	JobStateTimeout:   "TIMEOUT",
	JobStateNodeFail:  "NODE_FAIL",
	JobStatePreempted: "PREEMPTED",
}

func (s JobStateType) String() string {
	if name, ok := jobStateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// JobStateFromString maps a scheduler state string to a JobStateType.
// Qualified states such as "CANCELLED by jdoe" map to their base state.
func JobStateFromString(state string) JobStateType {
	fields := strings.Fields(strings.ToUpper(state))
	if len(fields) == 0 {
		return JobStateUnknown
	}
	for typ, name := range jobStateNames {
		if name == fields[0] {
			return typ
		}
	}
	return JobStateUnknown
}

// IsTerminal returns true if the given state signals the end of the
// lifecycle of a job and that no change in the state can be expected.
func (s JobStateType) IsTerminal() bool {
	switch s {
	case JobStateCompleted, JobStateFailed, JobStateCancelled,
		JobStateTimeout, JobStateNodeFail, JobStatePreempted:
		return true
	default:
		return false
	}
}

func (s JobStateType) IsRunning() bool {
	return s == JobStateRunning
}

// HasUsageData reports whether measured values (peak memory, consumed
// CPU time) are meaningful for a job in this state. Pending jobs have
// not run yet, so their measured fields are absent rather than zero.
func (s JobStateType) HasUsageData() bool {
	return s == JobStateRunning || s.IsTerminal()
}

func (s JobStateType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *JobStateType) UnmarshalText(text []byte) error {
	*s = JobStateFromString(string(text))
	return nil
}

// JobSnapshot is one job's resource picture at a single observation
// instant. It is assembled from the scheduler sources once per
// invocation and never mutated afterwards.
type JobSnapshot struct {
	JobID     string       `json:"job_id"`
	Name      string       `json:"name,omitempty"`
	User      string       `json:"user,omitempty"`
	State     JobStateType `json:"state"`
	Partition string       `json:"partition,omitempty"`

	NodeCount int `json:"node_count"`
	CPUCount  int `json:"cpu_count"`

	// MemoryRequested is the allocation in bytes. MemoryUsedPeak is nil
	// until the job has started producing usage data; zero is a valid
	// observed value.
	MemoryRequested uint64  `json:"memory_requested_bytes"`
	MemoryUsedPeak  *uint64 `json:"memory_used_peak_bytes"`

	// CPUTimeUsed is total consumed CPU seconds across all tasks, nil
	// while the job is pending.
	CPUTimeUsed *int64 `json:"cpu_time_used_seconds"`

	WallTimeElapsed int64 `json:"wall_time_elapsed_seconds"`
	// WallTimeLimit of zero means the job has no limit.
	WallTimeLimit int64 `json:"wall_time_limit_seconds"`

	SubmitTime *time.Time `json:"submit_time,omitempty"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	EndTime    *time.Time `json:"end_time,omitempty"`
}
