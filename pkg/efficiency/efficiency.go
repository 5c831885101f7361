// Package efficiency derives CPU, memory and wall-time efficiency from
// a job snapshot and classifies each metric against the configured
// thresholds. Everything here is a pure function: the same snapshot and
// thresholds always produce the same result.
package efficiency

import (
	"github.com/shanecorder/slurm-schmutz/pkg/config"
	"github.com/shanecorder/slurm-schmutz/pkg/models"
)

// Classification is the tri-state rating of a single metric. Metrics
// that could not be computed (zero denominator, missing measurement)
// are Unknown and never drive recommendations.
type Classification int

const (
	Unknown Classification = iota
	Good
	Warning
	Bad
)

var classificationNames = map[Classification]string{
	Unknown: "UNKNOWN",
	Good:    "GOOD",
	Warning: "WARNING",
	Bad:     "BAD",
}

func (c Classification) String() string {
	if name, ok := classificationNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Result holds the derived metrics for exactly one snapshot. Nil
// percentages mean the metric could not be computed, which is not an
// error condition.
type Result struct {
	Job models.JobSnapshot `json:"job"`

	CPUEfficiencyPct    *float64 `json:"cpu_efficiency_pct"`
	MemoryEfficiencyPct *float64 `json:"memory_efficiency_pct"`
	TimeUsedPct         *float64 `json:"time_used_pct"`

	CPUClass    Classification `json:"cpu_class"`
	MemoryClass Classification `json:"memory_class"`
	TimeClass   Classification `json:"time_class"`

	Recommendations []string `json:"recommendations"`
}

// Time proximity ratings. The time metric has no configurable
// thresholds: nearing the wall-time limit is what degrades the rating.
const (
	timeWarningPct = 75.0
	timeBadPct     = 90.0
)

// Compute derives all metrics, classifications and recommendations for
// one job snapshot. Thresholds are read-only input.
func Compute(job models.JobSnapshot, th config.Thresholds) Result {
	r := Result{Job: job, Recommendations: []string{}}

	if job.CPUTimeUsed != nil && job.CPUCount > 0 && job.WallTimeElapsed > 0 {
		pct := 100 * float64(*job.CPUTimeUsed) / (float64(job.WallTimeElapsed) * float64(job.CPUCount))
		r.CPUEfficiencyPct = &pct
	}

	if job.MemoryUsedPeak != nil && job.MemoryRequested > 0 {
		pct := 100 * float64(*job.MemoryUsedPeak) / float64(job.MemoryRequested)
		r.MemoryEfficiencyPct = &pct
	}

	if job.WallTimeLimit > 0 {
		pct := 100 * float64(job.WallTimeElapsed) / float64(job.WallTimeLimit)
		r.TimeUsedPct = &pct
	}

	r.CPUClass = classify(r.CPUEfficiencyPct, th.CPUGood, th.CPUWarning)
	r.MemoryClass = classify(r.MemoryEfficiencyPct, th.MemoryGood, th.MemoryWarning)
	r.TimeClass = classifyTime(r.TimeUsedPct)

	r.Recommendations = recommend(r, th)
	return r
}

func classify(pct *float64, good, warning float64) Classification {
	if pct == nil {
		return Unknown
	}
	switch {
	case *pct >= good:
		return Good
	case *pct >= warning:
		return Warning
	default:
		return Bad
	}
}

// classifyTime rates time inversely: a job close to its limit is the
// one in trouble.
func classifyTime(pct *float64) Classification {
	if pct == nil {
		return Unknown
	}
	switch {
	case *pct > timeBadPct:
		return Bad
	case *pct > timeWarningPct:
		return Warning
	default:
		return Good
	}
}

// The advice strings are stable so that dashboards can match on them.
const (
	RecommendLessMemory = "Low memory usage; consider requesting less memory."
	RecommendFewerCPUs  = "Low CPU usage; consider requesting fewer CPUs or check for serial bottlenecks."
	RecommendTimeLimit  = "Approaching time limit."
)

// recommend applies the advice rules in a fixed order. Every rule that
// matches fires; unknown metrics never produce advice.
func recommend(r Result, th config.Thresholds) []string {
	recs := []string{}

	if r.MemoryEfficiencyPct != nil && *r.MemoryEfficiencyPct < th.MemoryWarning {
		recs = append(recs, RecommendLessMemory)
	}

	if r.CPUEfficiencyPct != nil && *r.CPUEfficiencyPct < th.CPUWarning {
		recs = append(recs, RecommendFewerCPUs)
	}

	if r.TimeUsedPct != nil && *r.TimeUsedPct > timeBadPct && r.Job.State.IsRunning() {
		recs = append(recs, RecommendTimeLimit)
	}

	return recs
}
