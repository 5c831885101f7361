package slurm

import (
	"strings"

	"github.com/shanecorder/slurm-schmutz/pkg/models"
	"github.com/shanecorder/slurm-schmutz/pkg/units"
)

const sstatFormat = "JobID,AveCPU,MaxRSS,NTasks"

// LiveUsage is the measured half of a running job's snapshot. Fields
// stay nil when the step has not reported them yet, which is distinct
// from a measured zero.
type LiveUsage struct {
	CPUTimeUsed    *int64
	MemoryUsedPeak *uint64
}

// parseLiveStats extracts usage from sstat pipe-rows. The first row
// carrying data wins; sstat prints one row per step.
func parseLiveStats(out string) (LiveUsage, error) {
	var usage LiveUsage
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 3 {
			return LiveUsage{}, models.NewBaseError("sstat row has %d fields, want at least 3", len(parts)).
				WithCode(models.MissingField)
		}

		if cpu := strings.TrimSpace(parts[1]); cpu != "" && cpu != units.Absent {
			if seconds, err := units.ParseDuration(cpu); err == nil {
				usage.CPUTimeUsed = &seconds
			}
		}
		mem, err := units.ParseOptionalSize(parts[2])
		if err == nil && mem != nil {
			usage.MemoryUsedPeak = mem
		}

		if usage.CPUTimeUsed != nil || usage.MemoryUsedPeak != nil {
			break
		}
	}
	return usage, nil
}
