package slurm

import (
	"strings"

	"github.com/shanecorder/slurm-schmutz/pkg/models"
	"github.com/shanecorder/slurm-schmutz/pkg/units"
)

const sacctFormat = "JobID,JobName,User,State,Submit,Start,End,Elapsed,Timelimit," +
	"NNodes,NCPUs,ReqMem,MaxRSS,TotalCPU,Partition"

const sacctFieldCount = 15

// field positions in sacctFormat
const (
	sacctJobID = iota
	sacctJobName
	sacctUser
	sacctState
	sacctSubmit
	sacctStart
	sacctEnd
	sacctElapsed
	sacctTimelimit
	sacctNNodes
	sacctNCPUs
	sacctReqMem
	sacctMaxRSS
	sacctTotalCPU
	sacctPartition
)

// parseAccounting builds a complete snapshot from sacct pipe-rows.
// sacct prints the job record plus one row per step; the .batch step
// carries the usage peaks, the main record everything else.
func parseAccounting(out, jobID string) (models.JobSnapshot, error) {
	var mainParts, batchParts []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		switch parts[sacctJobID] {
		case jobID:
			mainParts = parts
		case jobID + ".batch":
			batchParts = parts
		}
	}
	if mainParts == nil {
		return models.JobSnapshot{}, models.NewBaseError("job %s not found in accounting", jobID).
			WithCode(models.NotFound)
	}
	if len(mainParts) < sacctFieldCount {
		return models.JobSnapshot{}, models.NewBaseError(
			"sacct row for job %s has %d fields, want %d", jobID, len(mainParts), sacctFieldCount).
			WithCode(models.MissingField)
	}

	job := models.JobSnapshot{
		JobID:     jobID,
		Name:      mainParts[sacctJobName],
		User:      mainParts[sacctUser],
		State:     models.JobStateFromString(mainParts[sacctState]),
		Partition: mainParts[sacctPartition],
		NodeCount: parseCount(mainParts[sacctNNodes]),
		CPUCount:  parseCount(mainParts[sacctNCPUs]),
	}
	job.SubmitTime = parseSlurmTime(mainParts[sacctSubmit])
	job.StartTime = parseSlurmTime(mainParts[sacctStart])
	job.EndTime = parseSlurmTime(mainParts[sacctEnd])

	if elapsed, err := units.ParseDuration(mainParts[sacctElapsed]); err == nil {
		job.WallTimeElapsed = elapsed
	}
	job.WallTimeLimit = parseLimit(mainParts[sacctTimelimit])
	job.MemoryRequested = parseRequestedMemory(mainParts[sacctReqMem], job.NodeCount, job.CPUCount)

	// usage peaks live on the batch step when one was recorded
	usageParts := mainParts
	if len(batchParts) >= sacctFieldCount {
		usageParts = batchParts
	}
	if !job.State.HasUsageData() {
		return job, nil
	}
	if mem, err := units.ParseOptionalSize(usageParts[sacctMaxRSS]); err == nil && mem != nil {
		job.MemoryUsedPeak = mem
	}
	if cpu := strings.TrimSpace(usageParts[sacctTotalCPU]); cpu != "" && cpu != units.Absent {
		if seconds, err := units.ParseDuration(cpu); err == nil {
			job.CPUTimeUsed = &seconds
		}
	}

	return job, nil
}

// parseRequestedMemory handles sacct's ReqMem notation where a trailing
// "n" means per node and a trailing "c" means per CPU.
func parseRequestedMemory(val string, nodes, cpus int) uint64 {
	val = strings.TrimSpace(val)
	if val == "" || val == units.Absent {
		return 0
	}

	multiplier := 1
	if strings.HasSuffix(val, "n") {
		multiplier = max(nodes, 1)
		val = strings.TrimSuffix(val, "n")
	} else if strings.HasSuffix(val, "c") {
		multiplier = max(cpus, 1)
		val = strings.TrimSuffix(val, "c")
	}

	size, err := units.ParseSize(val)
	if err != nil {
		return 0
	}
	return size * uint64(multiplier)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
