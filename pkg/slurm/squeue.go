package slurm

import (
	"strconv"
	"strings"
	"time"

	"github.com/shanecorder/slurm-schmutz/pkg/models"
	"github.com/shanecorder/slurm-schmutz/pkg/units"
)

// squeue pipe-row: name|user|state|submit|start|timeleft|nodes|cpus|memory|partition
const squeueFormat = "%j|%u|%T|%V|%S|%L|%D|%C|%m|%P"

const squeueFieldCount = 10

const slurmTimeLayout = "2006-01-02T15:04:05"

// parseQueueRow maps one squeue row to the scheduling half of a job
// snapshot. Usage fields stay absent; the live-stats adapter fills them
// for running jobs. now anchors the elapsed-time calculation.
func parseQueueRow(row, jobID string, now time.Time) (models.JobSnapshot, error) {
	parts := strings.Split(strings.TrimSpace(row), "|")
	if len(parts) < squeueFieldCount {
		return models.JobSnapshot{}, models.NewBaseError(
			"squeue row for job %s has %d fields, want %d", jobID, len(parts), squeueFieldCount).
			WithCode(models.MissingField)
	}

	job := models.JobSnapshot{
		JobID:     jobID,
		Name:      parts[0],
		User:      parts[1],
		State:     models.JobStateFromString(parts[2]),
		Partition: parts[9],
	}
	job.SubmitTime = parseSlurmTime(parts[3])
	job.StartTime = parseSlurmTime(parts[4])

	job.NodeCount = parseCount(parts[6])
	job.CPUCount = parseCount(parts[7])

	if mem, err := units.ParseOptionalSize(strings.TrimSuffix(parts[8], "n")); err == nil && mem != nil {
		job.MemoryRequested = *mem
	}

	timeLeft := parseLimit(parts[5])
	if job.State.IsRunning() && job.StartTime != nil {
		job.WallTimeElapsed = int64(now.Sub(*job.StartTime).Seconds())
		if job.WallTimeElapsed < 0 {
			job.WallTimeElapsed = 0
		}
		if timeLeft > 0 {
			job.WallTimeLimit = job.WallTimeElapsed + timeLeft
		}
	} else {
		job.WallTimeLimit = timeLeft
	}

	return job, nil
}

func parseSlurmTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	switch s {
	case "", "Unknown", "None", "N/A":
		return nil
	}
	t, err := time.ParseInLocation(slurmTimeLayout, s, time.Local)
	if err != nil {
		return nil
	}
	return &t
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseLimit turns a time-limit literal into seconds, with zero meaning
// no limit.
func parseLimit(s string) int64 {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "", "UNLIMITED", "NOT_SET", "INVALID", "PARTITION_LIMIT":
		return 0
	}
	seconds, err := units.ParseDuration(s)
	if err != nil {
		return 0
	}
	return seconds
}
