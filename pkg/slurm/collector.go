package slurm

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shanecorder/slurm-schmutz/pkg/models"
)

// Collector turns the raw sources into one canonical snapshot per job,
// applying the freshness policy: the live queue and step statistics win
// while a job is running, accounting wins once it has reached a
// terminal state.
type Collector struct {
	source DataSource
	clock  func() time.Time
}

func NewCollector(source DataSource) *Collector {
	return &Collector{source: source, clock: time.Now}
}

// WithClock fixes the collector's notion of "now"; used by tests.
func (c *Collector) WithClock(clock func() time.Time) *Collector {
	c.clock = clock
	return c
}

// Snapshot builds the observation for one job. A job missing from the
// queue falls through to accounting; a job missing from both is
// NotFound.
func (c *Collector) Snapshot(ctx context.Context, jobID string) (models.JobSnapshot, error) {
	row, err := c.source.QueueRow(ctx, jobID)
	if err != nil {
		// a dead queue source is survivable as long as accounting knows
		// the job
		log.Ctx(ctx).Warn().Err(err).Str("JobID", jobID).Msg("queue source unavailable")
	}

	if strings.TrimSpace(row) != "" {
		job, err := parseQueueRow(row, jobID, c.clock())
		if err != nil {
			return models.JobSnapshot{}, err
		}
		switch {
		case job.State == models.JobStatePending:
			// nothing has run yet, measured fields stay absent
			return job, nil
		case job.State.IsRunning():
			return c.withLiveUsage(ctx, job), nil
		}
		// queue reported a state the queue is not authoritative for,
		// fall through to accounting
	}

	out, err := c.source.Accounting(ctx, jobID)
	if err != nil {
		return models.JobSnapshot{}, err
	}
	if strings.TrimSpace(out) == "" {
		return models.JobSnapshot{}, models.NewBaseError("job %s not found", jobID).
			WithCode(models.NotFound).
			WithHint("the job may have aged out of the accounting window")
	}
	return parseAccounting(out, jobID)
}

// withLiveUsage merges sstat usage into a running job's snapshot. A
// failing live source degrades the snapshot instead of failing it.
func (c *Collector) withLiveUsage(ctx context.Context, job models.JobSnapshot) models.JobSnapshot {
	out, err := c.source.LiveStats(ctx, job.JobID)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("JobID", job.JobID).Msg("live stats unavailable")
		return job
	}
	usage, err := parseLiveStats(out)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("JobID", job.JobID).Msg("cannot parse live stats")
		return job
	}
	job.CPUTimeUsed = usage.CPUTimeUsed
	job.MemoryUsedPeak = usage.MemoryUsedPeak
	return job
}
