// Package slurm adapts the scheduler's command-line tools into
// canonical job snapshots. All subprocess execution sits behind the
// DataSource interface so the adapters and everything above them can be
// exercised against canned text.
package slurm

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shanecorder/slurm-schmutz/pkg/config"
	"github.com/shanecorder/slurm-schmutz/pkg/models"
)

// DataSource is one query per external source shape: the live queue,
// live step statistics and the accounting database.
type DataSource interface {
	// QueueRow returns the squeue pipe-row for a queued or running job,
	// or an empty string when the job is no longer in the queue.
	QueueRow(ctx context.Context, jobID string) (string, error)

	// LiveStats returns sstat pipe-rows with usage for a running job.
	LiveStats(ctx context.Context, jobID string) (string, error)

	// Accounting returns sacct pipe-rows for a job in any state.
	Accounting(ctx context.Context, jobID string) (string, error)
}

// CLISource shells out to the configured squeue/sstat/sacct binaries.
type CLISource struct {
	cfg config.SlurmConfig
}

var _ DataSource = (*CLISource)(nil)

func NewCLISource(cfg config.SlurmConfig) *CLISource {
	return &CLISource{cfg: cfg}
}

func (s *CLISource) QueueRow(ctx context.Context, jobID string) (string, error) {
	return s.run(ctx, s.cfg.SqueuePath, "-j", jobID, "--noheader", "-o", squeueFormat)
}

func (s *CLISource) LiveStats(ctx context.Context, jobID string) (string, error) {
	// sstat reports per step; the batch step carries the usage we want,
	// and plain job IDs work for jobs with a single step.
	out, err := s.run(ctx, s.cfg.SstatPath, "-j", jobID, "--noheader", "-P", "-o", sstatFormat)
	if err == nil && strings.TrimSpace(out) != "" {
		return out, nil
	}
	return s.run(ctx, s.cfg.SstatPath, "-j", jobID+".batch", "--noheader", "-P", "-o", sstatFormat)
}

func (s *CLISource) Accounting(ctx context.Context, jobID string) (string, error) {
	return s.run(ctx, s.cfg.SacctPath, "-j", jobID, "--noheader", "-P", "-o", sacctFormat)
}

func (s *CLISource) run(ctx context.Context, command string, args ...string) (string, error) {
	timeout := s.cfg.CommandTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Ctx(ctx).Debug().Str("Command", command).Strs("Args", args).Msg("running scheduler command")

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return "", models.NewBaseError("scheduler command %s failed: %s", command, detail).
			WithCode(models.SourceUnavailable).
			WithCause(err).
			WithHint("check the command paths in the configuration")
	}
	return stdout.String(), nil
}
