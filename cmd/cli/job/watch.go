package job

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shanecorder/slurm-schmutz/cmd/util"
	"github.com/shanecorder/slurm-schmutz/pkg/sessioncard"
)

type WatchOptions struct {
	Interval    time.Duration
	SessionPath string
	User        string
}

func NewWatchOptions() *WatchOptions {
	return &WatchOptions{
		Interval: 30 * time.Second,
	}
}

func NewWatchCmd() *cobra.Command {
	o := NewWatchOptions()

	watchCmd := &cobra.Command{
		Use:           "watch [jobid]",
		Short:         "Periodically refresh the session card until the job finishes",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], o)
		},
	}

	watchCmd.Flags().DurationVar(&o.Interval, "interval", o.Interval,
		"Time between refreshes.")
	watchCmd.Flags().StringVar(&o.SessionPath, "session-path", o.SessionPath,
		"Session directory to update, bypassing discovery.")
	watchCmd.Flags().StringVar(&o.User, "user", o.User,
		"User whose sessions to search. Defaults to the job's owner.")

	return watchCmd
}

// runWatch runs the same fetch-and-update pipeline once per tick. Every
// iteration stands alone: a failed tick is logged and the next tick
// starts from scratch.
func runWatch(cmd *cobra.Command, jobID string, o *WatchOptions) error {
	ctx := cmd.Context()

	ticker := time.NewTicker(o.Interval)
	defer ticker.Stop()

	for {
		done, err := watchOnce(cmd, jobID, o)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("JobID", jobID).Msg("refresh failed, will retry")
		}
		if done {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// watchOnce refreshes the card once and reports whether the job has
// reached a terminal state, meaning the card holds its final content.
func watchOnce(cmd *cobra.Command, jobID string, o *WatchOptions) (bool, error) {
	cfg := util.ConfigFrom(cmd)

	result, err := fetch(cmd.Context(), cfg, jobID)
	if err != nil {
		return false, err
	}

	store := sessioncard.NewStore(cfg.Dashboard)
	session := sessioncard.Session{Path: o.SessionPath, JobID: jobID}
	if o.SessionPath == "" {
		user := o.User
		if user == "" {
			user = result.Job.User
		}
		found, err := store.FindSessionForJob(user, jobID)
		if err != nil {
			return false, err
		}
		session = *found
	}

	if err := store.UpdateCard(session, result); err != nil {
		return false, err
	}
	return result.Job.State.IsTerminal(), nil
}
