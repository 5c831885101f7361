package job

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shanecorder/slurm-schmutz/cmd/util"
	"github.com/shanecorder/slurm-schmutz/pkg/sessioncard"
)

type UpdateOptions struct {
	SessionPath string
	User        string
}

func NewUpdateOptions() *UpdateOptions {
	return &UpdateOptions{}
}

func NewUpdateCmd() *cobra.Command {
	o := NewUpdateOptions()

	updateCmd := &cobra.Command{
		Use:           "update [jobid]",
		Short:         "Update the dashboard session card for a job",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, args[0], o)
		},
	}

	updateCmd.Flags().StringVar(&o.SessionPath, "session-path", o.SessionPath,
		"Session directory to update, bypassing discovery.")
	updateCmd.Flags().StringVar(&o.User, "user", o.User,
		"User whose sessions to search. Defaults to the job's owner.")

	return updateCmd
}

func runUpdate(cmd *cobra.Command, jobID string, o *UpdateOptions) error {
	cfg := util.ConfigFrom(cmd)

	result, err := fetch(cmd.Context(), cfg, jobID)
	if err != nil {
		return err
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
			return err
		}
		session = *found
	}

	if err := store.UpdateCard(session, result); err != nil {
		return err
	}
	cmd.Println(fmt.Sprintf("Updated session card: %s", filepath.Join(session.Path, "info.html")))
	return nil
}
