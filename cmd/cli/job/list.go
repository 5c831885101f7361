package job

import (
	"errors"
	"fmt"
	"os/user"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"go.ptx.dk/multierrgroup"

	cmdutil "github.com/shanecorder/slurm-schmutz/cmd/util"
	"github.com/shanecorder/slurm-schmutz/pkg/efficiency"
	"github.com/shanecorder/slurm-schmutz/pkg/sessioncard"
)

type ListOptions struct {
	User string
}

func NewListOptions() *ListOptions {
	return &ListOptions{}
}

func NewListCmd() *cobra.Command {
	o := NewListOptions()

	listCmd := &cobra.Command{
		Use:           "list",
		Short:         "List dashboard sessions with their job efficiency",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, o)
		},
	}

	listCmd.Flags().StringVar(&o.User, "user", o.User,
		"User whose sessions to list. Defaults to the invoking user.")

	return listCmd
}

func runList(cmd *cobra.Command, o *ListOptions) error {
	cfg := cmdutil.ConfigFrom(cmd)
	out, err := cmdutil.OutputOptionsFrom(cmd)
	if err != nil {
		return err
	}

	username := o.User
	if username == "" {
		current, err := user.Current()
		if err != nil {
			return err
		}
		username = current.Username
	}

	store := sessioncard.NewStore(cfg.Dashboard)
	sessions, err := store.ListSessions(username)
	if err != nil {
		return err
	}

	// Jobs are independent, so their stats are fetched in parallel. The
	// output order still follows the session order.
	results := make([]*efficiency.Result, len(sessions))
	var wg multierrgroup.Group
	for i, session := range sessions {
		i, session := i, session
		wg.Go(func() error {
			result, err := fetch(cmd.Context(), cfg, session.JobID)
			if err != nil {
				return fmt.Errorf("job %s: %w", session.JobID, err)
			}
			results[i] = &result
			return nil
		})
	}
	fetchErr := wg.Wait()

	listing := efficiency.Listing{User: username, Jobs: []efficiency.ListingEntry{}}
	for i, session := range sessions {
		if results[i] == nil {
			continue
		}
		listing.Jobs = append(listing.Jobs, efficiency.ListingEntry{
			Session: session.Path,
			Result:  *results[i],
		})
	}
	// per-job failures become warnings in the rendered listing
	var merr *multierror.Error
	if errors.As(fetchErr, &merr) {
		for _, sub := range merr.Errors {
			listing.Warnings = append(listing.Warnings, sub.Error())
		}
	} else if fetchErr != nil {
		listing.Warnings = append(listing.Warnings, fetchErr.Error())
	}

	return out.Write(cmd, listing)
}
