// Package job implements the commands that report on a single
// scheduler job: status, update, list, html and watch.
package job

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shanecorder/slurm-schmutz/cmd/util"
	"github.com/shanecorder/slurm-schmutz/pkg/config"
	"github.com/shanecorder/slurm-schmutz/pkg/efficiency"
	"github.com/shanecorder/slurm-schmutz/pkg/slurm"
)

func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "status [jobid]",
		Short:         "Show the resource efficiency of a job",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunStatus(cmd, args[0])
		},
	}
}

// RunStatus also backs the bare "schmutz <jobid>" shorthand on the root
// command.
func RunStatus(cmd *cobra.Command, jobID string) error {
	cfg := util.ConfigFrom(cmd)
	out, err := util.OutputOptionsFrom(cmd)
	if err != nil {
		return err
	}

	result, err := fetch(cmd.Context(), cfg, jobID)
	if err != nil {
		return err
	}
	return out.Write(cmd, result)
}

// fetch runs the full pipeline for one job: snapshot the scheduler
// sources, then derive the efficiency result.
func fetch(ctx context.Context, cfg config.SchmutzConfig, jobID string) (efficiency.Result, error) {
	collector := slurm.NewCollector(slurm.NewCLISource(cfg.Slurm))
	snapshot, err := collector.Snapshot(ctx, jobID)
	if err != nil {
		return efficiency.Result{}, err
	}

	result := efficiency.Compute(snapshot, cfg.Thresholds)
	if !cfg.ShowRecommendations {
		result.Recommendations = []string{}
	}
	return result, nil
}
