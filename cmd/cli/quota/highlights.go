package quota

import (
	"github.com/spf13/cobra"

	"github.com/shanecorder/slurm-schmutz/cmd/util"
)

type HighlightsOptions struct {
	UsageThreshold      float64
	EfficiencyThreshold float64
}

func newHighlightsCmd() *cobra.Command {
	o := &HighlightsOptions{}

	highlightsCmd := &cobra.Command{
		Use:           "highlights [file]",
		Short:         "Report only the quota entries breaching a threshold",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHighlights(cmd, args[0], o)
		},
	}

	highlightsCmd.Flags().Float64Var(&o.UsageThreshold, "usage-threshold", 0,
		"Report entries with usage at or above this percentage.")
	highlightsCmd.Flags().Float64Var(&o.EfficiencyThreshold, "efficiency-threshold", 0,
		"Report entries with storage efficiency below this percentage.")

	return highlightsCmd
}

func runHighlights(cmd *cobra.Command, path string, o *HighlightsOptions) error {
	parsed, aggregator, out, err := load(cmd, path)
	if err != nil {
		return err
	}

	cfg := util.ConfigFrom(cmd)
	usage := o.UsageThreshold
	if !cmd.Flags().Changed("usage-threshold") {
		usage = cfg.Quota.HighlightUsagePct
	}
	efficiency := o.EfficiencyThreshold
	if !cmd.Flags().Changed("efficiency-threshold") {
		efficiency = cfg.Quota.HighlightEfficiencyPct
	}

	return out.Write(cmd, aggregator.Highlights(*parsed, usage, efficiency))
}
