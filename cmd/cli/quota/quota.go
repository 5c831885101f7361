// Package quota implements the storage quota reporting commands over a
// quota report file.
package quota

import (
	"github.com/spf13/cobra"

	"github.com/shanecorder/slurm-schmutz/cmd/util"
	"github.com/shanecorder/slurm-schmutz/pkg/models"
	"github.com/shanecorder/slurm-schmutz/pkg/quota"
)

func NewCmd() *cobra.Command {
	quotaCmd := &cobra.Command{
		Use:           "quota [file]",
		Short:         "Report storage quotas from a quota report file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdmin(cmd, args[0])
		},
	}

	quotaCmd.AddCommand(newUserCmd())
	quotaCmd.AddCommand(newHighlightsCmd())
	return quotaCmd
}

func runAdmin(cmd *cobra.Command, path string) error {
	parsed, aggregator, out, err := load(cmd, path)
	if err != nil {
		return err
	}
	return out.Write(cmd, aggregator.Admin(*parsed))
}

// load parses the quota file and prepares the shared pieces every view
// needs. A file where not a single row parsed is an invocation error,
// not a valid empty report.
func load(cmd *cobra.Command, path string) (*quota.ParseResult, *quota.Aggregator, util.OutputOptions, error) {
	out, err := util.OutputOptionsFrom(cmd)
	if err != nil {
		return nil, nil, util.OutputOptions{}, err
	}

	parsed, err := quota.ParseFile(path)
	if err != nil {
		return nil, nil, util.OutputOptions{}, err
	}
	if len(parsed.Entries) == 0 && len(parsed.Warnings) > 0 {
		return nil, nil, util.OutputOptions{}, models.
			NewBaseError("no quota rows could be parsed from %s", path).
			WithCode(models.MalformedRow).
			WithHint("check that the file is a quota report with the expected ten columns")
	}

	cfg := util.ConfigFrom(cmd)
	return &parsed, quota.NewAggregator(cfg.Quota), out, nil
}
