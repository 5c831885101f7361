package job

import (
	"github.com/spf13/cobra"

	"github.com/shanecorder/slurm-schmutz/cmd/util"
	"github.com/shanecorder/slurm-schmutz/pkg/render"
)

// NewHTMLCmd renders the efficiency card as a standalone HTML document,
// regardless of the global format flag. Useful for previewing the
// session card outside the dashboard.
func NewHTMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "html [jobid]",
		Short:         "Generate the HTML efficiency card for a job",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHTML(cmd, args[0])
		},
	}
}

func runHTML(cmd *cobra.Command, jobID string) error {
	cfg := util.ConfigFrom(cmd)
	out, err := util.OutputOptionsFrom(cmd)
	if err != nil {
		return err
	}

	result, err := fetch(cmd.Context(), cfg, jobID)
	if err != nil {
		return err
	}
	return render.RenderToFile(out.Path, render.HTMLFormat, result, cmd.OutOrStdout())
}
