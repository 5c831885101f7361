package quota

import (
	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "user [name] [file]",
		Short:         "Report the quota entries applying to one user",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUser(cmd, args[0], args[1])
		},
	}
}

func runUser(cmd *cobra.Command, name, path string) error {
	parsed, aggregator, out, err := load(cmd, path)
	if err != nil {
		return err
	}
	return out.Write(cmd, aggregator.User(*parsed, name))
}
