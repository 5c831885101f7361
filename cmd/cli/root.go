package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shanecorder/slurm-schmutz/cmd/cli/job"
	"github.com/shanecorder/slurm-schmutz/cmd/cli/quota"
	"github.com/shanecorder/slurm-schmutz/cmd/util"
	"github.com/shanecorder/slurm-schmutz/pkg/config"
	"github.com/shanecorder/slurm-schmutz/pkg/logger"
)

func NewRootCmd() *cobra.Command {
	globals := util.NewGlobalFlags()

	rootCmd := &cobra.Command{
		Use:   "schmutz",
		Short: "Job efficiency and storage quota reporting for HPC clusters",
		Long: `Reports how efficiently scheduler jobs use their allocated CPU, memory
and wall time, updates dashboard session cards with the results, and
summarizes storage quota reports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if globals.Quiet {
				logger.SetQuiet()
			}

			cfg, err := config.Load(globals.Config)
			if err != nil {
				return err
			}
			cmd.SetContext(util.WithConfig(cmd.Context(), cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// a bare job ID is shorthand for the status command
			if len(args) == 1 {
				return job.RunStatus(cmd, args[0])
			}
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(job.NewStatusCmd())
	rootCmd.AddCommand(job.NewUpdateCmd())
	rootCmd.AddCommand(job.NewListCmd())
	rootCmd.AddCommand(job.NewHTMLCmd())
	rootCmd.AddCommand(job.NewWatchCmd())
	rootCmd.AddCommand(quota.NewCmd())
	rootCmd.AddCommand(newVersionCmd())

	globals.Register(rootCmd.PersistentFlags())

	return rootCmd
}

func Execute() {
	rootCmd := NewRootCmd()

	// Ensure commands are able to stop cleanly if someone presses ctrl+c
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		util.Fatal(rootCmd, err, 1)
	}
}
