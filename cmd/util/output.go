package util

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shanecorder/slurm-schmutz/pkg/render"
)

// Global flag names, registered once on the root command.
const (
	FormatFlag = "format"
	OutputFlag = "output"
	QuietFlag  = "quiet"
	ConfigFlag = "config"
)

// GlobalFlags holds the values of the persistent flags every command
// shares.
type GlobalFlags struct {
	Format string
	Output string
	Quiet  bool
	Config string
}

func NewGlobalFlags() *GlobalFlags {
	return &GlobalFlags{Format: string(render.TextFormat)}
}

// Register wires the global flags onto the root command's persistent
// flag set.
func (g *GlobalFlags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&g.Format, FormatFlag, g.Format,
		`Output encoding. One of: text, json, html, markdown, mdhtml.`)
	fs.StringVar(&g.Output, OutputFlag, g.Output,
		`Write the report to this file instead of stdout.`)
	fs.BoolVar(&g.Quiet, QuietFlag, g.Quiet,
		`Only log errors.`)
	fs.StringVar(&g.Config, ConfigFlag, g.Config,
		`Configuration file to use instead of the system and user files.`)
}

// OutputOptions is the resolved destination of a command's report.
type OutputOptions struct {
	Format render.Format
	Path   string
}

// OutputOptionsFrom reads and validates the global output flags.
func OutputOptionsFrom(cmd *cobra.Command) (OutputOptions, error) {
	raw, err := cmd.Flags().GetString(FormatFlag)
	if err != nil {
		return OutputOptions{}, err
	}
	format, err := render.ParseFormat(raw)
	if err != nil {
		return OutputOptions{}, err
	}
	path, err := cmd.Flags().GetString(OutputFlag)
	if err != nil {
		return OutputOptions{}, err
	}
	return OutputOptions{Format: format, Path: path}, nil
}

// Write renders r to the requested destination, defaulting to the
// command's stdout.
func (o OutputOptions) Write(cmd *cobra.Command, r render.Renderable) error {
	return render.RenderToFile(o.Path, o.Format, r, cmd.OutOrStdout())
}
