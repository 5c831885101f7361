package util

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shanecorder/slurm-schmutz/pkg/config"
)

type contextKey int

const configContextKey contextKey = iota

// WithConfig attaches the loaded configuration to the command context.
// The root command does this once in its PersistentPreRun so every
// subcommand reads the same configuration value.
func WithConfig(ctx context.Context, cfg config.SchmutzConfig) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

// ConfigFrom returns the invocation configuration. Commands constructed
// outside the root (tests, mostly) fall back to the defaults.
func ConfigFrom(cmd *cobra.Command) config.SchmutzConfig {
	if cfg, ok := cmd.Context().Value(configContextKey).(config.SchmutzConfig); ok {
		return cfg
	}
	return config.Default()
}
