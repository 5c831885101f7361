package config

import "time"

// Thresholds drive the GOOD/WARNING/BAD classification of efficiency
// percentages. A metric is GOOD at or above its good threshold, WARNING
// at or above its warning threshold, BAD below that.
type Thresholds struct {
	CPUGood       float64 `mapstructure:"cpu_good"`
	CPUWarning    float64 `mapstructure:"cpu_warning"`
	MemoryGood    float64 `mapstructure:"memory_good"`
	MemoryWarning float64 `mapstructure:"memory_warning"`
}

// SlurmConfig holds the scheduler command locations and the timeout
// applied to every subprocess invocation.
type SlurmConfig struct {
	SqueuePath     string        `mapstructure:"squeue_path"`
	SstatPath      string        `mapstructure:"sstat_path"`
	SacctPath      string        `mapstructure:"sacct_path"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
}

// DashboardConfig locates the per-user session-card directories of the
// web dashboard this tool feeds.
type DashboardConfig struct {
	DataRoot       string `mapstructure:"data_root"`
	SessionDataDir string `mapstructure:"session_data_dir"`
	CardTitle      string `mapstructure:"card_title"`
}

// QuotaConfig holds the default filter thresholds for quota reports.
type QuotaConfig struct {
	HighUsagePct           float64 `mapstructure:"high_usage_pct"`
	HighlightUsagePct      float64 `mapstructure:"highlight_usage_pct"`
	HighlightEfficiencyPct float64 `mapstructure:"highlight_efficiency_pct"`
}

// SchmutzConfig is the immutable configuration value built once per
// invocation and passed to every component that needs thresholds or
// paths.
type SchmutzConfig struct {
	Thresholds Thresholds      `mapstructure:"thresholds"`
	Slurm      SlurmConfig     `mapstructure:"slurm"`
	Dashboard  DashboardConfig `mapstructure:"dashboard"`
	Quota      QuotaConfig     `mapstructure:"quota"`

	ShowRecommendations bool `mapstructure:"show_recommendations"`
}

// Default returns the built-in configuration used when no config file
// is present.
func Default() SchmutzConfig {
	return SchmutzConfig{
		Thresholds: Thresholds{
			CPUGood:       80.0,
			CPUWarning:    50.0,
			MemoryGood:    70.0,
			MemoryWarning: 40.0,
		},
		Slurm: SlurmConfig{
			SqueuePath:     "/usr/bin/squeue",
			SstatPath:      "/usr/bin/sstat",
			SacctPath:      "/usr/bin/sacct",
			CommandTimeout: 30 * time.Second,
		},
		Dashboard: DashboardConfig{
			DataRoot:       "/var/lib/ondemand-nginx",
			SessionDataDir: "data/sys/dashboard/batch_connect/db",
			CardTitle:      "Job Efficiency",
		},
		Quota: QuotaConfig{
			HighUsagePct:           80.0,
			HighlightUsagePct:      80.0,
			HighlightEfficiencyPct: 50.0,
		},
		ShowRecommendations: true,
	}
}
