package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	environmentVariablePrefix = "SCHMUTZ"

	configType = "yaml"

	systemConfigPath = "/etc/schmutz/config.yaml"
	userConfigDir    = ".config/schmutz"
)

var (
	environmentVariableReplace = strings.NewReplacer(".", "_")
	configDecoderHook          = viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	))
)

// Load builds the invocation configuration. Without an explicit path it
// layers the system file and then the user file over the defaults, so
// user values override system values; either file may be absent. With
// an explicit path the file must exist.
func Load(explicitPath string) (SchmutzConfig, error) {
	if explicitPath != "" {
		return loadPaths([]string{explicitPath}, true)
	}

	paths := []string{systemConfigPath}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, userConfigDir, "config.yaml"))
	}
	return loadPaths(paths, false)
}

func loadPaths(paths []string, required bool) (SchmutzConfig, error) {
	v := viper.New()
	v.SetConfigType(configType)
	v.SetEnvPrefix(environmentVariablePrefix)
	v.SetEnvKeyReplacer(environmentVariableReplace)
	v.AutomaticEnv()

	if err := setDefaults(v, Default()); err != nil {
		return SchmutzConfig{}, err
	}

	for _, path := range paths {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			if !required && os.IsNotExist(err) {
				continue
			}
			return SchmutzConfig{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var out SchmutzConfig
	if err := v.Unmarshal(&out, configDecoderHook); err != nil {
		return SchmutzConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	return out, nil
}

func setDefaults(v *viper.Viper, cfg SchmutzConfig) error {
	var asMap map[string]interface{}
	if err := mapstructure.Decode(cfg, &asMap); err != nil {
		return err
	}
	for key, value := range asMap {
		v.SetDefault(key, value)
	}
	return nil
}
