// Package config loads tool settings from defaults, an optional config
// file and TZWALK_* environment variables, in ascending precedence.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. TZWALK_ZONEINFO_DIR.
const EnvPrefix = "TZWALK"

// DefaultZoneinfoDir is where the IANA database is installed on most
// Unix-like systems.
const DefaultZoneinfoDir = "/usr/share/zoneinfo"

// Config holds the tool configuration.
type Config struct {
	// ZoneinfoDir is the root of the compiled zoneinfo tree.
	ZoneinfoDir string `mapstructure:"zoneinfo_dir"`
	// Workers is the number of files decoded concurrently during a walk.
	Workers int `mapstructure:"workers"`
	// Debug enables debug-level logging.
	Debug bool `mapstructure:"debug"`
	// LogFormat selects the log encoder: "console" or "json".
	LogFormat string `mapstructure:"log_format"`
}

// Viper returns a viper instance carrying the defaults and environment
// bindings. The CLI binds its flags onto this instance so flag values
// take precedence over file and environment values.
func Viper() *viper.Viper {
	v := viper.New()
	v.SetDefault("zoneinfo_dir", DefaultZoneinfoDir)
	v.SetDefault("workers", runtime.GOMAXPROCS(0))
	v.SetDefault("debug", false)
	v.SetDefault("log_format", "console")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file into v and unmarshals the final
// settings. An empty file name skips the file layer.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &cfg, nil
}
