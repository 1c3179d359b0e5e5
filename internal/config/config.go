// File: internal/config/config.go
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the application configuration for the taint catalog tooling.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Lint   LintConfig   `mapstructure:"lint" yaml:"lint"`
}

// LoggerConfig controls the structured logger and its optional rotating file
// sink.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// LintConfig controls how catalog validation treats malformed entries.
type LintConfig struct {
	// Strict fails a lint run on the first invalid entry instead of
	// collecting all of them.
	Strict bool `mapstructure:"strict" yaml:"strict"`
	// MaxFindings caps how many invalid entries are reported per run.
	// Zero means unlimited.
	MaxFindings int `mapstructure:"max_findings" yaml:"max_findings"`
}

// SetDefaults initializes default values on v for all configuration keys.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "taintlint")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	v.SetDefault("lint.strict", false)
	v.SetDefault("lint.max_findings", 0)
}

// Load unmarshals the configuration bound in v, applying defaults first.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// NewDefaultConfig returns the configuration produced by defaults alone.
func NewDefaultConfig() *Config {
	cfg, err := Load(viper.New())
	if err != nil {
		// Defaults always unmarshal; a failure here is a programming error.
		panic(err)
	}
	return cfg
}
