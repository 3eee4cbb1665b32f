// Package config loads the synth configuration from synth.yml
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the synth configuration
type Config struct {
	Source SourceConfig `mapstructure:"source"`
	Output OutputConfig `mapstructure:"output"`
	Strict StrictConfig `mapstructure:"strict"`
}

// SourceConfig controls how source units are discovered
type SourceConfig struct {
	Dir string `mapstructure:"dir"`
	Ext string `mapstructure:"ext"`
}

// OutputConfig controls where artifacts are written
type OutputConfig struct {
	Dir     string `mapstructure:"dir"`
	DocsDir string `mapstructure:"docs_dir"`
}

// StrictConfig controls strict-mode dependency checking
type StrictConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	Whitelist []string `mapstructure:"whitelist"`
}

// Load loads the configuration from synth.yml or synth.yaml in root,
// falling back to defaults when no config file exists
func Load(root string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("source.dir", "src")
	v.SetDefault("source.ext", ".u")
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.docs_dir", "man")
	v.SetDefault("strict.enabled", false)
	v.SetDefault("strict.whitelist", []string{})

	// Set config name and paths
	v.SetConfigName("synth")
	v.SetConfigType("yaml")
	v.AddConfigPath(root)

	// Enable environment variable support (SYNTH_SOURCE_DIR etc.)
	v.SetEnvPrefix("synth")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig checks values that would make a run misbehave silently
func validateConfig(config *Config) error {
	if config.Source.Dir == "" {
		return fmt.Errorf("source.dir must not be empty")
	}
	if !strings.HasPrefix(config.Source.Ext, ".") {
		return fmt.Errorf("source.ext must start with '.', got %q", config.Source.Ext)
	}
	if config.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	return nil
}
