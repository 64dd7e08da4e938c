package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// ScanProfile holds the tunable scan settings loaded from a settings
// file. Every field has a working default so the file is optional.
type ScanProfile struct {
	Workers           int      `mapstructure:"workers"`
	IncludeContent    bool     `mapstructure:"include_content"`
	ContentLimitBytes int64    `mapstructure:"content_limit_bytes"`
	RulesPath         string   `mapstructure:"rules_path"`
	Keywords          []string `mapstructure:"keywords"`
}

func DefaultScanProfile() ScanProfile {
	return ScanProfile{
		Workers:           1,
		ContentLimitBytes: 1 << 20,
	}
}

// LoadScanProfile reads a settings file (yaml, toml or json, decided by
// extension) on top of the defaults.
func LoadScanProfile(path string) (*ScanProfile, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("workers", 1)
	v.SetDefault("content_limit_bytes", 1<<20)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var profile ScanProfile
	if err := v.Unmarshal(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	if profile.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", profile.Workers)
	}
	return &profile, nil
}
