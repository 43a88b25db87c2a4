// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice    PracticeConfig    `toml:"practice"`
	Backend     BackendConfig     `toml:"backend"`
	Leaderboard LeaderboardConfig `toml:"leaderboard"`
}

// PracticeConfig maps practice-related settings. Pointer fields leave
// CLI flag values untouched when a key is absent.
type PracticeConfig struct {
	Username        *string `toml:"username"`
	Difficulty      *string `toml:"difficulty"`
	CaseSensitive   *bool   `toml:"case-sensitive"`
	Timed           *bool   `toml:"timed"`
	DurationMin     *int    `toml:"duration"`
	AllowIncomplete *bool   `toml:"allow-incomplete"`
}

// BackendConfig maps backend process settings.
type BackendConfig struct {
	Path *string `toml:"path"`
}

// LeaderboardConfig maps leaderboard display settings.
type LeaderboardConfig struct {
	Top *int `toml:"top"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
