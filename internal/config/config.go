// Package config loads engine configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration for the engine. Alignment bounds
// are optional: unset means the ledger counters are unbounded.
type Config struct {
	// DataDir is where the progress database lives. Defaults to
	// ~/.neotokyo when unset.
	DataDir string `env:"NEOTOKYO_DATA_DIR"`

	// StageID names the narrative stage recorded in progress snapshots.
	StageID string `env:"NEOTOKYO_STAGE_ID" envDefault:"academy-gates"`

	AlignmentThreshold int  `env:"NEOTOKYO_ALIGNMENT_THRESHOLD" envDefault:"10"`
	AlignmentFloor     *int `env:"NEOTOKYO_ALIGNMENT_FLOOR"`
	AlignmentCeiling   *int `env:"NEOTOKYO_ALIGNMENT_CEILING"`

	// GeminiAPIKey enables the quest description writer. Empty disables it;
	// the engine runs fine on catalog text alone.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"NEOTOKYO_GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	Debug bool `env:"NEOTOKYO_DEBUG"`
}

// Load parses the environment and fills in defaults that need the host
// (the home directory) rather than a literal.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".neotokyo")
	}
	return cfg, nil
}
