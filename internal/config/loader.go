package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Load assembles the configuration and validates it. Sources, strongest
// first: environment variables, the YAML file, env-default tags.
//
// CONFIG_PATH names the YAML file and makes it mandatory. Without it the
// loader tries ./config.yaml and silently falls back to env + defaults when
// that file is absent.
func Load() (*Config, error) {
	var cfg Config

	path, mandatory := os.Getenv("CONFIG_PATH"), true
	if path == "" {
		path, mandatory = "./config.yaml", false
	}

	switch _, statErr := os.Stat(path); {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case mandatory:
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}
