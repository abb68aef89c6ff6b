// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the settings for the GoSakina core.
// Environment variables are parsed from the SAKINA_ prefix.
type Config struct {
	// Generative service
	GenAIBaseURL string        `envconfig:"GENAI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	GenAIAPIKey  string        `envconfig:"GENAI_API_KEY" default:""`
	TextModel    string        `envconfig:"TEXT_MODEL" default:"gemini-3-flash-preview"`
	ImageModel   string        `envconfig:"IMAGE_MODEL" default:"gemini-2.5-flash-image"`
	GenAITimeout time.Duration `envconfig:"GENAI_TIMEOUT" default:"30s"`

	// Persistence
	DataDir string `envconfig:"DATA_DIR" default:"sakina"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("SAKINA", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
