package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application-wide configuration populated from environment
// variables. A .env file in the working directory is loaded first when present.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Metadata store. With no URI the in-memory repository is used.
	MongoURI      string `env:"MONGODB_URI"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"lateraugment"`

	// Audio blob store directory, served under /audio.
	AudioDir string `env:"AUDIO_DIR" envDefault:"audio"`

	// Provider credentials location, consumed by the Google client library.
	GoogleCredentials string `env:"GOOGLE_APPLICATION_CREDENTIALS"`

	// Defaults applied when a synthesis request omits voice parameters.
	DefaultLanguageCode string  `env:"TTS_DEFAULT_LANGUAGE_CODE" envDefault:"en-US"`
	DefaultSpeakingRate float64 `env:"TTS_DEFAULT_SPEAKING_RATE" envDefault:"1.0"`
	DefaultPitch        float64 `env:"TTS_DEFAULT_PITCH" envDefault:"0.0"`

	// Text synthesized when a preview request carries none.
	PreviewText string `env:"TTS_PREVIEW_TEXT" envDefault:"This is a voice preview."`
}

// Load reads the .env file (if any) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
