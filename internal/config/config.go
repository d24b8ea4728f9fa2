// Package config resolves client configuration from environment
// variables. Call godotenv.Load before Load so a local .env file is
// honored.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config stores runtime configuration for the recipe diary client.
type Config struct {
	API       APIConfig
	Recording RecordingConfig
	Language  LanguageConfig
}

// APIConfig locates the recipe processing backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
	// Token is the bearer credential supplied by the external auth
	// collaborator. It is forwarded verbatim, never validated here.
	Token string
}

// RecordingConfig tunes the recording controller.
type RecordingConfig struct {
	MaxDuration time.Duration // hard cap, auto-stop when reached
	SampleRate  int
	Channels    int
}

// LanguageConfig holds the transcription language preferences sent
// with every process-recipe request.
type LanguageConfig struct {
	Input  string // spoken language of the audio, e.g. "en-US"
	Output string // language the structured recipe is written in
}

// Load resolves configuration from environment variables and defaults.
func Load() (Config, error) {
	cfg := Config{
		API: APIConfig{
			BaseURL: envOrDefault("RECIPEDIARY_API_URL", "http://localhost:5000"),
			Timeout: time.Duration(envOrDefaultInt("RECIPEDIARY_API_TIMEOUT_SECS", 120)) * time.Second,
			Token:   strings.TrimSpace(os.Getenv("RECIPEDIARY_AUTH_TOKEN")),
		},
		Recording: RecordingConfig{
			MaxDuration: time.Duration(envOrDefaultInt("RECIPEDIARY_MAX_RECORD_SECS", 300)) * time.Second,
			SampleRate:  envOrDefaultInt("RECIPEDIARY_SAMPLE_RATE", 16000),
			Channels:    envOrDefaultInt("RECIPEDIARY_CHANNELS", 1),
		},
		Language: LanguageConfig{
			Input:  envOrDefault("RECIPEDIARY_LANGUAGE", "en-US"),
			Output: envOrDefault("RECIPEDIARY_OUTPUT_LANGUAGE", "en"),
		},
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.BaseURL == "" {
		return Config{}, fmt.Errorf("config: RECIPEDIARY_API_URL must not be empty")
	}
	if cfg.Recording.MaxDuration <= 0 {
		return Config{}, fmt.Errorf("config: RECIPEDIARY_MAX_RECORD_SECS must be positive")
	}
	if cfg.Recording.SampleRate <= 0 {
		cfg.Recording.SampleRate = 16000
	}
	if cfg.Recording.Channels <= 0 {
		cfg.Recording.Channels = 1
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
