package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RECIPEDIARY_API_URL", "")
	t.Setenv("RECIPEDIARY_MAX_RECORD_SECS", "")
	t.Setenv("RECIPEDIARY_LANGUAGE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:5000" {
		t.Fatalf("unexpected default base URL: %q", cfg.API.BaseURL)
	}
	if cfg.Recording.MaxDuration != 300*time.Second {
		t.Fatalf("expected 300s cap, got %s", cfg.Recording.MaxDuration)
	}
	if cfg.Language.Input != "en-US" {
		t.Fatalf("unexpected default language: %q", cfg.Language.Input)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RECIPEDIARY_API_URL", "https://recipes.example.com/")
	t.Setenv("RECIPEDIARY_MAX_RECORD_SECS", "120")
	t.Setenv("RECIPEDIARY_LANGUAGE", "fr-FR")
	t.Setenv("RECIPEDIARY_OUTPUT_LANGUAGE", "fr")
	t.Setenv("RECIPEDIARY_AUTH_TOKEN", "  tok-123  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.API.BaseURL != "https://recipes.example.com" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.API.BaseURL)
	}
	if cfg.Recording.MaxDuration != 2*time.Minute {
		t.Fatalf("cap override ignored: %s", cfg.Recording.MaxDuration)
	}
	if cfg.Language.Input != "fr-FR" || cfg.Language.Output != "fr" {
		t.Fatalf("language overrides ignored: %+v", cfg.Language)
	}
	if cfg.API.Token != "tok-123" {
		t.Fatalf("token not trimmed: %q", cfg.API.Token)
	}
}

func TestLoadRejectsNonPositiveCap(t *testing.T) {
	t.Setenv("RECIPEDIARY_MAX_RECORD_SECS", "-5")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative cap")
	}
}

func TestLoadIgnoresMalformedInts(t *testing.T) {
	t.Setenv("RECIPEDIARY_SAMPLE_RATE", "not-a-number")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Recording.SampleRate != 16000 {
		t.Fatalf("expected fallback sample rate, got %d", cfg.Recording.SampleRate)
	}
}
