package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Port != "8085" {
		t.Errorf("Expected Port to be 8085, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Fetch.BatchSize != 5 {
		t.Errorf("Expected Fetch.BatchSize to be 5, got %d", cfg.Fetch.BatchSize)
	}

	if cfg.Fetch.ChunkDelay != 500*time.Millisecond {
		t.Errorf("Expected Fetch.ChunkDelay to be 500ms, got %s", cfg.Fetch.ChunkDelay)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("ENV", "production")
	os.Setenv("FETCH_BATCH_SIZE", "10")
	os.Setenv("LOG_LEVEL", "info")
	os.Setenv("PAYOUT_CLIENT_ACCOUNT", "0123456789")

	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("ENV")
		os.Unsetenv("FETCH_BATCH_SIZE")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("PAYOUT_CLIENT_ACCOUNT")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.Fetch.BatchSize != 10 {
		t.Errorf("Expected Fetch.BatchSize to be 10, got %d", cfg.Fetch.BatchSize)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel to be info, got %s", cfg.LogLevel)
	}
}

func TestLoadRejectsBadEnv(t *testing.T) {
	os.Setenv("ENV", "qa")
	defer os.Unsetenv("ENV")

	if _, err := Load(); err == nil {
		t.Error("Expected Load() to fail for unknown ENV")
	}
}

func TestLoadRejectsShortClientAccount(t *testing.T) {
	os.Setenv("PAYOUT_CLIENT_ACCOUNT", "12345")
	defer os.Unsetenv("PAYOUT_CLIENT_ACCOUNT")

	if _, err := Load(); err == nil {
		t.Error("Expected Load() to fail for non-10-character client account")
	}
}
