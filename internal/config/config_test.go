package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ChatModel != "llama-3.3-70b-versatile" || cfg.ChatMaxTokens != 800 {
		t.Fatalf("unexpected chat defaults: %+v", cfg)
	}
	if cfg.ChatTemperature < 0.59 || cfg.ChatTemperature > 0.61 {
		t.Fatalf("unexpected temperature: %v", cfg.ChatTemperature)
	}
	if cfg.MintDelay != 1500*time.Millisecond {
		t.Fatalf("unexpected mint delay: %v", cfg.MintDelay)
	}
	if cfg.StorageBackend != "file" || cfg.BackupSchedule != "" {
		t.Fatalf("unexpected storage defaults: %+v", cfg)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("CHAT_API_URL", "https://api.example.com/v1")
	t.Setenv("CHAT_API_KEY", "k")
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("MINT_DELAY", "0s")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ChatAPIURL != "https://api.example.com/v1" || cfg.ChatAPIKey != "k" {
		t.Fatalf("chat settings not read: %+v", cfg)
	}
	if cfg.StorageBackend != "sqlite" || cfg.MintDelay != 0 {
		t.Fatalf("storage settings not read: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "carrier-pigeon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	t.Setenv("MINT_DELAY", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}
