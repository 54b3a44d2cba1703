package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	// Chat completion endpoint. CHAT_API_URL may be a base URL or the full
	// .../chat/completions endpoint.
	LLMProvider      LLMProvider   `env:"LLM_PROVIDER" envDefault:"openai"`
	ChatAPIURL       string        `env:"CHAT_API_URL" envDefault:"https://api.groq.com/openai/v1/chat/completions"`
	ChatAPIKey       string        `env:"CHAT_API_KEY"`
	ChatModel        string        `env:"CHAT_MODEL" envDefault:"llama-3.3-70b-versatile"`
	ChatTemperature  float32       `env:"CHAT_TEMPERATURE" envDefault:"0.6"`
	ChatMaxTokens    int           `env:"CHAT_MAX_TOKENS" envDefault:"800"`
	ChatTimeout      time.Duration `env:"CHAT_TIMEOUT" envDefault:"60s"`
	ChatReferrer     string        `env:"CHAT_REFERRER"`
	ChatTitle        string        `env:"CHAT_TITLE"`
	YandexOAuthToken string        `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string        `env:"YANDEX_FOLDER_ID"`

	// Storage
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"file"`
	StoragePath    string `env:"STORAGE_PATH" envDefault:"data/edusign.json"`
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix    string `env:"REDIS_PREFIX" envDefault:"edusign:"`

	// Minting
	MintDelay time.Duration `env:"MINT_DELAY" envDefault:"1500ms"`

	// HTTP API
	HTTPAddr    string   `env:"HTTP_ADDR" envDefault:":8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:3000"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Backups; an empty schedule disables them
	BackupSchedule string `env:"BACKUP_SCHEDULE"`
	BackupDir      string `env:"BACKUP_DIR" envDefault:"data/backups"`
}

// Load parses the environment. Call godotenv.Load first to pick up a .env file.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.LLMProvider != ProviderOpenAI && cfg.LLMProvider != ProviderYandex {
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLMProvider)
	}
	if cfg.ChatMaxTokens <= 0 {
		return nil, fmt.Errorf("CHAT_MAX_TOKENS must be positive")
	}
	return cfg, nil
}
