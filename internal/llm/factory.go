package llm

import (
	"fmt"
	"strings"

	"edusign/internal/config"
)

const (
	ProviderOpenAI = "openai"
	ProviderYandex = "yandex"
)

// Factory creates LLM clients with consistent logic
type Factory struct {
	APIURL           string
	APIKey           string
	Referrer         string
	Title            string
	YandexOAuthToken string
	YandexFolderID   string
	Options          Options
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		APIURL:           cfg.ChatAPIURL,
		APIKey:           cfg.ChatAPIKey,
		Referrer:         cfg.ChatReferrer,
		Title:            cfg.ChatTitle,
		YandexOAuthToken: cfg.YandexOAuthToken,
		YandexFolderID:   cfg.YandexFolderID,
		Options: Options{
			Temperature: cfg.ChatTemperature,
			MaxTokens:   cfg.ChatMaxTokens,
		},
	}
}

func (f *Factory) CreateClient(provider, model string) (Client, error) {
	switch strings.ToLower(provider) {
	case ProviderOpenAI, "":
		if f.APIKey == "" {
			return nil, fmt.Errorf("chat api key is not configured")
		}
		return NewOpenAI(OpenAIConfig{
			APIKey:   f.APIKey,
			URL:      f.APIURL,
			Model:    model,
			Referrer: f.Referrer,
			Title:    f.Title,
			Options:  f.Options,
		}), nil
	case ProviderYandex:
		return NewYandex(f.YandexOAuthToken, f.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
