package llm

import (
	"testing"

	"edusign/internal/config"
)

func TestFactory_CreateClient(t *testing.T) {
	f := NewFactory(&config.Config{ChatAPIKey: "k", ChatAPIURL: "https://api.groq.com/openai/v1/chat/completions", ChatTemperature: 0.6, ChatMaxTokens: 800})
	c, err := f.CreateClient("OpenAI", "llama-3.3-70b-versatile")
	if err != nil {
		t.Fatalf("openai: %v", err)
	}
	oc, ok := c.(*OpenAIClient)
	if !ok {
		t.Fatalf("want *OpenAIClient, got %T", c)
	}
	if oc.opts.MaxTokens != 800 || oc.model != "llama-3.3-70b-versatile" {
		t.Fatalf("options not propagated: %+v %s", oc.opts, oc.model)
	}

	if _, err := f.CreateClient("carrier-pigeon", "m"); err == nil {
		t.Fatalf("expected error for unknown provider")
	}

	empty := NewFactory(&config.Config{})
	if _, err := empty.CreateClient(ProviderOpenAI, "m"); err == nil {
		t.Fatalf("expected error without api key")
	}
}
