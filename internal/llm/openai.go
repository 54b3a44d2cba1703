package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type OpenAIClient struct {
	client *openai.Client
	model  string
	opts   Options
}

type headerTransport struct {
	rt      http.RoundTripper
	headers http.Header
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone request to avoid mutating the original
	cl := req.Clone(req.Context())
	for k, vs := range t.headers {
		for _, v := range vs {
			cl.Header.Add(k, v)
		}
	}
	return t.rt.RoundTrip(cl)
}

// OpenAIConfig describes any OpenAI-compatible chat completion endpoint (OpenAI, Groq, OpenRouter).
type OpenAIConfig struct {
	APIKey string
	// URL is either the API base (https://api.groq.com/openai/v1) or the full
	// chat completions endpoint; the /chat/completions suffix is stripped.
	URL      string
	Model    string
	Referrer string
	Title    string
	// Options zero value means DefaultOptions.
	Options Options
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

func NewOpenAI(cfg OpenAIConfig) *OpenAIClient {
	config := openai.DefaultConfig(cfg.APIKey)
	if base := BaseURL(cfg.URL); base != "" {
		config.BaseURL = base
	}
	if cfg.HTTPClient != nil {
		config.HTTPClient = cfg.HTTPClient
	}
	// Inject optional headers (useful for OpenRouter)
	if cfg.Referrer != "" || cfg.Title != "" {
		h := http.Header{}
		if cfg.Referrer != "" {
			h.Set("HTTP-Referer", cfg.Referrer)
		}
		if cfg.Title != "" {
			h.Set("X-Title", cfg.Title)
		}
		base := http.DefaultTransport
		if cfg.HTTPClient != nil && cfg.HTTPClient.Transport != nil {
			base = cfg.HTTPClient.Transport
		}
		config.HTTPClient = &http.Client{Transport: headerTransport{rt: base, headers: h}}
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	opts := cfg.Options
	if opts == (Options{}) {
		opts = DefaultOptions()
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
		opts:   opts,
	}
}

// BaseURL trims a full chat completions URL down to the API base go-openai expects.
func BaseURL(url string) string {
	url = strings.TrimSpace(url)
	url = strings.TrimSuffix(url, "/")
	return strings.TrimSuffix(url, "/chat/completions")
}

func (c *OpenAIClient) Generate(ctx context.Context, messages []Message) (Response, error) {
	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    oaMsgs,
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Response{}, fmt.Errorf("failed to create chat completion: %w", err)
	}

	out := Response{Model: c.model}
	if len(resp.Choices) > 0 {
		out.Content = resp.Choices[0].Message.Content
	}
	out.PromptTokens = resp.Usage.PromptTokens
	out.CompletionTokens = resp.Usage.CompletionTokens
	out.TotalTokens = resp.Usage.TotalTokens
	return out, nil
}
