package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

type capturedRequest struct {
	Path    string
	Auth    string
	Referer string
	Body    map[string]any
}

func newCompletionServer(t *testing.T, status int, body string, got *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		got.Path = r.URL.Path
		got.Auth = r.Header.Get("Authorization")
		got.Referer = r.Header.Get("HTTP-Referer")
		_ = json.Unmarshal(raw, &got.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIClient_Generate(t *testing.T) {
	var got capturedRequest
	srv := newCompletionServer(t, http.StatusOK,
		`{"id":"1","object":"chat.completion","model":"llama","choices":[{"index":0,"message":{"role":"assistant","content":"Take Go next"}}],"usage":{"prompt_tokens":10,"completion_tokens":3,"total_tokens":13}}`,
		&got)

	c := NewOpenAI(OpenAIConfig{
		APIKey:   "secret",
		URL:      srv.URL + "/openai/v1/chat/completions",
		Model:    "llama-3.3-70b-versatile",
		Referrer: "https://edusign.example",
		Options:  Options{Temperature: 0.6, MaxTokens: 800},
	})
	resp, err := c.Generate(context.Background(), []Message{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "what next?"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Content != "Take Go next" || resp.TotalTokens != 13 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if got.Path != "/openai/v1/chat/completions" {
		t.Fatalf("unexpected path: %s", got.Path)
	}
	if got.Auth != "Bearer secret" {
		t.Fatalf("unexpected auth header: %q", got.Auth)
	}
	if got.Referer != "https://edusign.example" {
		t.Fatalf("extra header missing: %q", got.Referer)
	}
	if got.Body["model"] != "llama-3.3-70b-versatile" {
		t.Fatalf("model not sent: %v", got.Body["model"])
	}
	if mt, _ := got.Body["max_tokens"].(float64); mt != 800 {
		t.Fatalf("max_tokens not sent: %v", got.Body["max_tokens"])
	}
	if temp, _ := got.Body["temperature"].(float64); temp < 0.59 || temp > 0.61 {
		t.Fatalf("temperature not sent: %v", got.Body["temperature"])
	}
	msgs, _ := got.Body["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("want 2 messages, got %d", len(msgs))
	}
}

func TestOpenAIClient_Defaults(t *testing.T) {
	var got capturedRequest
	srv := newCompletionServer(t, http.StatusOK, `{"choices":[]}`, &got)

	c := NewOpenAI(OpenAIConfig{APIKey: "k", URL: srv.URL})
	if _, err := c.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got.Body["model"] != DefaultModel {
		t.Fatalf("default model not sent: %v", got.Body["model"])
	}
	if mt, _ := got.Body["max_tokens"].(float64); mt != DefaultMaxTokens {
		t.Fatalf("default max_tokens not sent: %v", got.Body["max_tokens"])
	}
	if temp, _ := got.Body["temperature"].(float64); temp < 0.59 || temp > 0.61 {
		t.Fatalf("default temperature not sent: %v", got.Body["temperature"])
	}
}

func TestOpenAIClient_EmptyChoices(t *testing.T) {
	var got capturedRequest
	srv := newCompletionServer(t, http.StatusOK, `{"choices":[]}`, &got)
	c := NewOpenAI(OpenAIConfig{APIKey: "k", URL: srv.URL, Model: "m"})
	resp, err := c.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatalf("empty choices must not be an error: %v", err)
	}
	if resp.Content != "" {
		t.Fatalf("want empty content, got %q", resp.Content)
	}
}

func TestOpenAIClient_ServerError(t *testing.T) {
	var got capturedRequest
	srv := newCompletionServer(t, http.StatusUnauthorized, `{"error":{"message":"bad key","type":"invalid_request_error"}}`, &got)
	c := NewOpenAI(OpenAIConfig{APIKey: "k", URL: srv.URL, Model: "m"})
	if _, err := c.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}); err == nil {
		t.Fatalf("expected error on 401")
	}
}

func TestOpenAIClient_MalformedBody(t *testing.T) {
	var got capturedRequest
	srv := newCompletionServer(t, http.StatusOK, `<html>gateway</html>`, &got)
	c := NewOpenAI(OpenAIConfig{APIKey: "k", URL: srv.URL, Model: "m"})
	if _, err := c.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestBaseURL(t *testing.T) {
	cases := map[string]string{
		"https://api.groq.com/openai/v1/chat/completions":  "https://api.groq.com/openai/v1",
		"https://api.groq.com/openai/v1/chat/completions/": "https://api.groq.com/openai/v1",
		"https://openrouter.ai/api/v1":                     "https://openrouter.ai/api/v1",
		"":                                                 "",
	}
	for in, want := range cases {
		if got := BaseURL(in); got != want {
			t.Fatalf("BaseURL(%q) = %q, want %q", in, got, want)
		}
	}
}
