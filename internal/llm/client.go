package llm

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

// Response holds the first completion choice. Content is empty when the
// provider returned no choices.
type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}

// Options are the sampling settings sent with every request.
type Options struct {
	Temperature float32
	MaxTokens   int
}

// Defaults used when a client is built without a model or options.
const (
	DefaultModel       = "llama-3.3-70b-versatile"
	DefaultTemperature = 0.6
	DefaultMaxTokens   = 800
)

func DefaultOptions() Options {
	return Options{Temperature: DefaultTemperature, MaxTokens: DefaultMaxTokens}
}
