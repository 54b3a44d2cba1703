// Package recommender asks a chat completion endpoint for course
// recommendations grounded in the user's badge collection.
package recommender

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"edusign/internal/badge"
	"edusign/internal/history"
	"edusign/internal/llm"
	"edusign/internal/metrics"
)

const NoResponse = "No response"

// BadgeLister is the read-only view of the badge store the advisor needs.
type BadgeLister interface {
	List(ctx context.Context) ([]badge.Badge, error)
}

// Advisor holds one chat session: the transcript, the input draft and the loading state.
// Overlapping asks are not serialized; their replies land in completion order.
type Advisor struct {
	badges     BadgeLister
	client     llm.Client
	transcript *history.Transcript
	log        *zap.Logger
	timeout    time.Duration

	mu       sync.Mutex
	input    string
	inFlight int
}

type Option func(*Advisor)

func WithLogger(l *zap.Logger) Option {
	return func(a *Advisor) { a.log = l }
}

// WithTimeout bounds each round trip to the completion endpoint; zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(a *Advisor) { a.timeout = d }
}

func NewAdvisor(badges BadgeLister, client llm.Client, opts ...Option) *Advisor {
	a := &Advisor{
		badges:     badges,
		client:     client,
		transcript: history.NewTranscript(),
		log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *Advisor) SetInput(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.input = text
}

func (a *Advisor) Input() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.input
}

// Loading reports whether any ask is still waiting for the endpoint.
func (a *Advisor) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inFlight > 0
}

func (a *Advisor) Transcript() []history.Entry {
	return a.transcript.Entries()
}

// Submit asks the current input draft.
func (a *Advisor) Submit(ctx context.Context) (history.Entry, bool) {
	return a.Ask(ctx, a.Input())
}

// Ask sends text to the endpoint and records the exchange. It returns the bot or
// error entry that settled this call; other calls may append in between. It returns
// false, and does nothing else, for blank input. Endpoint failures become error
// entries and are never returned as errors.
func (a *Advisor) Ask(ctx context.Context, text string) (history.Entry, bool) {
	if strings.TrimSpace(text) == "" {
		return history.Entry{}, false
	}

	a.mu.Lock()
	a.inFlight++
	a.mu.Unlock()
	defer a.settle()

	a.transcript.AppendUser(text)

	badges, err := a.badges.List(ctx)
	if err != nil {
		a.log.Warn("Reading badges for advisor context failed", zap.Error(err))
	}

	var entry history.Entry
	reply, err := a.complete(ctx, BuildMessages(badges, text))
	switch {
	case err != nil:
		metrics.AdvisorAsks.WithLabelValues("error").Inc()
		a.log.Error("Advisor request failed", zap.Error(err))
		entry = history.Entry{Kind: history.KindError, Text: err.Error()}
	case reply == "":
		metrics.AdvisorAsks.WithLabelValues("empty").Inc()
		entry = history.Entry{Kind: history.KindBot, Text: NoResponse}
	default:
		metrics.AdvisorAsks.WithLabelValues("reply").Inc()
		entry = history.Entry{Kind: history.KindBot, Text: reply}
	}
	a.transcript.Append(entry)
	return entry, true
}

func (a *Advisor) complete(ctx context.Context, msgs []llm.Message) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	start := time.Now()
	resp, err := a.client.Generate(ctx, msgs)
	metrics.AdvisorLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}

func (a *Advisor) settle() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inFlight--
	a.input = ""
}

// FormatBadges renders one "- name: description" line per badge.
func FormatBadges(badges []badge.Badge) string {
	lines := make([]string, 0, len(badges))
	for _, b := range badges {
		lines = append(lines, fmt.Sprintf("- %s: %s", b.Name, b.Description))
	}
	return strings.Join(lines, "\n")
}

// BuildMessages returns the system instruction carrying the badge context followed by the user's text.
func BuildMessages(badges []badge.Badge, userText string) []llm.Message {
	system := "You are an AI course advisor. The user has the following achievement badges:\n" +
		FormatBadges(badges) +
		".\n\nYour job is to recommend future courses the user should take based on their past achievements."
	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: userText},
	}
}
