// Package history keeps the in-memory advisor transcript. Nothing here is persisted.
package history

import (
	"sync"
)

type Kind string

const (
	KindUser  Kind = "user"
	KindBot   Kind = "bot"
	KindError Kind = "error"
)

type Entry struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// String renders the entry the way the chat panel shows it.
func (e Entry) String() string {
	switch e.Kind {
	case KindUser:
		return "🧑 You: " + e.Text
	case KindBot:
		return "🤖 Bot: " + e.Text
	case KindError:
		return "⚠️ Error: " + e.Text
	default:
		return e.Text
	}
}

// Transcript is an append-only log safe for concurrent use.
type Transcript struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

func (t *Transcript) AppendUser(text string)  { t.Append(Entry{Kind: KindUser, Text: text}) }
func (t *Transcript) AppendBot(text string)   { t.Append(Entry{Kind: KindBot, Text: text}) }
func (t *Transcript) AppendError(text string) { t.Append(Entry{Kind: KindError, Text: text}) }

func (t *Transcript) Append(e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, e)
}

// Entries returns a copy of the log in append order.
func (t *Transcript) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
