package history

import (
	"sync"
	"testing"
)

func TestTranscriptAppendAndCopy(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("what next?")
	tr.AppendBot("Try Go")
	tr.AppendError("timeout")

	es := tr.Entries()
	if len(es) != 3 {
		t.Fatalf("want 3 entries, got %d", len(es))
	}
	if es[0].Kind != KindUser || es[1].Kind != KindBot || es[2].Kind != KindError {
		t.Fatalf("unexpected kinds: %+v", es)
	}
	if es[0].String() != "🧑 You: what next?" || es[1].String() != "🤖 Bot: Try Go" || es[2].String() != "⚠️ Error: timeout" {
		t.Fatalf("unexpected rendering: %q %q %q", es[0], es[1], es[2])
	}

	// Ensure copy semantics (modifying returned slice does not affect internal state)
	es[0] = Entry{Kind: KindBot, Text: "mutated"}
	if tr.Entries()[0].Text != "what next?" {
		t.Fatalf("internal state mutated via returned slice")
	}
}

func TestTranscriptConcurrentAppend(t *testing.T) {
	tr := NewTranscript()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.AppendUser("q")
		}()
	}
	wg.Wait()
	if tr.Len() != 20 {
		t.Fatalf("want 20 entries, got %d", tr.Len())
	}
}
