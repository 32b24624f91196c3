package telemetry

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/onyxlabs/onyxgpt/stores"
)

func TestRecordCall_CapsSequence(t *testing.T) {
	logger := NewLogger(stores.NewMemoryStore())

	for i := 0; i < MaxEntries+1; i++ {
		err := logger.RecordCall(CallRecord{
			Method: fmt.Sprintf("call-%d", i),
			Params: map[string]any{"n": i},
		})
		if err != nil {
			t.Fatalf("record %d failed: %v", i, err)
		}
	}

	entries, err := logger.Entries()
	if err != nil {
		t.Fatalf("failed to read entries: %v", err)
	}
	if len(entries) != MaxEntries {
		t.Fatalf("expected exactly %d entries, got %d", MaxEntries, len(entries))
	}

	// Newest first: the last recorded call leads, the very first is evicted
	if entries[0].Details.Method != fmt.Sprintf("call-%d", MaxEntries) {
		t.Errorf("newest entry should be first, got %s", entries[0].Details.Method)
	}
	if entries[len(entries)-1].Details.Method != "call-1" {
		t.Errorf("oldest surviving entry should be call-1, got %s", entries[len(entries)-1].Details.Method)
	}
	for _, e := range entries {
		if e.Details.Method == "call-0" {
			t.Error("oldest entry should have been evicted")
		}
	}
}

func TestRecordCall_EntryShape(t *testing.T) {
	logger := NewLogger(stores.NewMemoryStore())

	if err := logger.RecordCall(CallRecord{Method: "chat", Duration: 12, StartTime: 1000}); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	entries, _ := logger.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Type != "api" {
		t.Errorf("entry type should be the fixed tag \"api\", got %q", e.Type)
	}
	if e.ID == "" {
		t.Error("entry should carry a generated id")
	}
	if e.Timestamp == 0 {
		t.Error("entry should carry a creation timestamp")
	}
	if e.Message == "" {
		t.Error("entry should carry a human-readable summary")
	}
}

func TestRecordCall_UniqueIDs(t *testing.T) {
	logger := NewLogger(stores.NewMemoryStore())

	for i := 0; i < 50; i++ {
		if err := logger.RecordCall(CallRecord{Method: "chat"}); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	entries, _ := logger.Entries()
	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.ID] {
			t.Fatalf("duplicate entry id %q", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestRecordCall_ConcurrentWritersLoseNothing(t *testing.T) {
	logger := NewLogger(stores.NewMemoryStore())

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := logger.RecordCall(CallRecord{Method: fmt.Sprintf("w-%d", n)}); err != nil {
				t.Errorf("writer %d failed: %v", n, err)
			}
		}(i)
	}
	wg.Wait()

	entries, err := logger.Entries()
	if err != nil {
		t.Fatalf("failed to read entries: %v", err)
	}
	if len(entries) != writers {
		t.Errorf("interleaved writes lost entries: got %d, want %d", len(entries), writers)
	}
}

func TestCallLogger_TruncatesLongResponse(t *testing.T) {
	logger := NewLogger(stores.NewMemoryStore())

	long := strings.Repeat("x", 600)
	cl := logger.NewCallLogger()
	cl.LogSuccess("chat", nil, long)

	entries, _ := logger.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	stored, ok := entries[0].Details.Response.(string)
	if !ok {
		t.Fatalf("expected textual response, got %T", entries[0].Details.Response)
	}
	if len(stored) > MaxResponseChars+4 {
		t.Errorf("stored response too long: %d chars", len(stored))
	}
	if !strings.HasSuffix(stored, "...") {
		t.Error("truncated response should end with the ellipsis marker")
	}
}

func TestCallLogger_ShortResponseUnchanged(t *testing.T) {
	logger := NewLogger(stores.NewMemoryStore())

	cl := logger.NewCallLogger()
	cl.LogSuccess("chat", nil, "short answer")

	entries, _ := logger.Entries()
	if got := entries[0].Details.Response; got != "short answer" {
		t.Errorf("short response should be stored as-is, got %v", got)
	}
}

func TestCallLogger_NonTextualResponseStoredAsIs(t *testing.T) {
	logger := NewLogger(stores.NewMemoryStore())

	cl := logger.NewCallLogger()
	cl.LogSuccess("chat", nil, map[string]any{"tokens": 42})

	entries, _ := logger.Entries()
	resp, ok := entries[0].Details.Response.(map[string]any)
	if !ok {
		t.Fatalf("structured response should not be coerced, got %T", entries[0].Details.Response)
	}
	if resp["tokens"] != 42 {
		t.Errorf("unexpected response payload: %v", resp)
	}
}

func TestCallLogger_ErrorReducedToMessage(t *testing.T) {
	logger := NewLogger(stores.NewMemoryStore())

	cl := logger.NewCallLogger()
	cl.LogError("chat", map[string]any{"model": "gpt-5"}, fmt.Errorf("rate limited"))

	entries, _ := logger.Entries()
	e := entries[0]
	if e.Details.Error != "rate limited" {
		t.Errorf("error should be reduced to its message, got %q", e.Details.Error)
	}
	if e.Details.Duration < 0 {
		t.Errorf("duration should never be negative, got %d", e.Details.Duration)
	}
	if e.Details.Method != "chat" {
		t.Errorf("method should be preserved, got %q", e.Details.Method)
	}
}

func TestCallLogger_DurationSpansFromCreation(t *testing.T) {
	logger := NewLogger(stores.NewMemoryStore())

	cl := logger.NewCallLogger()
	time.Sleep(15 * time.Millisecond)
	cl.LogSuccess("chat", nil, "ok")

	entries, _ := logger.Entries()
	if entries[0].Details.Duration < 10 {
		t.Errorf("duration should cover the span since logger creation, got %dms", entries[0].Details.Duration)
	}
}

func TestPruneOlderThan(t *testing.T) {
	store := stores.NewMemoryStore()
	logger := NewLogger(store)

	if err := logger.RecordCall(CallRecord{Method: "recent"}); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	// Backdate a second entry well past the cutoff
	entries, _ := store.ReadLogs()
	old := entries[0]
	old.ID = "old"
	old.Details.Method = "stale"
	old.Timestamp = time.Now().Add(-48 * time.Hour).UnixMilli()
	if err := store.WriteLogs(append(entries, old)); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	removed, err := logger.PruneOlderThan(24 * time.Hour)
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed entry, got %d", removed)
	}

	remaining, _ := logger.Entries()
	if len(remaining) != 1 || remaining[0].Details.Method != "recent" {
		t.Errorf("unexpected remaining entries: %+v", remaining)
	}
}
