package telemetry

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/onyxlabs/onyxgpt/models"
	"github.com/onyxlabs/onyxgpt/stores"
)

const (
	// MaxEntries is the hard cap on the persisted log sequence. The oldest
	// entry is evicted when a new one pushes the sequence over the cap.
	MaxEntries = 500

	// MaxResponseChars bounds how much of a textual response is persisted.
	// Longer responses are cut and marked with an ellipsis; full responses
	// are never stored.
	MaxResponseChars = 500

	ellipsis = "..."
)

// entrySeq disambiguates IDs for entries created within the same millisecond.
var entrySeq atomic.Int64

// Logger records every call made to the external AI client into a bounded,
// persisted, newest-first sequence. The sequence is advisory debug data and
// never required for correctness of the chat flow.
//
// Each RecordCall is a read-modify-write of the entire persisted sequence, so
// all writes are serialized through the logger's mutex. Two Logger instances
// sharing one store would reintroduce the lost-update race; keep a single
// Logger per store.
type Logger struct {
	store stores.LogStore
	mu    sync.Mutex
}

// NewLogger creates a telemetry logger over the given store.
func NewLogger(store stores.LogStore) *Logger {
	return &Logger{store: store}
}

// CallRecord is a fully-formed record of one external-client call, handed to
// RecordCall by the call-logger closures.
type CallRecord struct {
	Method    string
	Params    map[string]any
	Response  any    // already truncated by the caller when textual
	Error     string // empty on success
	Duration  int64  // wall-clock ms
	StartTime int64  // epoch millis
}

// RecordCall constructs a log entry with a fresh time-derived identifier and
// the current timestamp, prepends it to the persisted sequence and truncates
// the sequence to the most recent MaxEntries. This is the sole mutation path;
// individual entries are never updated or deleted.
func (l *Logger) RecordCall(rec CallRecord) error {
	now := time.Now().UnixMilli()
	entry := models.APICallLogEntry{
		ID:        fmt.Sprintf("%d-%d", now, entrySeq.Add(1)),
		Type:      models.LogEntryType,
		Message:   summarize(rec),
		Timestamp: now,
		Details: models.CallDetails{
			Method:    rec.Method,
			Params:    rec.Params,
			Response:  rec.Response,
			Error:     rec.Error,
			Duration:  rec.Duration,
			StartTime: rec.StartTime,
		},
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.store.ReadLogs()
	if err != nil {
		return fmt.Errorf("failed to read log sequence: %w", err)
	}

	entries = append([]models.APICallLogEntry{entry}, entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	if err := l.store.WriteLogs(entries); err != nil {
		return fmt.Errorf("failed to write log sequence: %w", err)
	}
	return nil
}

// Entries returns the persisted sequence, newest first.
func (l *Logger) Entries() ([]models.APICallLogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.ReadLogs()
}

// PruneOlderThan drops entries older than age and reports how many were
// removed. Used by the retention sweeper.
func (l *Logger) PruneOlderThan(age time.Duration) (int, error) {
	cutoff := time.Now().Add(-age).UnixMilli()

	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.store.ReadLogs()
	if err != nil {
		return 0, fmt.Errorf("failed to read log sequence: %w", err)
	}

	kept := entries[:0:0]
	for _, e := range entries {
		if e.Timestamp >= cutoff {
			kept = append(kept, e)
		}
	}
	removed := len(entries) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := l.store.WriteLogs(kept); err != nil {
		return 0, fmt.Errorf("failed to write log sequence: %w", err)
	}
	return removed, nil
}

// CallLogger is a pair of recording closures bound to a shared call-start
// timestamp captured when the logger was created. Duration is computed as
// "now minus the captured start" at the moment LogSuccess/LogError is
// invoked, so it reflects the call's wall-clock span regardless of when
// logging happens relative to the call's completion.
type CallLogger struct {
	logger *Logger
	start  time.Time
}

// NewCallLogger captures the call-start timestamp and returns the recorder
// pair for one external-client call.
func (l *Logger) NewCallLogger() *CallLogger {
	return &CallLogger{logger: l, start: time.Now()}
}

// LogSuccess records a success entry. Textual responses are truncated to the
// first MaxResponseChars characters with an ellipsis marker before storage;
// non-textual responses are stored as-is.
func (c *CallLogger) LogSuccess(method string, params map[string]any, response any) {
	if text, ok := response.(string); ok {
		response = truncateResponse(text)
	}
	rec := CallRecord{
		Method:    method,
		Params:    params,
		Response:  response,
		Duration:  c.elapsedMS(),
		StartTime: c.start.UnixMilli(),
	}
	if err := c.logger.RecordCall(rec); err != nil {
		log.Printf("[TELEMETRY] Failed to record success for %s: %v", method, err)
	}
}

// LogError records a failure entry. The error is reduced to its message
// string; stack traces and structured error objects are not persisted.
func (c *CallLogger) LogError(method string, params map[string]any, callErr error) {
	msg := "unknown error"
	if callErr != nil {
		msg = callErr.Error()
	}
	rec := CallRecord{
		Method:    method,
		Params:    params,
		Error:     msg,
		Duration:  c.elapsedMS(),
		StartTime: c.start.UnixMilli(),
	}
	if err := c.logger.RecordCall(rec); err != nil {
		log.Printf("[TELEMETRY] Failed to record error for %s: %v", method, err)
	}
}

func (c *CallLogger) elapsedMS() int64 {
	d := time.Since(c.start).Milliseconds()
	if d < 0 {
		return 0
	}
	return d
}

// truncateResponse cuts a textual response to MaxResponseChars characters and
// appends the ellipsis marker.
func truncateResponse(text string) string {
	if utf8.RuneCountInString(text) <= MaxResponseChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:MaxResponseChars]) + ellipsis
}

// summarize builds the human-readable entry message.
func summarize(rec CallRecord) string {
	if rec.Error != "" {
		return fmt.Sprintf("API call %s failed after %dms: %s", rec.Method, rec.Duration, rec.Error)
	}
	return fmt.Sprintf("API call %s completed in %dms", rec.Method, rec.Duration)
}
