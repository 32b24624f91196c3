package stores

import (
	"sync"

	"github.com/onyxlabs/onyxgpt/models"
)

// MemoryStore implements LogStore in memory. Used in tests and when no
// persistence backend is configured; the log sequence does not survive the
// process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []models.APICallLogEntry
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: []models.APICallLogEntry{}}
}

// ReadLogs returns a copy of the stored sequence, newest first.
func (s *MemoryStore) ReadLogs() ([]models.APICallLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.APICallLogEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// WriteLogs replaces the stored sequence.
func (s *MemoryStore) WriteLogs(entries []models.APICallLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make([]models.APICallLogEntry, len(entries))
	copy(s.entries, entries)
	return nil
}

// Connect is a no-op for the in-memory store
func (s *MemoryStore) Connect() error { return nil }

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error { return nil }

// Ping always succeeds for the in-memory store
func (s *MemoryStore) Ping() error { return nil }
