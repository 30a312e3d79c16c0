// Package history persists the question/answer log produced by the query
// workflow. Backends exist for memory, SQLite, Redis and Postgres.
package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is one answered question. Route and PathLabel capture which
// generation path produced the answer.
type Record struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Route     string    `json:"route"`
	PathLabel string    `json:"path_label"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRecord creates a record with a generated ID and the current time.
func NewRecord(sessionID, question, answer, route, pathLabel string) Record {
	return Record{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Question:  question,
		Answer:    answer,
		Route:     route,
		PathLabel: pathLabel,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is an append-only history log grouped by session.
type Store interface {
	Append(ctx context.Context, record Record) error
	List(ctx context.Context, sessionID string) ([]Record, error)
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStore keeps records in process memory, ordered by insertion.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]Record
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]Record)}
}

// Append adds a record to its session log.
func (s *MemoryStore) Append(ctx context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.SessionID] = append(s.records[record.SessionID], record)
	return nil
}

// List returns the session's records in insertion order.
func (s *MemoryStore) List(ctx context.Context, sessionID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.records[sessionID]
	out := make([]Record, len(records))
	copy(out, records)
	return out, nil
}

// Clear removes all records for a session.
func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, sessionID)
	return nil
}
