// Package storage keeps analyzed batches in memory so the API can list and
// re-render past results. This is display-state, not persistence: everything
// is lost on restart, matching the session-cache behavior of the dashboard
// this service backs.
package storage

import (
	"sync"
	"time"

	"github.com/riskwatch/account-risk-api/internal/risk"
)

// Batch is one analyzed collection of accounts.
type Batch struct {
	ID          string             `json:"id"`
	Source      string             `json:"source"` // "generated", "upload", or "demo"
	CreatedAt   time.Time          `json:"created_at"`
	Assessments []*risk.Assessment `json:"assessments"`
	Summary     risk.Distribution  `json:"summary"`
	Skipped     []SkippedAccount   `json:"skipped,omitempty"`
}

// SkippedAccount records a batch entry that failed validation and was
// excluded from scoring.
type SkippedAccount struct {
	AccountID string `json:"account_id"`
	Reason    string `json:"reason"`
}

// BatchStore defines the interface for batch result caching.
type BatchStore interface {
	Save(batch *Batch) error
	Get(id string) (*Batch, error)
	List() ([]*Batch, error)
}

// MemoryStore implements BatchStore with an in-memory map. Retention is
// bounded: once the limit is reached, the oldest batch is evicted on save.
type MemoryStore struct {
	mu      sync.RWMutex
	batches map[string]*Batch
	order   []string
	limit   int
}

// NewMemoryStore creates a memory store keeping at most limit batches.
// A non-positive limit disables eviction.
func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{
		batches: make(map[string]*Batch),
		limit:   limit,
	}
}

// Save stores a batch, evicting the oldest entry if over the limit.
func (s *MemoryStore) Save(batch *Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.batches[batch.ID]; !exists {
		s.order = append(s.order, batch.ID)
	}
	s.batches[batch.ID] = batch

	for s.limit > 0 && len(s.order) > s.limit {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.batches, oldest)
	}
	return nil
}

// Get returns the batch with the given ID.
func (s *MemoryStore) Get(id string) (*Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	batch, exists := s.batches[id]
	if !exists {
		return nil, ErrBatchNotFound
	}
	return batch, nil
}

// List returns stored batches, most recent first.
func (s *MemoryStore) List() ([]*Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Batch, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		result = append(result, s.batches[s.order[i]])
	}
	return result, nil
}
