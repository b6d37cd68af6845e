// internal/store/memory.go
//
// Answer persistence.
// Responsibilities:
//   - The Store interface shared by the memory, SQLite and Redis backends.
//   - The in-memory backend: a map keyed by date, guarded by an RWMutex.
//     State is lost when the process restarts.
//
// Answers for a calendar date never change, so every backend keeps the first
// answer saved for a date and only fills in a missing puzzle number later.

package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/robalobadob/wordle-answer/internal/words"
)

// ErrNotFound is returned by Get when no answer is stored for the date.
var ErrNotFound = errors.New("not found")

// Store persists resolved answers keyed by date (YYYY-MM-DD).
type Store interface {
	// Save records rec. An existing answer for rec.Date is kept.
	Save(ctx context.Context, rec words.Record) error

	// Get returns the answer stored for date, or ErrNotFound.
	Get(ctx context.Context, date string) (words.Record, error)

	// List returns up to limit records, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]words.Record, error)

	Close() error
}

type memory struct {
	mu   sync.RWMutex
	recs map[string]words.Record
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{recs: make(map[string]words.Record)}
}

func (m *memory) Save(_ context.Context, rec words.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[rec.Date] = merge(m.recs[rec.Date], rec)
	return nil
}

func (m *memory) Get(_ context.Context, date string) (words.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.recs[date]; ok {
		return r, nil
	}
	return words.Record{}, ErrNotFound
}

func (m *memory) List(_ context.Context, limit int) ([]words.Record, error) {
	m.mu.RLock()
	out := make([]words.Record, 0, len(m.recs))
	for _, r := range m.recs {
		out = append(out, r)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memory) Close() error { return nil }

// merge keeps old's answer when present and takes the first known puzzle number.
func merge(old, rec words.Record) words.Record {
	if old.Answer == "" {
		return rec
	}
	if old.PuzzleNumber == 0 {
		old.PuzzleNumber = rec.PuzzleNumber
	}
	return old
}
