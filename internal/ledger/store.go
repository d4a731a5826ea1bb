// Package ledger owns the in-memory ledger state and writes every change
// through to persistence.
package ledger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

// Persistence loads and saves the complete ledger document.
type Persistence interface {
	Load(ctx context.Context) storage.LoadResult
	Save(ctx context.Context, data model.AppData) error
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides the transaction id source.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// Store is the single owner of ledger state. All reads return copies; all
// mutations persist the whole document before notifying subscribers.
type Store struct {
	persistence Persistence
	lastErr     error
	subscribers map[int]func(model.AppData)
	newID       IDGenerator
	data        model.AppData
	loadStatus  storage.LoadResult
	nextSubID   int
	mu          sync.RWMutex
}

// New creates a store and loads saved state. Loading never fails; when
// nothing usable is saved the store starts empty and LoadStatus says why.
func New(ctx context.Context, persistence Persistence, opts ...Option) *Store {
	s := &Store{
		persistence: persistence,
		subscribers: make(map[int]func(model.AppData)),
		newID:       NewUUIDv7,
	}
	for _, opt := range opts {
		opt(s)
	}

	result := persistence.Load(ctx)
	s.data = result.Data.Clone()
	s.loadStatus = storage.LoadResult{Status: result.Status, Reason: result.Reason}

	if result.IsFallback() {
		slog.Warn("Starting with an empty ledger", "reason", result.Reason)
	} else {
		slog.Info("Ledger loaded",
			"transactions", len(s.data.Transactions),
			"budgets", s.data.Budgets.Len())
	}

	return s
}

// AddTransaction assigns a fresh id, prepends the transaction and persists.
// Input is not validated here; callers run NewTransaction.Validate first.
func (s *Store) AddTransaction(ctx context.Context, in model.NewTransaction) model.Transaction {
	var added model.Transaction
	s.commit(ctx, "add transaction", func(d *model.AppData) bool {
		added = in.WithID(uniqueID(s.newID, d.HasTransaction))
		txs := make([]model.Transaction, 0, len(d.Transactions)+1)
		txs = append(txs, added)
		d.Transactions = append(txs, d.Transactions...)
		return true
	})
	return added
}

// DeleteTransaction removes the transaction with id. It reports whether
// anything was removed; deleting a missing id changes nothing.
func (s *Store) DeleteTransaction(ctx context.Context, id string) bool {
	return s.commit(ctx, "delete transaction", func(d *model.AppData) bool {
		kept := d.Transactions[:0:0]
		for _, t := range d.Transactions {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		if len(kept) == len(d.Transactions) {
			return false
		}
		if len(kept) == 0 {
			kept = nil
		}
		d.Transactions = kept
		return true
	})
}

// UpdateBudget sets the monthly limit for category, replacing any prior value.
func (s *Store) UpdateBudget(ctx context.Context, category string, amount float64) {
	s.commit(ctx, "update budget", func(d *model.AppData) bool {
		d.Budgets.Set(category, amount)
		return true
	})
}

// ImportData combines incoming data with the current state.
//
// Replace adopts incoming verbatim. Merge keeps every existing transaction
// and puts incoming transactions with unseen ids in front, in incoming
// order; budgets take incoming values, keeping existing-only categories.
// Any other mode leaves state untouched.
func (s *Store) ImportData(ctx context.Context, incoming model.AppData, mode ImportMode) {
	switch mode {
	case ModeReplace:
		s.commit(ctx, "import replace", func(d *model.AppData) bool {
			*d = incoming.Clone()
			return true
		})
	case ModeMerge:
		s.commit(ctx, "import merge", func(d *model.AppData) bool {
			*d = mergeData(*d, incoming)
			return true
		})
	default:
		slog.Error("Ignoring import with unknown mode", "mode", mode.String())
	}
}

// mergeData keeps the first entry per id. Incoming entries whose id is
// already present are dropped; a warning counts drops of blank ids.
func mergeData(existing, incoming model.AppData) model.AppData {
	seen := make(map[string]struct{}, len(existing.Transactions)+len(incoming.Transactions))
	for _, t := range existing.Transactions {
		seen[t.ID] = struct{}{}
	}

	var (
		merged           []model.Transaction
		clashes, blankID int
	)
	for _, t := range incoming.Transactions {
		if _, dup := seen[t.ID]; dup {
			clashes++
			if t.ID == "" {
				blankID++
			}
			continue
		}
		seen[t.ID] = struct{}{}
		merged = append(merged, t)
	}
	merged = append(merged, existing.Transactions...)

	if blankID > 0 {
		slog.Warn("Dropped imported transactions without a unique id",
			"blank_ids", blankID,
			"id_clashes", clashes)
	}

	out := model.AppData{
		Transactions: merged,
		Budgets:      existing.Budgets.Merge(incoming.Budgets),
	}
	return out.Clone()
}

// ExportData returns a deep copy of the current state.
func (s *Store) ExportData() model.AppData {
	return s.Snapshot()
}

// ResetData empties transactions and budgets.
func (s *Store) ResetData(ctx context.Context) {
	s.commit(ctx, "reset", func(d *model.AppData) bool {
		*d = model.AppData{}
		return true
	})
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() model.AppData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Transactions returns a copy of the transaction list, newest insert first.
func (s *Store) Transactions() []model.Transaction {
	return s.Snapshot().Transactions
}

// Budgets returns a copy of the budget limits.
func (s *Store) Budgets() model.Budgets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Budgets.Clone()
}

// Err returns the most recent persistence failure, or nil if the last save
// succeeded. In-memory state stays authoritative when saves fail.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// LoadStatus reports how startup state was obtained.
func (s *Store) LoadStatus() storage.LoadResult {
	return s.loadStatus
}

// Subscribe registers fn to receive a copy of the state after every change.
// The returned function unregisters it.
func (s *Store) Subscribe(fn func(model.AppData)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

// commit applies mutate under the write lock. When it reports a change the
// full document is saved and subscribers are notified after the lock is
// released.
func (s *Store) commit(ctx context.Context, op string, mutate func(*model.AppData) bool) bool {
	s.mu.Lock()
	if !mutate(&s.data) {
		s.mu.Unlock()
		return false
	}

	snapshot := s.data.Clone()
	if err := s.persistence.Save(ctx, snapshot); err != nil {
		s.lastErr = err
		slog.Error("Failed to persist ledger", "operation", op, "error", err)
	} else {
		s.lastErr = nil
	}

	listeners := make([]func(model.AppData), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot.Clone())
	}
	return true
}
