package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// Load fallback reasons.
var (
	ErrNoSavedState = errors.New("no saved state")
	ErrCorruptState = errors.New("saved state is unreadable")
)

// LoadStatus tags how startup state was obtained.
type LoadStatus int

const (
	// StatusLoaded means the saved document was read and decoded.
	StatusLoaded LoadStatus = iota
	// StatusEmptyFallback means the ledger starts empty; Reason says why.
	StatusEmptyFallback
)

func (s LoadStatus) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusEmptyFallback:
		return "empty-fallback"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(s))
	}
}

// LoadResult is the tagged outcome of Adapter.Load. Data is always usable.
type LoadResult struct {
	Reason error
	Data   model.AppData
	Status LoadStatus
}

// Loaded wraps successfully decoded state.
func Loaded(data model.AppData) LoadResult {
	return LoadResult{Data: data, Status: StatusLoaded}
}

// EmptyFallback records that state could not be loaded and starts empty.
func EmptyFallback(reason error) LoadResult {
	return LoadResult{Reason: reason, Status: StatusEmptyFallback}
}

// IsFallback reports whether the load fell back to empty state.
func (r LoadResult) IsFallback() bool {
	return r.Status == StatusEmptyFallback
}

// Adapter serializes the whole ledger document into one key of a KeyValueStore.
// It is the only component that touches durable storage.
type Adapter struct {
	kv    KeyValueStore
	key   string
	retry common.RetryOptions
}

// NewAdapter creates an adapter for the given slot key.
func NewAdapter(kv KeyValueStore, key string) *Adapter {
	return &Adapter{
		kv:    kv,
		key:   key,
		retry: common.DefaultRetryOptions(),
	}
}

// Key returns the slot key the adapter reads and writes.
func (a *Adapter) Key() string {
	return a.key
}

// Load reads the saved document. It never fails: absent, unreadable and
// malformed slots all yield an EmptyFallback. Corrupt content is left in
// place untouched.
func (a *Adapter) Load(ctx context.Context) LoadResult {
	raw, found, err := a.kv.Get(ctx, a.key)
	if err != nil {
		return EmptyFallback(fmt.Errorf("read %q: %w", a.key, err))
	}
	if !found || strings.TrimSpace(raw) == "" {
		return EmptyFallback(ErrNoSavedState)
	}

	var data model.AppData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return EmptyFallback(fmt.Errorf("%w: %w", ErrCorruptState, err))
	}

	slog.Debug("Loaded ledger state",
		"key", a.key,
		"transactions", len(data.Transactions),
		"budgets", data.Budgets.Len())

	return Loaded(data)
}

// Save re-serializes the complete document and writes it to the slot.
func (a *Adapter) Save(ctx context.Context, data model.AppData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	err = common.WithRetry(ctx, func() error {
		return a.kv.Set(ctx, a.key, string(raw))
	}, a.retry)
	if err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}
