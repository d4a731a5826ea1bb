// Package testutil provides shared test fixtures: a migrated in-memory
// database with a ledger on top, and a fluent builder for ledger documents.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/pocket-ledger/internal/ledger"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

// TestKey is the slot key used by test ledgers.
const TestKey = "pocket_test_ledger"

// TestDB is an in-memory SQLite database with a ledger store loaded from it.
type TestDB struct {
	Storage *storage.SQLiteStorage
	Store   *ledger.Store
	t       *testing.T
}

// TestDBOptions configures SetupTestDBWithOptions.
type TestDBOptions struct {
	// Seed is written to the slot before the store loads, so the store
	// starts in the Loaded state.
	Seed        *model.AppData
	StoreOpts   []ledger.Option
	SkipLoading bool
}

// SetupTestDB creates a migrated in-memory database and an empty ledger.
// Cleanup is registered on t.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	db.Store.AddTransaction(ctx, in)
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithData creates a test database whose ledger starts from data.
func SetupTestDBWithData(t *testing.T, data model.AppData) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{Seed: &data})
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()
	ctx := context.Background()

	db, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	adapter := storage.NewAdapter(db, TestKey)
	if opts.Seed != nil {
		if err := adapter.Save(ctx, *opts.Seed); err != nil {
			t.Fatalf("failed to seed ledger: %v", err)
		}
	}

	tdb := &TestDB{Storage: db, t: t}
	if !opts.SkipLoading {
		tdb.Store = ledger.New(ctx, adapter, opts.StoreOpts...)
	}
	return tdb
}

// Saved returns what is currently persisted in the slot, failing the test
// when the slot is absent or unreadable.
func (db *TestDB) Saved() model.AppData {
	db.t.Helper()
	res := storage.NewAdapter(db.Storage, TestKey).Load(context.Background())
	if res.IsFallback() {
		db.t.Fatalf("no readable ledger saved: %v", res.Reason)
	}
	return res.Data
}
