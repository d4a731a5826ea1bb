package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/config"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/testutil"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

// newTestApp builds an app over an in-memory SQLite ledger. input is what
// the user would type at prompts.
func newTestApp(t *testing.T, input string) (*app, *bytes.Buffer) {
	t.Helper()
	return newTestAppWithData(t, input, nil)
}

// newTestAppWithData is newTestApp with the ledger preloaded from initial.
func newTestAppWithData(t *testing.T, input string, initial *model.AppData) (*app, *bytes.Buffer) {
	t.Helper()

	db := testutil.SetupTestDBWithOptions(t, testutil.TestDBOptions{Seed: initial})

	money, err := cli.NewMoneyFormatter("en", "VND")
	require.NoError(t, err)

	out := &bytes.Buffer{}
	a := &app{
		in:     strings.NewReader(input),
		out:    out,
		errOut: &bytes.Buffer{},
		cfg: &config.Config{
			StorageKey:            testutil.TestKey,
			BackupDir:             t.TempDir(),
			ImportDefaultCategory: model.CategoryOther,
			AutoSnapshot:          true,
		},
		store:     db.Store,
		snapshots: db.Storage.Snapshots(),
		money:     money,
		now:       func() time.Time { return testNow },
	}
	return a, out
}

// seed adds transactions straight to the store.
func seed(t *testing.T, a *app, txs ...model.NewTransaction) {
	t.Helper()
	for _, tx := range txs {
		a.store.AddTransaction(context.Background(), tx)
	}
	require.NoError(t, a.store.Err())
}

func food(amount float64, date string) model.NewTransaction {
	return model.NewTransaction{Type: model.TypeExpense, Category: model.CategoryFood, Amount: amount, Date: date}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
