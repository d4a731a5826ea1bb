package backup

import (
	"context"
	"testing"

	"github.com/Veraticus/pocket-ledger/internal/ledger"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *ledger.Store {
	t.Helper()
	return ledger.New(context.Background(), storage.NewAdapter(storage.NewMemoryStore(), "test"))
}

func TestPending_Message(t *testing.T) {
	p := Stage(sampleData())
	assert.Equal(t, "Found 2 transactions in file", p.Message())
	assert.True(t, p.Active())
}

func TestPending_CommitOnce(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	p := Stage(sampleData())

	require.NoError(t, p.Commit(ctx, store, ledger.ModeReplace))
	assert.Equal(t, sampleData(), store.ExportData())
	assert.False(t, p.Active())

	store.ResetData(ctx)
	assert.ErrorIs(t, p.Commit(ctx, store, ledger.ModeMerge), ErrNothingPending)
	assert.True(t, store.ExportData().IsEmpty(), "second commit must not import again")
}

func TestPending_Merge(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	existing := store.AddTransaction(ctx, model.NewTransaction{
		Type: model.TypeExpense, Category: model.CategoryFood, Date: "2026-10-03", Amount: 1,
	})

	require.NoError(t, Stage(sampleData()).Commit(ctx, store, ledger.ModeMerge))

	txs := store.Transactions()
	require.Len(t, txs, 3)
	assert.Equal(t, "t2", txs[0].ID)
	assert.Equal(t, existing.ID, txs[2].ID)
}

func TestPending_Discard(t *testing.T) {
	store := newStore(t)
	p := Stage(sampleData())

	p.Discard()

	assert.False(t, p.Active())
	assert.ErrorIs(t, p.Commit(context.Background(), store, ledger.ModeReplace), ErrNothingPending)
	assert.True(t, store.ExportData().IsEmpty())
}

func TestStage_CopiesInput(t *testing.T) {
	data := sampleData()
	p := Stage(data)
	data.Transactions[0].Amount = 1

	assert.InDelta(t, 50000, p.Data().Transactions[0].Amount, 0)
}
