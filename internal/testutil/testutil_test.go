package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerBuilder(t *testing.T) {
	data := NewLedgerBuilder().
		WithIncome(model.CategoryOther, 100, "2026-10-01").
		WithExpense(model.CategoryFood, 40, "2026-10-02").WithNote("lunch").
		WithBudget(model.CategoryFood, 50).
		WithBudget(model.CategoryHousing, 10).
		Build()

	require.Len(t, data.Transactions, 2)
	assert.Equal(t, "tx-2", data.Transactions[0].ID)
	assert.Equal(t, "lunch", data.Transactions[0].Note)
	assert.Equal(t, "tx-1", data.Transactions[1].ID)
	assert.Equal(t, []string{model.CategoryFood, model.CategoryHousing}, data.Budgets.Categories())
}

func TestFixtures(t *testing.T) {
	dash := NewLedgerBuilder().WithFixture(FixtureDashboard).Build()
	assert.Len(t, dash.Transactions, 2)
	assert.InDelta(t, 1_000_000, dash.Budgets.Limit(model.CategoryFood), 0)

	two := NewLedgerBuilder().WithFixture(FixtureTwoMonths).Build()
	assert.Len(t, two.Transactions, 6)
	assert.Equal(t, 2, two.Budgets.Len())
}

func TestSetupTestDB(t *testing.T) {
	db := SetupTestDB(t)
	assert.Equal(t, storage.StatusEmptyFallback, db.Store.LoadStatus().Status)

	db.Store.UpdateBudget(context.Background(), model.CategoryFood, 10)
	assert.InDelta(t, 10, db.Saved().Budgets.Limit(model.CategoryFood), 0)
}

func TestSetupTestDBWithData(t *testing.T) {
	seed := NewLedgerBuilder().WithFixture(FixtureDashboard).Build()
	db := SetupTestDBWithData(t, seed)

	assert.Equal(t, storage.StatusLoaded, db.Store.LoadStatus().Status)
	assert.Equal(t, seed.Transactions, db.Store.Transactions())
}
