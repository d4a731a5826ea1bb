package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction_Validate(t *testing.T) {
	valid := NewTransaction{
		Type:     TypeExpense,
		Category: CategoryFood,
		Date:     "2026-10-01",
		Amount:   50000,
	}

	tests := []struct {
		wantErr error
		mutate  func(*NewTransaction)
		name    string
	}{
		{name: "valid", mutate: func(*NewTransaction) {}},
		{name: "zero amount", mutate: func(n *NewTransaction) { n.Amount = 0 }, wantErr: ErrInvalidAmount},
		{name: "negative amount", mutate: func(n *NewTransaction) { n.Amount = -5 }, wantErr: ErrInvalidAmount},
		{name: "NaN amount", mutate: func(n *NewTransaction) { n.Amount = math.NaN() }, wantErr: ErrInvalidAmount},
		{name: "infinite amount", mutate: func(n *NewTransaction) { n.Amount = math.Inf(1) }, wantErr: ErrInvalidAmount},
		{name: "negative infinite amount", mutate: func(n *NewTransaction) { n.Amount = math.Inf(-1) }, wantErr: ErrInvalidAmount},
		{name: "unknown type", mutate: func(n *NewTransaction) { n.Type = "transfer" }, wantErr: ErrInvalidType},
		{name: "bad date", mutate: func(n *NewTransaction) { n.Date = "01/10/2026" }, wantErr: ErrInvalidDate},
		{name: "unknown category is fine", mutate: func(n *NewTransaction) { n.Category = "Pets" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := valid
			tt.mutate(&n)
			err := n.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(0))
	assert.True(t, IsFinite(-1.5))
	assert.True(t, IsFinite(math.MaxFloat64))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
	assert.False(t, IsFinite(math.Inf(-1)))
}

func TestParseTransactionType(t *testing.T) {
	typ, err := ParseTransactionType(" Income ")
	require.NoError(t, err)
	assert.Equal(t, TypeIncome, typ)

	_, err = ParseTransactionType("refund")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestTransaction_YearMonth(t *testing.T) {
	assert.Equal(t, "2026-10", Transaction{Date: "2026-10-18"}.YearMonth())
	assert.Equal(t, "", Transaction{Date: "2026"}.YearMonth())
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "18/10/2026", FormatDate("2026-10-18"))
	assert.Equal(t, "garbage", FormatDate("garbage"))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Food & Dining", CategoryLabel(CategoryFood))
	assert.Equal(t, "Pets", CategoryLabel("Pets"))
	assert.Len(t, Categories(), 7)
	assert.True(t, IsKnownCategory(CategoryOther))
	assert.False(t, IsKnownCategory("Pets"))
}

func TestAppData_JSON(t *testing.T) {
	t.Run("empty encodes both fields", func(t *testing.T) {
		out, err := json.Marshal(AppData{})
		require.NoError(t, err)
		assert.JSONEq(t, `{"transactions":[],"budgets":{}}`, string(out))
	})

	t.Run("missing fields default to empty", func(t *testing.T) {
		var d AppData
		require.NoError(t, json.Unmarshal([]byte(`{}`), &d))
		assert.Equal(t, AppData{}, d)
		assert.True(t, d.IsEmpty())
	})

	t.Run("round trip", func(t *testing.T) {
		in := AppData{
			Transactions: []Transaction{
				{ID: "b", Type: TypeExpense, Amount: 20, Category: CategoryFood, Date: "2026-10-02", Note: "lunch"},
				{ID: "a", Type: TypeIncome, Amount: 100, Category: CategoryOther, Date: "2026-10-01"},
			},
			Budgets: BudgetsOf("Food", 10),
		}
		raw, err := json.Marshal(in)
		require.NoError(t, err)

		var out AppData
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, in, out)
		assert.True(t, out.HasTransaction("a"))
		assert.False(t, out.HasTransaction("c"))
	})
}

func TestAppData_CloneIsIndependent(t *testing.T) {
	in := AppData{
		Transactions: []Transaction{{ID: "a", Amount: 1}},
		Budgets:      BudgetsOf("Food", 10),
	}
	clone := in.Clone()
	clone.Transactions[0].Amount = 99
	clone.Budgets.Set("Food", 20)

	assert.Equal(t, 1.0, in.Transactions[0].Amount)
	assert.Equal(t, 10.0, in.Budgets.Limit("Food"))
}
