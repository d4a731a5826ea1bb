package aggregate

import (
	"math"
	"testing"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var october = Month{Year: 2026, Month: time.October}

func tx(id string, typ model.TransactionType, category string, amount float64, date string) model.Transaction {
	return model.Transaction{ID: id, Type: typ, Category: category, Amount: amount, Date: date}
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2026-10")
	require.NoError(t, err)
	assert.Equal(t, october, m)
	assert.Equal(t, "2026-10", m.String())

	_, err = ParseMonth("10/2026")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestCurrentMonth(t *testing.T) {
	now := time.Date(2026, 1, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, Month{Year: 2026, Month: time.January}, CurrentMonth(now))
	assert.Equal(t, "2026-01", CurrentMonth(now).Prefix())
}

func TestMonthlyTotals(t *testing.T) {
	txs := []model.Transaction{
		tx("1", model.TypeIncome, model.CategoryOther, 10_000_000, "2026-10-01"),
		tx("2", model.TypeExpense, model.CategoryFood, 2_000_000, "2026-10-15"),
		tx("3", model.TypeExpense, model.CategoryFood, 500, "2026-09-30"),
		tx("4", model.TypeIncome, model.CategoryOther, 7, "not-a-date"),
	}

	got := MonthlyTotals(txs, october)

	assert.InDelta(t, 10_000_000, got.Income, 0)
	assert.InDelta(t, 2_000_000, got.Expense, 0)
	assert.InDelta(t, 8_000_000, got.Balance, 0)
}

func TestMonthlyTotals_NonFiniteAmountsCountAsZero(t *testing.T) {
	txs := []model.Transaction{
		tx("1", model.TypeIncome, model.CategoryOther, 1000, "2026-10-01"),
		tx("2", model.TypeIncome, model.CategoryOther, math.Inf(1), "2026-10-02"),
		tx("3", model.TypeExpense, model.CategoryFood, math.NaN(), "2026-10-03"),
		tx("4", model.TypeExpense, model.CategoryFood, math.Inf(-1), "2026-10-04"),
		tx("5", model.TypeExpense, model.CategoryFood, 300, "2026-10-05"),
	}

	var got Totals
	require.NotPanics(t, func() { got = MonthlyTotals(txs, october) })
	assert.InDelta(t, 1000, got.Income, 0)
	assert.InDelta(t, 300, got.Expense, 0)
	assert.InDelta(t, 700, got.Balance, 0)

	var spend map[string]float64
	require.NotPanics(t, func() { spend = CategorySpend(txs, october) })
	assert.Equal(t, map[string]float64{model.CategoryFood: 300}, spend)

	budgets := model.BudgetsOf(model.CategoryFood, math.NaN(), model.CategoryHousing, math.Inf(1))
	require.NotPanics(t, func() { _ = BudgetLines(txs, budgets, october) })
	require.NotPanics(t, func() { _ = Summarize(model.AppData{Transactions: txs, Budgets: budgets}, october) })
}

func TestMonthlyTotals_Empty(t *testing.T) {
	assert.Equal(t, Totals{}, MonthlyTotals(nil, october))
}

func TestMonthlyTotals_OrderIndependent(t *testing.T) {
	txs := []model.Transaction{
		tx("1", model.TypeExpense, model.CategoryFood, 0.1, "2026-10-01"),
		tx("2", model.TypeExpense, model.CategoryFood, 0.2, "2026-10-01"),
		tx("3", model.TypeExpense, model.CategoryFood, 0.3, "2026-10-01"),
		tx("4", model.TypeIncome, model.CategoryOther, 1.7, "2026-10-01"),
	}
	reversed := make([]model.Transaction, len(txs))
	for i, t := range txs {
		reversed[len(txs)-1-i] = t
	}

	a := MonthlyTotals(txs, october)
	b := MonthlyTotals(reversed, october)

	assert.Equal(t, a, b)
	assert.Equal(t, 0.6, a.Expense)
	assert.Equal(t, a.Income-a.Expense, a.Balance)
}

func TestCategorySpend(t *testing.T) {
	txs := []model.Transaction{
		tx("1", model.TypeExpense, model.CategoryFood, 100, "2026-10-01"),
		tx("2", model.TypeExpense, model.CategoryFood, 50, "2026-10-02"),
		tx("3", model.TypeExpense, "Custom", 10, "2026-10-03"),
		tx("4", model.TypeIncome, model.CategoryOther, 999, "2026-10-03"),
		tx("5", model.TypeExpense, model.CategoryHousing, 0, "2026-10-03"),
		tx("6", model.TypeExpense, model.CategoryShopping, 10, "2026-11-01"),
	}

	got := CategorySpend(txs, october)

	assert.Equal(t, map[string]float64{model.CategoryFood: 150, "Custom": 10}, got)
}

func TestBudgetAlerts(t *testing.T) {
	spend := map[string]float64{
		model.CategoryFood:      2_000_000,
		model.CategoryHousing:   100,
		model.CategoryShopping:  500,
		model.CategoryTransport: 300,
	}
	budgets := model.BudgetsOf(
		model.CategoryShopping, 100,
		model.CategoryHousing, 100,
		model.CategoryTransport, 0,
		model.CategoryFood, 1_000_000,
		model.CategoryOther, 10,
	)

	got := BudgetAlerts(spend, budgets)

	assert.Equal(t, []string{model.CategoryShopping, model.CategoryFood}, got)
}

func TestBudgetAlerts_None(t *testing.T) {
	assert.Empty(t, BudgetAlerts(map[string]float64{model.CategoryFood: 5}, model.Budgets{}))
}

func TestBudgetProgress(t *testing.T) {
	tests := []struct {
		name      string
		display   string
		spent     float64
		limit     float64
		percent   float64
		remaining float64
		overage   float64
		over      bool
	}{
		{
			name:      "over budget",
			spent:     1_500_000,
			limit:     1_000_000,
			percent:   100,
			remaining: -500_000,
			overage:   500_000,
			over:      true,
			display:   "150%",
		},
		{
			name:    "no limit no spend",
			display: "0%",
		},
		{
			name:      "spend without limit",
			spent:     200,
			remaining: -200,
			overage:   200,
			display:   "0%",
		},
		{
			name:      "under budget",
			spent:     250,
			limit:     1000,
			percent:   25,
			remaining: 750,
			display:   "25%",
		},
		{
			name:      "NaN limit means no limit",
			spent:     200,
			limit:     math.NaN(),
			remaining: -200,
			overage:   200,
			display:   "0%",
		},
		{
			name:      "infinite spend counts as zero",
			spent:     math.Inf(1),
			limit:     1000,
			remaining: 1000,
			display:   "0%",
		},
		{
			name:      "exactly at limit",
			spent:     1000,
			limit:     1000,
			percent:   100,
			remaining: 0,
			display:   "100%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BudgetProgress(tt.spent, tt.limit)
			assert.Equal(t, tt.over, p.IsOverBudget)
			assert.InDelta(t, tt.percent, p.Percentage, 1e-9)
			assert.InDelta(t, tt.remaining, p.Remaining, 1e-9)
			assert.InDelta(t, tt.overage, p.Overage(), 1e-9)
			assert.Equal(t, tt.display, p.Display())
		})
	}
}

func TestFilterTransactions(t *testing.T) {
	txs := []model.Transaction{
		tx("a", model.TypeExpense, model.CategoryFood, 1, "2026-10-01"),
		tx("b", model.TypeIncome, model.CategoryOther, 2, "2026-10-15"),
		tx("c", model.TypeExpense, model.CategoryFood, 3, "2026-10-15"),
		tx("d", model.TypeExpense, model.CategoryFood, 4, "2026-09-20"),
	}

	ids := func(list []model.Transaction) []string {
		out := make([]string, 0, len(list))
		for _, t := range list {
			out = append(out, t.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "all in month", filter: Filter{Type: FilterAll, Month: october}, want: []string{"b", "c", "a"}},
		{name: "expense in month", filter: Filter{Type: FilterExpense, Month: october}, want: []string{"c", "a"}},
		{name: "income in month", filter: Filter{Type: FilterIncome, Month: october}, want: []string{"b"}},
		{name: "any month", filter: Filter{Type: FilterAll}, want: []string{"b", "c", "a", "d"}},
		{name: "empty month", filter: Filter{Month: Month{Year: 2020, Month: time.May}}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterTransactions(txs, tt.filter)))
		})
	}
}

func TestCategoryBreakdown(t *testing.T) {
	got := CategoryBreakdown(map[string]float64{
		model.CategoryFood:    300,
		model.CategoryHousing: 100,
		"Zebra":               100,
	})

	require.Len(t, got, 3)
	assert.Equal(t, model.CategoryFood, got[0].ID)
	assert.Equal(t, "Food & Dining", got[0].Label)
	assert.InDelta(t, 0.6, got[0].Share, 1e-9)
	assert.Equal(t, model.CategoryHousing, got[1].ID)
	assert.Equal(t, "Zebra", got[2].ID)
	assert.Equal(t, "Zebra", got[2].Label)
}

func TestBudgetLines(t *testing.T) {
	txs := []model.Transaction{
		tx("1", model.TypeExpense, model.CategoryFood, 1_500_000, "2026-10-02"),
		tx("2", model.TypeExpense, "Custom", 10, "2026-10-02"),
	}
	budgets := model.BudgetsOf(model.CategoryFood, 1_000_000)

	lines := BudgetLines(txs, budgets, october)

	require.Len(t, lines, len(model.Categories()))
	food := lines[0]
	assert.Equal(t, model.CategoryFood, food.Category.ID)
	assert.True(t, food.HasLimit)
	assert.True(t, food.Progress.IsOverBudget)
	assert.InDelta(t, 500_000, food.Progress.Overage(), 0)
	for _, line := range lines[1:] {
		assert.False(t, line.HasLimit)
		assert.Zero(t, line.Spent)
	}
}

func TestSummarize_DashboardScenario(t *testing.T) {
	data := model.AppData{
		Transactions: []model.Transaction{
			tx("2", model.TypeExpense, model.CategoryFood, 2_000_000, "2026-10-10"),
			tx("1", model.TypeIncome, model.CategoryOther, 10_000_000, "2026-10-01"),
		},
		Budgets: model.BudgetsOf(model.CategoryFood, 1_000_000),
	}

	d := Summarize(data, october)

	assert.Equal(t, october, d.Month)
	assert.Equal(t, Totals{Income: 10_000_000, Expense: 2_000_000, Balance: 8_000_000}, d.Totals)
	assert.Equal(t, []string{model.CategoryFood}, d.Alerts)
	require.Len(t, d.Breakdown, 1)
	assert.InDelta(t, 1.0, d.Breakdown[0].Share, 0)
}

func TestParseTypeFilter(t *testing.T) {
	tests := []struct {
		in   string
		want TypeFilter
	}{
		{"", FilterAll},
		{"all", FilterAll},
		{" Income ", FilterIncome},
		{"EXPENSE", FilterExpense},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTypeFilter(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseTypeFilter("transfers")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}
