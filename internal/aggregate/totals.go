package aggregate

import (
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/shopspring/decimal"
)

// Totals summarizes one month of transactions.
type Totals struct {
	Income  float64
	Expense float64
	Balance float64
}

// inMonth matches on the YYYY-MM date prefix, so malformed dates never match.
func inMonth(t model.Transaction, m Month) bool {
	return t.YearMonth() == m.Prefix()
}

// exact converts a stored amount for exact summing. The ledger does not
// validate input, so NaN and infinities count as zero.
func exact(x float64) decimal.Decimal {
	if !model.IsFinite(x) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(x)
}

// MonthlyTotals sums income and expense for month. Balance is always
// Income - Expense. Sums are exact, so the result does not depend on order.
func MonthlyTotals(txs []model.Transaction, month Month) Totals {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txs {
		if !inMonth(t, month) {
			continue
		}
		switch t.Type {
		case model.TypeIncome:
			income = income.Add(exact(t.Amount))
		case model.TypeExpense:
			expense = expense.Add(exact(t.Amount))
		}
	}

	t := Totals{
		Income:  income.InexactFloat64(),
		Expense: expense.InexactFloat64(),
	}
	t.Balance = t.Income - t.Expense
	return t
}

// CategorySpend sums expense amounts per category for month. Categories
// with no spend are absent, including those whose entries sum to zero.
func CategorySpend(txs []model.Transaction, month Month) map[string]float64 {
	sums := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Type != model.TypeExpense || !inMonth(t, month) {
			continue
		}
		sums[t.Category] = sums[t.Category].Add(exact(t.Amount))
	}

	spend := make(map[string]float64, len(sums))
	for category, sum := range sums {
		if sum.IsZero() {
			continue
		}
		spend[category] = sum.InexactFloat64()
	}
	return spend
}
