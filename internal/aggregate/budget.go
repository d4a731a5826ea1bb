package aggregate

import (
	"fmt"
	"math"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// BudgetAlerts returns the categories whose spend exceeds a positive limit,
// in budget insertion order. A zero or missing limit disables the alert.
func BudgetAlerts(spend map[string]float64, budgets model.Budgets) []string {
	var alerts []string
	for _, category := range budgets.Categories() {
		limit := budgets.Limit(category)
		if limit > 0 && spend[category] > limit {
			alerts = append(alerts, category)
		}
	}
	return alerts
}

// Progress describes spend against a single budget limit.
type Progress struct {
	// Percentage is spent/limit*100 clamped to [0, 100], for bar widths.
	Percentage float64
	// Ratio is spent/limit unclamped; zero when there is no limit.
	Ratio float64
	// Remaining is limit - spent; negative means over budget.
	Remaining    float64
	IsOverBudget bool
}

// BudgetProgress computes progress for spent against limit. Non-finite
// inputs count as zero.
func BudgetProgress(spent, limit float64) Progress {
	if !model.IsFinite(spent) {
		spent = 0
	}
	if !model.IsFinite(limit) {
		limit = 0
	}

	var ratio float64
	if limit > 0 {
		ratio = spent / limit
	}

	return Progress{
		Percentage:   math.Min(math.Max(ratio*100, 0), 100),
		Ratio:        ratio,
		Remaining:    exact(limit).Sub(exact(spent)).InexactFloat64(),
		IsOverBudget: limit > 0 && spent > limit,
	}
}

// Overage is how far spend exceeds the limit, or zero.
func (p Progress) Overage() float64 {
	if p.Remaining < 0 {
		return -p.Remaining
	}
	return 0
}

// Display renders the unclamped percentage rounded to a whole number.
func (p Progress) Display() string {
	return fmt.Sprintf("%.0f%%", p.Ratio*100)
}

// BudgetLine is one row of the budget screen.
type BudgetLine struct {
	Category model.Category
	Spent    float64
	Limit    float64
	Progress Progress
	HasLimit bool
}

// BudgetLines returns one line per canonical category for month. Categories
// outside the canonical list are not shown, matching the budget editor.
func BudgetLines(txs []model.Transaction, budgets model.Budgets, month Month) []BudgetLine {
	spend := CategorySpend(txs, month)
	cats := model.Categories()
	lines := make([]BudgetLine, 0, len(cats))
	for _, c := range cats {
		limit := budgets.Limit(c.ID)
		lines = append(lines, BudgetLine{
			Category: c,
			Spent:    spend[c.ID],
			Limit:    limit,
			Progress: BudgetProgress(spend[c.ID], limit),
			HasLimit: limit > 0,
		})
	}
	return lines
}
