package testutil

import "github.com/Veraticus/pocket-ledger/internal/model"

// Fixture is a predefined ledger scenario.
type Fixture struct {
	apply       func(*LedgerBuilder)
	Name        string
	Description string
}

// Predefined fixtures for common test scenarios.
var (
	// FixtureDashboard is one month with a single overspent category.
	FixtureDashboard = Fixture{
		Name:        "Dashboard",
		Description: "October 2026: 10M income, 2M food against a 1M food budget",
		apply: func(b *LedgerBuilder) {
			b.WithIncome(model.CategoryOther, 10_000_000, "2026-10-01").WithNote("salary")
			b.WithExpense(model.CategoryFood, 2_000_000, "2026-10-05")
			b.WithBudget(model.CategoryFood, 1_000_000)
		},
	}

	// FixtureTwoMonths spreads records over September and October 2026.
	FixtureTwoMonths = Fixture{
		Name:        "TwoMonths",
		Description: "September and October 2026 across several categories",
		apply: func(b *LedgerBuilder) {
			b.WithIncome(model.CategoryOther, 9_000_000, "2026-09-01")
			b.WithExpense(model.CategoryHousing, 4_000_000, "2026-09-03")
			b.WithExpense(model.CategoryTransport, 300_000, "2026-09-28")
			b.WithIncome(model.CategoryOther, 9_500_000, "2026-10-01")
			b.WithExpense(model.CategoryHousing, 4_000_000, "2026-10-03")
			b.WithExpense(model.CategoryFood, 650_000, "2026-10-12")
			b.WithBudget(model.CategoryHousing, 4_000_000)
			b.WithBudget(model.CategoryFood, 2_000_000)
		},
	}
)
