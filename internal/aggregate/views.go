package aggregate

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// TypeFilter restricts a record listing by transaction type.
type TypeFilter string

// Type filters.
const (
	FilterAll     TypeFilter = "all"
	FilterIncome  TypeFilter = "income"
	FilterExpense TypeFilter = "expense"
)

// ErrInvalidFilter is returned for an unknown type filter name.
var ErrInvalidFilter = errors.New("type filter must be all, income or expense")

// ParseTypeFilter reads a filter name; blank means all.
func ParseTypeFilter(s string) (TypeFilter, error) {
	switch f := TypeFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterIncome, FilterExpense:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
}

// Filter selects transactions for the record list.
type Filter struct {
	Type  TypeFilter
	Month Month
}

// FilterTransactions returns the matching transactions sorted by date,
// newest first. Equal dates keep their stored order. A zero Month matches
// every date.
func FilterTransactions(txs []model.Transaction, f Filter) []model.Transaction {
	var out []model.Transaction
	for _, t := range txs {
		if !f.Month.IsZero() && !inMonth(t, f.Month) {
			continue
		}
		switch f.Type {
		case FilterIncome:
			if t.Type != model.TypeIncome {
				continue
			}
		case FilterExpense:
			if t.Type != model.TypeExpense {
				continue
			}
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return strings.Compare(out[i].Date, out[j].Date) > 0
	})
	return out
}

// CategoryShare is one slice of the spending breakdown.
type CategoryShare struct {
	ID     string
	Label  string
	Amount float64
	Share  float64
}

// CategoryBreakdown turns category spend into labeled shares of the total,
// largest first.
func CategoryBreakdown(spend map[string]float64) []CategoryShare {
	var total float64
	for _, amount := range spend {
		total += amount
	}

	shares := make([]CategoryShare, 0, len(spend))
	for id, amount := range spend {
		var share float64
		if total > 0 {
			share = amount / total
		}
		shares = append(shares, CategoryShare{
			ID:     id,
			Label:  model.CategoryLabel(id),
			Amount: amount,
			Share:  share,
		})
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].ID < shares[j].ID
	})
	return shares
}

// Dashboard is everything the summary screen shows for one month.
type Dashboard struct {
	Month     Month
	Alerts    []string
	Breakdown []CategoryShare
	Totals    Totals
}

// Summarize computes the dashboard for month.
func Summarize(data model.AppData, month Month) Dashboard {
	spend := CategorySpend(data.Transactions, month)
	return Dashboard{
		Month:     month,
		Totals:    MonthlyTotals(data.Transactions, month),
		Breakdown: CategoryBreakdown(spend),
		Alerts:    BudgetAlerts(spend, data.Budgets),
	}
}
