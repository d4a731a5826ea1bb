package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the on-disk date format for transactions. It sorts lexicographically.
const DateLayout = "2006-01-02"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	// TypeIncome marks a transaction that adds to the balance.
	TypeIncome TransactionType = "income"
	// TypeExpense marks a transaction that counts against the balance and budgets.
	TypeExpense TransactionType = "expense"
)

// Validation errors for new transactions.
var (
	ErrInvalidAmount = errors.New("amount must be a finite number greater than zero")
	ErrInvalidType   = errors.New("type must be income or expense")
	ErrInvalidDate   = errors.New("date must be formatted YYYY-MM-DD")
)

// Transaction is a single dated income or expense record.
type Transaction struct {
	ID       string          `json:"id"`
	Type     TransactionType `json:"type"`
	Category string          `json:"category"`
	Note     string          `json:"note"`
	Date     string          `json:"date"`
	Amount   float64         `json:"amount"`
}

// NewTransaction is a transaction before the ledger has assigned it an ID.
type NewTransaction struct {
	Type     TransactionType
	Category string
	Note     string
	Date     string
	Amount   float64
}

// ParseTransactionType converts user input into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeIncome:
		return TypeIncome, nil
	case TypeExpense:
		return TypeExpense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

// Validate is the caller-side guard run before a transaction is added.
// The ledger itself does not enforce it.
func (n NewTransaction) Validate() error {
	if !IsFinite(n.Amount) || n.Amount <= 0 {
		return ErrInvalidAmount
	}
	if n.Type != TypeIncome && n.Type != TypeExpense {
		return fmt.Errorf("%w: %q", ErrInvalidType, n.Type)
	}
	if _, err := time.Parse(DateLayout, n.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, n.Date)
	}
	return nil
}

// IsFinite reports whether x is neither NaN nor an infinity. Non-finite
// amounts cannot be encoded or summed.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// WithID attaches an identifier, producing a stored transaction.
func (n NewTransaction) WithID(id string) Transaction {
	return Transaction{
		ID:       id,
		Type:     n.Type,
		Category: n.Category,
		Note:     n.Note,
		Date:     n.Date,
		Amount:   n.Amount,
	}
}

// YearMonth returns the YYYY-MM prefix of the transaction date, or "" when
// the date is too short to carry one.
func (t Transaction) YearMonth() string {
	if len(t.Date) < 7 {
		return ""
	}
	return t.Date[:7]
}

// IsExpense reports whether the transaction counts against budgets.
func (t Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// FormatDate renders a stored YYYY-MM-DD date as DD/MM/YYYY for display.
// Dates that do not split into three parts are returned unchanged.
func FormatDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}
