package testutil

import (
	"fmt"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// LedgerBuilder assembles a ledger document for tests. Transactions get
// sequential ids tx-1, tx-2, ... in the order they are added and are stored
// newest-added first, the way the ledger stores them.
type LedgerBuilder struct {
	budgets model.Budgets
	txs     []model.Transaction
	next    int
}

// NewLedgerBuilder starts an empty document.
func NewLedgerBuilder() *LedgerBuilder {
	return &LedgerBuilder{}
}

// WithIncome adds an income record.
func (b *LedgerBuilder) WithIncome(category string, amount float64, date string) *LedgerBuilder {
	return b.with(model.TypeIncome, category, amount, date, "")
}

// WithExpense adds an expense record.
func (b *LedgerBuilder) WithExpense(category string, amount float64, date string) *LedgerBuilder {
	return b.with(model.TypeExpense, category, amount, date, "")
}

// WithNote sets the note of the most recently added transaction.
func (b *LedgerBuilder) WithNote(note string) *LedgerBuilder {
	if len(b.txs) > 0 {
		b.txs[0].Note = note
	}
	return b
}

// WithBudget sets a category limit. Insertion order is preserved.
func (b *LedgerBuilder) WithBudget(category string, limit float64) *LedgerBuilder {
	b.budgets.Set(category, limit)
	return b
}

// WithFixture applies a predefined scenario.
func (b *LedgerBuilder) WithFixture(f Fixture) *LedgerBuilder {
	f.apply(b)
	return b
}

// Build returns a copy of the assembled document.
func (b *LedgerBuilder) Build() model.AppData {
	return model.AppData{Transactions: b.txs, Budgets: b.budgets}.Clone()
}

func (b *LedgerBuilder) with(typ model.TransactionType, category string, amount float64, date, note string) *LedgerBuilder {
	b.next++
	tx := model.Transaction{
		ID:       fmt.Sprintf("tx-%d", b.next),
		Type:     typ,
		Category: category,
		Amount:   amount,
		Date:     date,
		Note:     note,
	}
	b.txs = append([]model.Transaction{tx}, b.txs...)
	return b
}
