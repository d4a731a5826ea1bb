// Package ofx converts OFX/QFX bank and credit card statements into ledger
// transactions.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/aclindsa/ofxgo"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Progress receives conversion progress. *progressbar.ProgressBar satisfies it.
type Progress interface {
	Add(n int) error
	Finish() error
}

// ProgressFactory creates a Progress for a statement with total entries.
type ProgressFactory func(total int) Progress

// Option configures a Parser.
type Option func(*Parser)

// WithDefaultCategory sets the category for entries whose type carries no hint.
func WithDefaultCategory(category string) Option {
	return func(p *Parser) {
		p.defaultCategory = category
	}
}

// WithProgress reports conversion progress through factory.
func WithProgress(factory ProgressFactory) Option {
	return func(p *Parser) {
		p.progress = factory
	}
}

// Parser implements OFX/QFX file parsing.
type Parser struct {
	progress        ProgressFactory
	defaultCategory string
}

// NewParser creates a new OFX parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{defaultCategory: model.CategoryOther}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Statement is the ledger view of a parsed OFX file.
type Statement struct {
	Accounts     []string
	Transactions []model.Transaction
	Skipped      int
}

// AppData wraps the converted transactions for a merge import.
func (s *Statement) AppData() model.AppData {
	return model.AppData{Transactions: s.Transactions}.Clone()
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	// Trim any leading whitespace or blank lines before the header
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML files sometimes drop the closing bracket of a bare opening tag
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file. Transactions are returned newest first.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) (*Statement, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var lists []accountEntries
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			lists = append(lists, accountEntries{
				account: string(stmt.BankAcctFrom.AcctID),
				entries: stmt.BankTranList.Transactions,
			})
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			lists = append(lists, accountEntries{
				account: string(stmt.CCAcctFrom.AcctID),
				entries: stmt.BankTranList.Transactions,
			})
		}
	}

	total := 0
	for _, l := range lists {
		total += len(l.entries)
	}

	var bar Progress
	if p.progress != nil && total > 0 {
		bar = p.progress(total)
	}

	result := &Statement{}
	seenAccounts := make(map[string]bool)
	for _, l := range lists {
		if !seenAccounts[l.account] {
			seenAccounts[l.account] = true
			result.Accounts = append(result.Accounts, l.account)
		}
		for _, entry := range l.entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			tx, ok := p.convertTransaction(entry, l.account)
			if ok {
				result.Transactions = append(result.Transactions, tx)
			} else {
				result.Skipped++
			}
			if bar != nil {
				_ = bar.Add(1)
			}
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	sort.SliceStable(result.Transactions, func(i, j int) bool {
		return result.Transactions[i].Date > result.Transactions[j].Date
	})

	slog.Info("Parsed OFX file",
		"transactions", len(result.Transactions),
		"skipped", result.Skipped,
		"accounts", len(result.Accounts))

	return result, nil
}

type accountEntries struct {
	account string
	entries []ofxgo.Transaction
}

// TransactionID is the stable ledger id for an OFX entry, so re-importing
// the same statement merges without duplicates.
func TransactionID(accountID, fitID string) string {
	return fmt.Sprintf("ofx-%s-%s", accountID, fitID)
}

// convertTransaction converts an OFX entry. Zero amounts are rejected
// because ledger amounts must be positive.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID string) (model.Transaction, bool) {
	// OFX uses negative amounts for debits
	amount, _ := ofxTx.TrnAmt.Float64()
	if amount == 0 {
		return model.Transaction{}, false
	}

	typ := model.TypeExpense
	if amount > 0 {
		typ = model.TypeIncome
	} else {
		amount = -amount
	}

	return model.Transaction{
		ID:       TransactionID(accountID, string(ofxTx.FiTID)),
		Type:     typ,
		Category: p.categorize(ofxTx),
		Note:     p.extractMerchantName(ofxTx),
		Date:     ofxTx.DtPosted.Time.Format(model.DateLayout),
		Amount:   amount,
	}, true
}

// categorize infers a category from the OFX transaction type. Most types
// say nothing about what was bought.
func (p *Parser) categorize(tx ofxgo.Transaction) string {
	switch tx.TrnType {
	case ofxgo.TrnTypeATM:
		return model.CategoryDailyLiving
	case ofxgo.TrnTypeFee, ofxgo.TrnTypeSrvChg:
		return model.CategoryOther
	default:
		return p.defaultCategory
	}
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)

	// MEMO sometimes has better merchant info than a generic NAME
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Drop a leading "MM/DD " date
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}
