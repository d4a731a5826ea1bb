package cli

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var currencySymbols = map[string]string{
	"VND": "₫",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// MoneyFormatter renders amounts with locale digit grouping and the
// currency's standard number of decimals.
type MoneyFormatter struct {
	printer *message.Printer
	symbol  string
	scale   int
}

// NewMoneyFormatter creates a formatter for a BCP 47 locale and an ISO 4217
// currency code.
func NewMoneyFormatter(locale, code string) (*MoneyFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", code, err)
	}

	scale, _ := currency.Standard.Rounding(unit)
	symbol, ok := currencySymbols[unit.String()]
	if !ok {
		symbol = unit.String()
	}

	return &MoneyFormatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
		scale:   scale,
	}, nil
}

// Format renders amount, e.g. "10,000,000 ₫" for English and VND.
func (f *MoneyFormatter) Format(amount float64) string {
	return f.printer.Sprintf("%v", number.Decimal(amount, number.Scale(f.scale))) + " " + f.symbol
}

// FormatSigned prefixes income with + and expense with -.
func (f *MoneyFormatter) FormatSigned(amount float64, income bool) string {
	if income {
		return "+" + f.Format(amount)
	}
	return "-" + f.Format(amount)
}
