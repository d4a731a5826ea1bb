// Package aggregate derives totals, category spend and budget status from
// ledger state. Every function is pure; the reference month is always an
// argument so results never depend on the clock.
package aggregate

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidMonth is returned when a month string is not YYYY-MM.
var ErrInvalidMonth = errors.New("month must be formatted YYYY-MM")

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// CurrentMonth returns the month containing now, in now's location.
func CurrentMonth(now time.Time) Month {
	return Month{Year: now.Year(), Month: now.Month()}
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return CurrentMonth(t), nil
}

// Prefix returns the YYYY-MM form that transaction dates start with.
func (m Month) Prefix() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) String() string {
	return m.Prefix()
}

// IsZero reports whether m is the zero Month.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}
