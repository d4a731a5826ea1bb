package tui

import (
	"time"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme  themes.Theme
	Money  *cli.MoneyFormatter
	Now    func() time.Time
	Width  int
	Height int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	money, _ := cli.NewMoneyFormatter("en", "VND")
	return Config{
		Theme:  themes.Default,
		Money:  money,
		Now:    time.Now,
		Width:  80,
		Height: 24,
	}
}

// WithMoneyFormatter sets how amounts are rendered.
func WithMoneyFormatter(f *cli.MoneyFormatter) Option {
	return func(c *Config) {
		if f != nil {
			c.Money = f
		}
	}
}

// WithClock overrides the clock used for the current month and default dates.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}
