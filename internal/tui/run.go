package tui

import (
	"context"
	"fmt"

	"github.com/Veraticus/pocket-ledger/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI and blocks until the user quits or ctx is canceled.
// Store changes are forwarded to the program as DataChangedMsg.
func Run(ctx context.Context, ledger Ledger, opts ...Option) error {
	program := tea.NewProgram(
		New(ctx, ledger, opts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	cancel := ledger.Subscribe(func(data model.AppData) {
		go program.Send(DataChangedMsg{Data: data})
	})
	defer cancel()

	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
