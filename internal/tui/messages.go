package tui

import "github.com/Veraticus/pocket-ledger/internal/model"

// DataChangedMsg carries fresh ledger state after any mutation.
type DataChangedMsg struct {
	Data model.AppData
}

// clearStatusMsg expires the status line set with the same id.
type clearStatusMsg struct {
	id int
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)
