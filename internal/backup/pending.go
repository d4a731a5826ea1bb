package backup

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Veraticus/pocket-ledger/internal/ledger"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

// ErrNothingPending is returned when committing an import that was already
// committed or discarded.
var ErrNothingPending = errors.New("no pending import")

// Importer applies imported data. *ledger.Store satisfies it.
type Importer interface {
	ImportData(ctx context.Context, data model.AppData, mode ledger.ImportMode)
}

// Pending holds a parsed backup until the user chooses how to apply it.
type Pending struct {
	data    model.AppData
	mu      sync.Mutex
	settled bool
}

// Stage parks data as a pending import.
func Stage(data model.AppData) *Pending {
	return &Pending{data: data.Clone()}
}

// Data returns a copy of the staged document.
func (p *Pending) Data() model.AppData {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data.Clone()
}

// Message is the status line shown while the import waits for a decision.
func (p *Pending) Message() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fmt.Sprintf("Found %d transactions in file", len(p.data.Transactions))
}

// Active reports whether the import still awaits a decision.
func (p *Pending) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.settled
}

// Commit applies the staged data with mode. It succeeds at most once.
func (p *Pending) Commit(ctx context.Context, dst Importer, mode ledger.ImportMode) error {
	p.mu.Lock()
	if p.settled {
		p.mu.Unlock()
		return ErrNothingPending
	}
	p.settled = true
	data := p.data
	p.data = model.AppData{}
	p.mu.Unlock()

	dst.ImportData(ctx, data, mode)
	return nil
}

// Discard drops the staged data without applying it.
func (p *Pending) Discard() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settled = true
	p.data = model.AppData{}
}
