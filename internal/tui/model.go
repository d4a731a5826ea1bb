// Package tui is the interactive terminal front end of pocket: a dashboard,
// a record list and a budget editor over a live ledger.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/aggregate"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Ledger is the store the TUI reads and mutates. *ledger.Store satisfies it.
type Ledger interface {
	Snapshot() model.AppData
	AddTransaction(ctx context.Context, in model.NewTransaction) model.Transaction
	DeleteTransaction(ctx context.Context, id string) bool
	UpdateBudget(ctx context.Context, category string, amount float64)
	Subscribe(fn func(model.AppData)) (cancel func())
	Err() error
}

// Screen is one of the top level views.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenRecords
	ScreenBudget
	screenCount
)

var screenNames = [...]string{"Dashboard", "Records", "Budget"}

func (s Screen) String() string {
	if s < 0 || s >= screenCount {
		return fmt.Sprintf("Screen(%d)", int(s))
	}
	return screenNames[s]
}

// mode is what keyboard input currently drives.
type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEditBudget
	modeConfirmDelete
)

const statusTTL = 3 * time.Second

// Model holds the TUI state.
type Model struct {
	ctx          context.Context
	ledger       Ledger
	theme        themes.Theme
	config       Config
	help         help.Model
	keymap       KeyMap
	budgetInput  textinput.Model
	form         addForm
	status       string
	filter       aggregate.TypeFilter
	data         model.AppData
	month        aggregate.Month
	statusID     int
	cursor       int
	budgetCursor int
	width        int
	height       int
	screen       Screen
	mode         mode
	statusKind   statusKind
	quitting     bool
}

// New creates the TUI model over ledger.
func New(ctx context.Context, ledger Ledger, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return Model{
		ctx:    ctx,
		ledger: ledger,
		config: cfg,
		theme:  cfg.Theme,
		keymap: DefaultKeyMap(),
		help:   help.New(),
		data:   ledger.Snapshot(),
		month:  aggregate.CurrentMonth(cfg.Now()),
		filter: aggregate.FilterAll,
		width:  cfg.Width,
		height: cfg.Height,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Screen returns the active screen.
func (m Model) Screen() Screen {
	return m.screen
}

// Status returns the current status line text.
func (m Model) Status() string {
	return m.status
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case DataChangedMsg:
		m.data = msg.Data
		m.clampCursors()
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAddForm(msg)
		case modeEditBudget:
			return m.updateBudgetEdit(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.NextTab):
		m.screen = (m.screen + 1) % screenCount
	case key.Matches(msg, m.keymap.PrevTab):
		m.screen = (m.screen + screenCount - 1) % screenCount
	case key.Matches(msg, m.keymap.PrevMonth):
		m.month = shiftMonth(m.month, -1)
		m.clampCursors()
	case key.Matches(msg, m.keymap.NextMonth):
		m.month = shiftMonth(m.month, 1)
		m.clampCursors()
	case key.Matches(msg, m.keymap.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keymap.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keymap.Filter) && m.screen == ScreenRecords:
		m.filter = nextFilter(m.filter)
		m.cursor = 0
	case key.Matches(msg, m.keymap.Add):
		m.mode = modeAdd
		m.form = newAddForm(m.config.Now().Format(model.DateLayout))
		return m, m.form.setFocus(fieldAmount)
	case key.Matches(msg, m.keymap.Delete) && m.screen == ScreenRecords:
		if len(m.visibleRecords()) > 0 {
			m.mode = modeConfirmDelete
		}
	case key.Matches(msg, m.keymap.Edit) && m.screen == ScreenBudget:
		category := model.Categories()[m.budgetCursor].ID
		m.budgetInput = newBudgetInput(m.data.Budgets.Limit(category))
		m.mode = modeEditBudget
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateAddForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.mode = modeBrowse
		return m, nil
	case key.Matches(msg, m.keymap.Submit):
		in := m.form.transaction()
		if err := in.Validate(); err != nil {
			return m, m.setStatus(statusWarning, "Cannot save: "+err.Error())
		}
		m.ledger.AddTransaction(m.ctx, in)
		m.mode = modeBrowse
		m.refresh()
		return m, m.setStatus(m.saveStatus("Transaction saved"))
	case msg.Type == tea.KeyTab || msg.Type == tea.KeyDown:
		return m, m.form.setFocus(m.form.focus + 1)
	case msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyUp:
		return m, m.form.setFocus(m.form.focus - 1)
	case m.form.focus < fieldAmount && (msg.Type == tea.KeyLeft || msg.Type == tea.KeyRight || msg.Type == tea.KeySpace):
		delta := 1
		if msg.Type == tea.KeyLeft {
			delta = -1
		}
		m.form.cycle(delta)
		return m, nil
	}
	return m, m.form.update(msg)
}

func (m Model) updateBudgetEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.mode = modeBrowse
		return m, nil
	case key.Matches(msg, m.keymap.Submit):
		limit, ok := parseBudget(m.budgetInput.Value())
		if !ok {
			return m, m.setStatus(statusWarning, "Budget must be a number of zero or more")
		}
		category := model.Categories()[m.budgetCursor]
		m.ledger.UpdateBudget(m.ctx, category.ID, limit)
		m.mode = modeBrowse
		m.refresh()
		return m, m.setStatus(m.saveStatus("Budget for " + category.Label + " saved"))
	}

	var cmd tea.Cmd
	m.budgetInput, cmd = m.budgetInput.Update(msg)
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	switch msg.String() {
	case "y", "Y":
		records := m.visibleRecords()
		if m.cursor >= len(records) {
			return m, nil
		}
		if m.ledger.DeleteTransaction(m.ctx, records[m.cursor].ID) {
			m.refresh()
			return m, m.setStatus(m.saveStatus("Transaction deleted"))
		}
	}
	return m, nil
}

// refresh rereads state after a mutation made from this model. Changes made
// elsewhere arrive as DataChangedMsg.
func (m *Model) refresh() {
	m.data = m.ledger.Snapshot()
	m.clampCursors()
}

// saveStatus reports a success unless the write-through save failed.
func (m Model) saveStatus(success string) (statusKind, string) {
	if err := m.ledger.Err(); err != nil {
		return statusError, "Saved in memory only: " + err.Error()
	}
	return statusSuccess, success
}

// setStatus shows a transient message that clears itself after statusTTL.
func (m *Model) setStatus(kind statusKind, text string) tea.Cmd {
	m.statusID++
	m.statusKind = kind
	m.status = text
	id := m.statusID
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m Model) visibleRecords() []model.Transaction {
	return aggregate.FilterTransactions(m.data.Transactions, aggregate.Filter{Type: m.filter, Month: m.month})
}

func (m *Model) moveCursor(delta int) {
	switch m.screen {
	case ScreenRecords:
		m.cursor += delta
	case ScreenBudget:
		m.budgetCursor += delta
	}
	m.clampCursors()
}

func (m *Model) clampCursors() {
	m.cursor = clamp(m.cursor, 0, len(m.visibleRecords())-1)
	m.budgetCursor = clamp(m.budgetCursor, 0, len(model.Categories())-1)
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func shiftMonth(m aggregate.Month, delta int) aggregate.Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return aggregate.CurrentMonth(t)
}

func nextFilter(f aggregate.TypeFilter) aggregate.TypeFilter {
	switch f {
	case aggregate.FilterAll:
		return aggregate.FilterExpense
	case aggregate.FilterExpense:
		return aggregate.FilterIncome
	default:
		return aggregate.FilterAll
	}
}
