package tui

import (
	"strconv"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Add form fields, in focus order.
const (
	fieldType = iota
	fieldCategory
	fieldAmount
	fieldDate
	fieldNote
	fieldCount
)

// addForm collects a new transaction. Type and category are selectors
// cycled with left/right; the rest are text inputs.
type addForm struct {
	amount   textinput.Model
	date     textinput.Model
	note     textinput.Model
	typ      model.TransactionType
	category int
	focus    int
}

func newAddForm(today string) addForm {
	amount := textinput.New()
	amount.Placeholder = "50000"
	amount.CharLimit = 18

	date := textinput.New()
	date.Placeholder = model.DateLayout
	date.CharLimit = 10
	date.SetValue(today)

	note := textinput.New()
	note.Placeholder = "note"
	note.CharLimit = 120

	return addForm{
		amount: amount,
		date:   date,
		note:   note,
		typ:    model.TypeExpense,
	}
}

func (f *addForm) inputs() []*textinput.Model {
	return []*textinput.Model{&f.amount, &f.date, &f.note}
}

func (f *addForm) setFocus(field int) tea.Cmd {
	f.focus = (field + fieldCount) % fieldCount
	var cmd tea.Cmd
	for i, in := range f.inputs() {
		if fieldAmount+i == f.focus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

// cycle moves a selector field by delta.
func (f *addForm) cycle(delta int) {
	switch f.focus {
	case fieldType:
		if f.typ == model.TypeExpense {
			f.typ = model.TypeIncome
		} else {
			f.typ = model.TypeExpense
		}
	case fieldCategory:
		n := len(model.Categories())
		f.category = ((f.category+delta)%n + n) % n
	}
}

func (f *addForm) update(msg tea.Msg) tea.Cmd {
	for i, in := range f.inputs() {
		if fieldAmount+i == f.focus {
			updated, cmd := in.Update(msg)
			*in = updated
			return cmd
		}
	}
	return nil
}

// transaction converts the form into a NewTransaction. A blank or
// unparsable amount becomes zero and fails validation.
func (f *addForm) transaction() model.NewTransaction {
	raw := strings.ReplaceAll(strings.TrimSpace(f.amount.Value()), ",", "")
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		amount = 0
	}
	return model.NewTransaction{
		Type:     f.typ,
		Category: model.Categories()[f.category].ID,
		Note:     strings.TrimSpace(f.note.Value()),
		Date:     strings.TrimSpace(f.date.Value()),
		Amount:   amount,
	}
}

// newBudgetInput creates the limit editor prefilled with the current limit.
func newBudgetInput(current float64) textinput.Model {
	in := textinput.New()
	in.Placeholder = "0"
	in.CharLimit = 18
	if current > 0 {
		in.SetValue(strconv.FormatFloat(current, 'f', -1, 64))
	}
	in.Focus()
	return in
}

// parseBudget reads a limit; blank means zero (no limit).
func parseBudget(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !model.IsFinite(v) || v < 0 {
		return 0, false
	}
	return v, true
}
