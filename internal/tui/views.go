package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/aggregate"
	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 30

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.mode {
	case modeAdd:
		body = m.renderAddForm()
	case modeEditBudget:
		body = m.renderBudgetEdit()
	default:
		switch m.screen {
		case ScreenRecords:
			body = m.renderRecords()
		case ScreenBudget:
			body = m.renderBudget()
		default:
			body = m.renderDashboard()
		}
	}

	sections := []string{m.renderHeader(), body}
	if m.mode == modeConfirmDelete {
		sections = append(sections, m.theme.StatusWarning.Render("Delete this transaction? (y/N)"))
	}
	if status := m.renderStatus(); status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, m.theme.Help.Render(m.help.View(m.keymap)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, screenCount)
	for s := ScreenDashboard; s < screenCount; s++ {
		style := m.theme.TabInactive
		if s == m.screen {
			style = m.theme.TabActive
		}
		tabs = append(tabs, style.Render(s.String()))
	}

	month := m.theme.Subtitle.Render("  " + m.month.String())
	return lipgloss.JoinHorizontal(lipgloss.Center, append(tabs, month)...) + "\n"
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	style := m.theme.StatusInfo
	switch m.statusKind {
	case statusSuccess:
		style = m.theme.StatusSuccess
	case statusWarning:
		style = m.theme.StatusWarning
	case statusError:
		style = m.theme.StatusError
	}
	return style.Render(m.status)
}

func (m Model) money(amount float64) string {
	return m.config.Money.Format(amount)
}

func (m Model) renderDashboard() string {
	d := aggregate.Summarize(m.data, m.month)

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("This month"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Income   %s\n", m.theme.Income.Render(m.money(d.Totals.Income)))
	fmt.Fprintf(&b, "Expense  %s\n", m.theme.Expense.Render(m.money(d.Totals.Expense)))
	balance := m.theme.Income
	if d.Totals.Balance < 0 {
		balance = m.theme.Expense
	}
	fmt.Fprintf(&b, "Balance  %s\n", balance.Render(m.money(d.Totals.Balance)))

	if len(d.Alerts) > 0 {
		b.WriteString("\n")
		for _, category := range d.Alerts {
			b.WriteString(m.theme.StatusError.Render(cli.WarningIcon + " Over budget: " + model.CategoryLabel(category)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Bold.Render("Spending by category"))
	b.WriteString("\n")
	if len(d.Breakdown) == 0 {
		b.WriteString(m.theme.Subtitle.Render("No expenses this month"))
		b.WriteString("\n")
	}
	for _, share := range d.Breakdown {
		fmt.Fprintf(&b, "%-18s %s %5.1f%%  %s\n",
			share.Label,
			cli.BudgetBar(share.Share*100, false, barWidth/2),
			share.Share*100,
			m.money(share.Amount))
	}

	return m.theme.RoundedBox.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderRecords() string {
	records := m.visibleRecords()

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n",
		m.theme.Title.UnsetMarginBottom().Render("Records"),
		m.theme.Subtitle.Render("filter: "+string(m.filter)))

	if len(records) == 0 {
		b.WriteString(m.theme.Subtitle.Render("No transactions"))
		return b.String()
	}

	visible := max(m.height-10, 5)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(records))

	for i := start; i < end; i++ {
		tx := records[i]
		amount := m.config.Money.FormatSigned(tx.Amount, tx.Type == model.TypeIncome)
		style := m.theme.Expense
		if tx.Type == model.TypeIncome {
			style = m.theme.Income
		}
		line := fmt.Sprintf("%-10s  %-18s  %-24s  %s",
			model.FormatDate(tx.Date),
			truncate(model.CategoryLabel(tx.Category), 18),
			truncate(tx.Note, 24),
			style.Render(amount))
		if i == m.cursor {
			line = m.theme.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderBudget() string {
	lines := aggregate.BudgetLines(m.data.Transactions, m.data.Budgets, m.month)

	var b strings.Builder
	for i, line := range lines {
		title := line.Category.Label
		if i == m.budgetCursor {
			title = m.theme.Selected.Render(title)
		} else {
			title = m.theme.Bold.Render(title)
		}
		b.WriteString(title)
		b.WriteString("\n")
		fmt.Fprintf(&b, "Spent %s  Budget %s\n", m.money(line.Spent), m.money(line.Limit))
		b.WriteString(cli.BudgetBar(line.Progress.Percentage, line.Progress.IsOverBudget, barWidth))
		if line.HasLimit {
			var detail string
			if line.Progress.IsOverBudget {
				detail = m.theme.Expense.Render(fmt.Sprintf("Over by %s (%s)", m.money(line.Progress.Overage()), line.Progress.Display()))
			} else {
				detail = m.theme.Income.Render(fmt.Sprintf("Left %s (%s)", m.money(line.Progress.Remaining), line.Progress.Display()))
			}
			b.WriteString("  " + detail)
		}
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderAddForm() string {
	f := m.form
	label := func(field int, name string) string {
		if f.focus == field {
			return m.theme.Selected.Render(fmt.Sprintf("%-9s", name))
		}
		return fmt.Sprintf("%-9s", name)
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("New transaction"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s ‹ %s ›\n", label(fieldType, "Type"), f.typ)
	fmt.Fprintf(&b, "%s ‹ %s ›\n", label(fieldCategory, "Category"), model.Categories()[f.category].Label)
	fmt.Fprintf(&b, "%s %s\n", label(fieldAmount, "Amount"), f.amount.View())
	fmt.Fprintf(&b, "%s %s\n", label(fieldDate, "Date"), f.date.View())
	fmt.Fprintf(&b, "%s %s\n", label(fieldNote, "Note"), f.note.View())
	b.WriteString(m.theme.Help.Render("Tab next field · ←/→ change · Enter save · Esc cancel"))
	return m.theme.RoundedBox.Render(b.String())
}

func (m Model) renderBudgetEdit() string {
	category := model.Categories()[m.budgetCursor]
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Budget for " + category.Label))
	b.WriteString("\n")
	b.WriteString(m.budgetInput.View())
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render("Enter save · Esc cancel · 0 removes the limit"))
	return m.theme.RoundedBox.Render(b.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
