package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/pocket-ledger/internal/aggregate"
	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

type addOptions struct {
	typ      string
	category string
	date     string
	note     string
	amount   float64
}

func addCmd() *cobra.Command {
	var opts addOptions

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income or expense",
		Example: `  # A lunch expense today
  pocket add --amount 50000 --category Food --note "pho"

  # Salary on a given day
  pocket add --type income --amount 10000000 --date 2026-10-01`,
		Args: cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			return runAdd(ctx, a, opts)
		}),
	}

	cmd.Flags().StringVarP(&opts.typ, "type", "t", string(model.TypeExpense), "income or expense")
	cmd.Flags().Float64VarP(&opts.amount, "amount", "a", 0, "amount, greater than zero")
	cmd.Flags().StringVarP(&opts.category, "category", "c", model.CategoryOther, "category id (see 'pocket categories')")
	cmd.Flags().StringVarP(&opts.date, "date", "d", "", "date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVarP(&opts.note, "note", "n", "", "free text note")

	return cmd
}

func runAdd(ctx context.Context, a *app, opts addOptions) error {
	typ, err := model.ParseTransactionType(opts.typ)
	if err != nil {
		return common.NewUserError("Cannot add transaction", err)
	}
	if !model.IsKnownCategory(opts.category) {
		return common.NewUserError(fmt.Sprintf("Unknown category %q; run 'pocket categories' for the list", opts.category), nil)
	}

	date := opts.date
	if date == "" {
		date = a.now().Format(model.DateLayout)
	}

	in := model.NewTransaction{
		Type:     typ,
		Category: opts.category,
		Note:     strings.TrimSpace(opts.note),
		Date:     date,
		Amount:   opts.amount,
	}
	if err := in.Validate(); err != nil {
		return common.NewUserError("Cannot add transaction", err)
	}

	tx := a.store.AddTransaction(ctx, in)
	return a.saved(fmt.Sprintf("Added %s %s (%s)", tx.Type, a.money.Format(tx.Amount), tx.ID))
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction by id",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			return runDelete(ctx, a, args[0])
		}),
	}
}

func runDelete(ctx context.Context, a *app, id string) error {
	if !a.store.DeleteTransaction(ctx, id) {
		a.println(cli.FormatInfo(fmt.Sprintf("No transaction with id %s; nothing changed.", id)))
		return nil
	}
	return a.saved("Deleted " + id)
}

type listOptions struct {
	month string
	typ   string
}

func listCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions of a month, newest first",
		Args:  cobra.NoArgs,
		RunE: withApp(func(_ context.Context, a *app, _ []string) error {
			return runList(a, opts)
		}),
	}

	cmd.Flags().StringVarP(&opts.month, "month", "m", "", "month as YYYY-MM (default: current month)")
	cmd.Flags().StringVarP(&opts.typ, "type", "t", "all", "all, income or expense")

	return cmd
}

func runList(a *app, opts listOptions) error {
	month, err := a.month(opts.month)
	if err != nil {
		return err
	}
	typ, err := aggregate.ParseTypeFilter(opts.typ)
	if err != nil {
		return common.NewUserError("Invalid --type", err)
	}

	records := aggregate.FilterTransactions(a.store.Transactions(), aggregate.Filter{Type: typ, Month: month})
	a.println(cli.FormatTitle(fmt.Sprintf("Transactions %s", month)))
	if len(records) == 0 {
		a.println(cli.SubtleStyle.Render("No transactions."))
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
	fmt.Fprintln(w, strings.Join([]string{
		headerStyle.Render("DATE"),
		headerStyle.Render("CATEGORY"),
		headerStyle.Render("AMOUNT"),
		headerStyle.Render("NOTE"),
		headerStyle.Render("ID"),
	}, "\t"))

	for _, tx := range records {
		amount := a.money.FormatSigned(tx.Amount, tx.Type == model.TypeIncome)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			model.FormatDate(tx.Date),
			model.CategoryLabel(tx.Category),
			cli.StyleAmount(amount, tx.Type == model.TypeIncome),
			tx.Note,
			cli.SubtleStyle.Render(tx.ID),
		)
	}
	return w.Flush()
}

// month resolves a --month flag; blank means the current month.
func (a *app) month(flag string) (aggregate.Month, error) {
	if strings.TrimSpace(flag) == "" {
		return aggregate.CurrentMonth(a.now()), nil
	}
	m, err := aggregate.ParseMonth(flag)
	if err != nil {
		return aggregate.Month{}, common.NewUserError("Invalid --month", err)
	}
	return m, nil
}
