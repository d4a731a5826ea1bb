package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/aggregate"
	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/spf13/cobra"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage monthly category budgets",
		Long: `Budgets are monthly spending limits per category. A limit applies to every
month until it is changed; a limit of 0 means no limit.`,
		Example: `  # Cap food spending at 3 million a month
  pocket budget set Food 3000000

  # Compare this month's spending with the limits
  pocket budget list`,
	}

	cmd.AddCommand(budgetSetCmd())
	cmd.AddCommand(budgetListCmd())
	return cmd
}

func budgetSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Set the monthly limit of a category",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			return runBudgetSet(ctx, a, args[0], args[1])
		}),
	}
}

func runBudgetSet(ctx context.Context, a *app, category, rawAmount string) error {
	if !model.IsKnownCategory(category) {
		return common.NewUserError(fmt.Sprintf("Unknown category %q; run 'pocket categories' for the list", category), nil)
	}

	amount, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(rawAmount), ",", ""), 64)
	if err != nil || !model.IsFinite(amount) || amount < 0 {
		return common.NewUserError(fmt.Sprintf("Budget must be a number of zero or more, got %q", rawAmount), err)
	}

	a.store.UpdateBudget(ctx, category, amount)
	return a.saved(fmt.Sprintf("Budget for %s set to %s", model.CategoryLabel(category), a.money.Format(amount)))
}

func budgetListCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show spending against each category limit",
		Args:  cobra.NoArgs,
		RunE: withApp(func(_ context.Context, a *app, _ []string) error {
			return runBudgetList(a, month)
		}),
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month as YYYY-MM (default: current month)")
	return cmd
}

func runBudgetList(a *app, monthFlag string) error {
	month, err := a.month(monthFlag)
	if err != nil {
		return err
	}

	data := a.store.Snapshot()
	a.println(cli.FormatTitle("Budgets " + month.String()))

	for _, line := range aggregate.BudgetLines(data.Transactions, data.Budgets, month) {
		if !line.HasLimit {
			a.printf("%-18s %s  %s\n",
				line.Category.Label,
				cli.SubtleStyle.Render("no limit"),
				a.money.Format(line.Spent))
			continue
		}

		detail := fmt.Sprintf("%s / %s", a.money.Format(line.Spent), a.money.Format(line.Limit))
		if line.Progress.IsOverBudget {
			detail += cli.ErrorStyle.Render(fmt.Sprintf("  over by %s (%s)", a.money.Format(line.Progress.Overage()), line.Progress.Display()))
		} else {
			detail += cli.SubtleStyle.Render(fmt.Sprintf("  %s left (%s)", a.money.Format(line.Progress.Remaining), line.Progress.Display()))
		}
		a.printf("%-18s %s  %s\n",
			line.Category.Label,
			cli.BudgetBar(line.Progress.Percentage, line.Progress.IsOverBudget, 24),
			detail)
	}
	return nil
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the category ids used by add and budget set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, c := range model.Categories() {
				if _, err := fmt.Fprintf(out, "%s %s\n", cli.InfoStyle.Render(fmt.Sprintf("%-14s", c.ID)), c.Label); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
