package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/aggregate"
	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show monthly totals, budget alerts and spending by category",
		Args:  cobra.NoArgs,
		RunE: withApp(func(_ context.Context, a *app, _ []string) error {
			return runDashboard(a, month)
		}),
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month as YYYY-MM (default: current month)")
	return cmd
}

func runDashboard(a *app, monthFlag string) error {
	month, err := a.month(monthFlag)
	if err != nil {
		return err
	}

	d := aggregate.Summarize(a.store.Snapshot(), month)

	var totals strings.Builder
	fmt.Fprintf(&totals, "Income   %s\n", cli.StyleAmount(a.money.Format(d.Totals.Income), true))
	fmt.Fprintf(&totals, "Expense  %s\n", cli.StyleAmount(a.money.Format(d.Totals.Expense), false))
	fmt.Fprintf(&totals, "Balance  %s", cli.StyleAmount(a.money.Format(d.Totals.Balance), d.Totals.Balance >= 0))
	a.println(cli.RenderBox(cli.ChartIcon+" "+month.String(), totals.String()))

	for _, category := range d.Alerts {
		a.println(cli.FormatWarning("Over budget: " + model.CategoryLabel(category)))
	}

	if len(d.Breakdown) == 0 {
		a.println(cli.SubtleStyle.Render("No spending this month."))
		return nil
	}

	a.println()
	a.println(cli.BoldStyle.Render("Spending by category"))
	for _, share := range d.Breakdown {
		a.printf("  %-18s %s %5.1f%%  %s\n",
			share.Label,
			cli.BudgetBar(share.Share*100, false, 20),
			share.Share*100,
			a.money.Format(share.Amount))
	}
	return nil
}
