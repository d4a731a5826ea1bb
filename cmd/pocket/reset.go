package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every transaction and budget",
		Long: `Reset empties the ledger: all transactions and all budgets are removed.

This is a destructive operation. When snapshots.auto is on, the current
ledger is saved as a snapshot first.`,
		Args: cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			return runReset(ctx, a, force)
		}),
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	return cmd
}

func runReset(ctx context.Context, a *app, force bool) error {
	data := a.store.Snapshot()
	if len(data.Transactions) == 0 && data.Budgets.Len() == 0 {
		a.println(cli.FormatInfo("The ledger is already empty. Nothing to reset."))
		return nil
	}

	a.println(cli.FormatWarning(fmt.Sprintf("This will delete %d transactions and %d budgets.",
		len(data.Transactions), data.Budgets.Len())))

	yes, err := a.confirmer(force).Confirm(ctx, "Are you sure you want to continue?")
	if err != nil {
		return err
	}
	if !yes {
		a.println(cli.SubtleStyle.Render("Reset canceled."))
		return nil
	}

	a.autoSnapshot(ctx, "before reset")
	a.store.ResetData(ctx)
	return a.saved("Ledger reset")
}
