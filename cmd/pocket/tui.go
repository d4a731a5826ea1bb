package main

import (
	"context"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/tui"
	"github.com/spf13/cobra"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			if err := tui.Run(ctx, a.store, tui.WithMoneyFormatter(a.money)); err != nil {
				return err
			}
			if err := a.store.Err(); err != nil {
				return common.NewUserError("The last change could not be saved", err)
			}
			return nil
		}),
	}
}
