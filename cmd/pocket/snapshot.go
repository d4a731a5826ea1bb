package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/ledger"
	"github.com/Veraticus/pocket-ledger/internal/storage"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func snapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage ledger snapshots",
		Long: `Snapshots are full copies of the ledger taken before destructive
operations (replace import, reset, restore). Restore one to undo them.`,
		Example: `  # Save the current ledger
  pocket snapshot create --tag before-cleanup

  # List all snapshots
  pocket snapshot list

  # Go back to one
  pocket snapshot restore before-cleanup`,
	}

	cmd.AddCommand(snapshotCreateCmd())
	cmd.AddCommand(snapshotListCmd())
	cmd.AddCommand(snapshotRestoreCmd())
	cmd.AddCommand(snapshotDeleteCmd())
	return cmd
}

func snapshotCreateCmd() *cobra.Command {
	var tag, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Save the current ledger as a snapshot",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			if a.snapshots == nil {
				return errNoSnapshots
			}
			info, err := a.snapshots.Create(ctx, tag, description, a.store.ExportData())
			if err != nil {
				return fmt.Errorf("failed to create snapshot: %w", err)
			}
			a.println(cli.FormatSuccess(fmt.Sprintf("Created snapshot %s (%d transactions, %d budgets)",
				cli.InfoStyle.Render(info.ID), info.Transactions, info.Budgets)))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "snapshot name (generated if not provided)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "description of the snapshot")
	return cmd
}

func snapshotListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			return runSnapshotList(ctx, a)
		}),
	}
}

func runSnapshotList(ctx context.Context, a *app) error {
	if a.snapshots == nil {
		return errNoSnapshots
	}

	snapshots, err := a.snapshots.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(snapshots) == 0 {
		a.println(cli.SubtleStyle.Render("No snapshots found."))
		return nil
	}

	a.println(cli.TitleStyle.Render(fmt.Sprintf("%s %d snapshot(s)", cli.ArchiveIcon, len(snapshots))))
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
	fmt.Fprintln(w, strings.Join([]string{
		headerStyle.Render("NAME"),
		headerStyle.Render("CREATED"),
		headerStyle.Render("TRANSACTIONS"),
		headerStyle.Render("BUDGETS"),
		headerStyle.Render("DESCRIPTION"),
	}, "\t"))

	for _, s := range snapshots {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			cli.InfoStyle.Render(s.ID),
			formatRelativeTime(a.now(), s.CreatedAt),
			s.Transactions,
			s.Budgets,
			cli.SubtleStyle.Render(s.Description),
		)
	}
	return w.Flush()
}

func snapshotRestoreCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <snapshot-id>",
		Short: "Replace the ledger with a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			return runSnapshotRestore(ctx, a, args[0], force)
		}),
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	return cmd
}

// runSnapshotRestore applies a snapshot as a replace import, so the restore
// itself can be undone from the snapshot taken just before it.
func runSnapshotRestore(ctx context.Context, a *app, id string, force bool) error {
	if a.snapshots == nil {
		return errNoSnapshots
	}

	data, err := a.snapshots.Load(ctx, id)
	if errors.Is(err, storage.ErrSnapshotNotFound) {
		return common.NewUserError(fmt.Sprintf("No snapshot named %s; see 'pocket snapshot list'", id), err)
	}
	if err != nil {
		return err
	}

	a.println(cli.FormatWarning(fmt.Sprintf("This will replace the current ledger with snapshot %s (%d transactions, %d budgets).",
		id, len(data.Transactions), data.Budgets.Len())))
	yes, err := a.confirmer(force).Confirm(ctx, "Continue?")
	if err != nil {
		return err
	}
	if !yes {
		a.println(cli.SubtleStyle.Render("Restore canceled."))
		return nil
	}

	a.autoSnapshot(ctx, "before restore of "+id)
	a.store.ImportData(ctx, data, ledger.ModeReplace)
	return a.saved("Restored from snapshot " + id)
}

func snapshotDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <snapshot-id>",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			if a.snapshots == nil {
				return errNoSnapshots
			}
			id := args[0]

			yes, err := a.confirmer(force).Confirm(ctx, fmt.Sprintf("Permanently delete snapshot %s?", id))
			if err != nil {
				return err
			}
			if !yes {
				a.println(cli.SubtleStyle.Render("Deletion canceled."))
				return nil
			}

			if err := a.snapshots.Delete(ctx, id); err != nil {
				if errors.Is(err, storage.ErrSnapshotNotFound) {
					return common.NewUserError("No snapshot named "+id, err)
				}
				return fmt.Errorf("failed to delete snapshot: %w", err)
			}
			a.println(cli.FormatSuccess("Deleted snapshot " + id))
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	return cmd
}

func formatRelativeTime(now, t time.Time) string {
	duration := now.Sub(t)

	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		minutes := int(duration.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	case duration < 24*time.Hour:
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case duration < 7*24*time.Hour:
		days := int(duration.Hours() / 24)
		if days == 1 {
			return "yesterday"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Local().Format("2006-01-02 15:04")
	}
}
