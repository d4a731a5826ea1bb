package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/pocket-ledger/internal/backup"
	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/ledger"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole ledger to a dated JSON backup file",
		Args:  cobra.NoArgs,
		RunE: withApp(func(_ context.Context, a *app, _ []string) error {
			return runExport(a, dir)
		}),
	}

	cmd.Flags().StringVarP(&dir, "output", "o", "", "directory to write into (default: backup.dir)")
	return cmd
}

func runExport(a *app, dir string) error {
	if dir == "" {
		dir = a.cfg.BackupDir
	}

	data := a.store.ExportData()
	path, err := backup.WriteFile(dir, a.now(), data)
	if err != nil {
		return common.NewUserError("Export failed", err)
	}

	a.println(cli.FormatSuccess(fmt.Sprintf("Exported %d transactions and %d budgets to %s",
		len(data.Transactions), data.Budgets.Len(), path)))
	return nil
}

type importOptions struct {
	mode  string
	force bool
}

func importCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load a JSON backup, merging with or replacing the ledger",
		Long: `Import reads a backup written by 'pocket export'.

merge keeps existing transactions, adds those whose id is new and takes
budgets from the file. replace discards the current ledger entirely.
Without --mode you are asked which one to apply.`,
		Example: `  pocket import pocket_backup_2026-10-18.json
  pocket import backup.json --mode merge
  pocket import backup.json --mode replace --force`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			return runImport(ctx, a, args[0], opts)
		}),
	}

	cmd.Flags().StringVar(&opts.mode, "mode", "", "merge or replace (default: ask)")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "skip the replace confirmation")
	return cmd
}

// runImport stages the file, settles the mode and applies it. Unreadable or
// malformed files are reported without touching the ledger.
func runImport(ctx context.Context, a *app, path string, opts importOptions) error {
	data, err := backup.ReadFile(path)
	if err != nil {
		if errors.Is(err, backup.ErrParse) || errors.Is(err, backup.ErrSchema) {
			a.println(cli.FormatError("Import failed: " + err.Error()))
			return nil
		}
		return common.NewUserError("Cannot read import file", err)
	}

	pending := backup.Stage(data)
	a.println(cli.FormatInfo(pending.Message()))

	prompt := a.confirmer(opts.force)
	mode, ok, err := chooseImportMode(ctx, prompt, opts.mode)
	if err != nil {
		return err
	}
	if !ok {
		pending.Discard()
		a.println(cli.SubtleStyle.Render("Import canceled."))
		return nil
	}

	if mode == ledger.ModeReplace {
		current := len(a.store.Transactions())
		yes, err := prompt.Confirm(ctx, fmt.Sprintf("Replace all %d current transactions and budgets with the file?", current))
		if err != nil {
			return err
		}
		if !yes {
			pending.Discard()
			a.println(cli.SubtleStyle.Render("Import canceled."))
			return nil
		}
		a.autoSnapshot(ctx, "before replace import of "+path)
	}

	incoming := len(pending.Data().Transactions)
	before := len(a.store.Transactions())
	if err := pending.Commit(ctx, a.store, mode); err != nil {
		return err
	}
	after := len(a.store.Transactions())

	if mode == ledger.ModeMerge {
		msg := fmt.Sprintf("Merged %d new transactions (%d total)", after-before, after)
		if skipped := incoming - (after - before); skipped > 0 {
			msg += fmt.Sprintf("; skipped %d already present or without a unique id", skipped)
		}
		return a.saved(msg)
	}
	return a.saved(fmt.Sprintf("Replaced ledger with %d transactions", after))
}

// chooseImportMode returns the mode from the flag, or asks. ok is false when
// the user backs out.
func chooseImportMode(ctx context.Context, prompt *cli.Confirmer, flag string) (ledger.ImportMode, bool, error) {
	if flag != "" {
		mode, err := ledger.ParseImportMode(flag)
		if err != nil {
			return "", false, common.NewUserError("Invalid --mode", err)
		}
		return mode, true, nil
	}

	key, err := prompt.Choose(ctx, "How should the file be applied?", []cli.Choice{
		{Key: "m", Label: "merge"},
		{Key: "r", Label: "replace"},
		{Key: "c", Label: "cancel"},
	})
	if errors.Is(err, cli.ErrNoChoice) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	switch key {
	case "m":
		return ledger.ModeMerge, true, nil
	case "r":
		return ledger.ModeReplace, true, nil
	default:
		return "", false, nil
	}
}
