package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/ledger"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/ofx"
	"github.com/spf13/cobra"
)

func importOFXCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-ofx <files...>",
		Short: "Merge transactions from OFX/QFX bank statements",
		Long: `Import transactions from OFX or QFX files exported from your bank.

Entries are always merged. Each one gets an id derived from its account and
bank transaction id, so importing the same statement twice adds nothing.`,
		Example: `  # Import single file
  pocket import-ofx ~/Downloads/checking_oct.qfx

  # Import every statement in a directory
  pocket import-ofx ~/Downloads/*.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			return runImportOFX(ctx, a, args, dryRun)
		}),
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview import without saving")
	return cmd
}

func runImportOFX(ctx context.Context, a *app, patterns []string, dryRun bool) error {
	files, err := expandFiles(patterns)
	if err != nil {
		return err
	}

	parser := ofx.NewParser(
		ofx.WithDefaultCategory(a.cfg.ImportDefaultCategory),
		ofx.WithProgress(func(total int) ofx.Progress {
			return cli.NewImportProgress(a.errOut, total)
		}),
	)

	var (
		combined model.AppData
		seen     = make(map[string]bool)
		skipped  int
	)
	for _, path := range files {
		stmt, err := parseStatement(ctx, parser, path)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Error("Failed to parse OFX file", "file", path, "error", err)
			a.println(cli.FormatError(fmt.Sprintf("Skipped %s: %v", filepath.Base(path), err)))
			continue
		}

		added := 0
		for _, tx := range stmt.Transactions {
			if seen[tx.ID] {
				continue
			}
			seen[tx.ID] = true
			combined.Transactions = append(combined.Transactions, tx)
			added++
		}
		skipped += stmt.Skipped

		slog.Info("Processed file",
			"file", filepath.Base(path),
			"accounts", len(stmt.Accounts),
			"transactions", len(stmt.Transactions),
			"added", added,
			"skipped", stmt.Skipped)
	}

	if len(combined.Transactions) == 0 {
		return common.NewUserError("No transactions found in any file", common.ErrNothingToImport)
	}

	if dryRun {
		a.println(cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions parsed, %d zero-amount entries skipped; nothing saved",
			len(combined.Transactions), skipped)))
		return nil
	}

	before := len(a.store.Transactions())
	a.store.ImportData(ctx, combined, ledger.ModeMerge)
	after := len(a.store.Transactions())

	return a.saved(fmt.Sprintf("Imported %d new transactions from %d file(s); %d already present",
		after-before, len(files), len(combined.Transactions)-(after-before)))
}

func parseStatement(ctx context.Context, parser *ofx.Parser, path string) (*ofx.Statement, error) {
	f, err := os.Open(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return parser.ParseFile(ctx, f)
}

// expandFiles resolves glob patterns; a pattern without matches is kept when
// it names an existing file.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, common.NewUserError("Invalid file pattern "+pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			slog.Warn("No files found matching pattern", "pattern", pattern)
		}
	}

	if len(files) == 0 {
		return nil, common.NewUserError("No files found to import", common.ErrNothingToImport)
	}
	return files, nil
}
