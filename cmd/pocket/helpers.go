package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/config"
	"github.com/Veraticus/pocket-ledger/internal/ledger"
	"github.com/Veraticus/pocket-ledger/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errNoSnapshots is returned by snapshot commands on an in-memory ledger.
var errNoSnapshots = errors.New("snapshots need a database; drop --ephemeral")

// app bundles what a command needs: the open ledger, where it is stored and
// the terminal it talks to.
type app struct {
	in        io.Reader
	out       io.Writer
	errOut    io.Writer
	cfg       *config.Config
	store     *ledger.Store
	db        *storage.SQLiteStorage
	snapshots *storage.SnapshotManager
	money     *cli.MoneyFormatter
	now       func() time.Time
}

// openApp loads configuration and opens the ledger for cmd.
func openApp(cmd *cobra.Command) (*app, error) {
	ctx := cmd.Context()

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	money, err := cli.NewMoneyFormatter(cfg.Locale, cfg.Currency)
	if err != nil {
		return nil, common.NewUserError("Invalid display settings", err)
	}

	a := &app{
		in:     cmd.InOrStdin(),
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		cfg:    cfg,
		money:  money,
		now:    time.Now,
	}

	var kv storage.KeyValueStore
	if cfg.Ephemeral {
		slog.Debug("Using in-memory ledger")
		kv = storage.NewMemoryStore()
	} else {
		if err := cfg.PrepareStorage(); err != nil {
			return nil, err
		}
		db, err := storage.NewSQLiteStorage(cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		a.db = db
		a.snapshots = db.Snapshots()
		kv = db
	}

	a.store = ledger.New(ctx, storage.NewAdapter(kv, cfg.StorageKey))
	return a, nil
}

// Close releases the database.
func (a *app) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		slog.Warn("Failed to close database", "error", err)
	}
}

// confirmer returns a prompt reader for this app's terminal.
func (a *app) confirmer(force bool) *cli.Confirmer {
	return cli.NewConfirmer(a.in, a.out, force)
}

// printf writes command output, logging rather than failing on write errors.
func (a *app) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(a.out, format, args...); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}

func (a *app) println(args ...any) {
	if _, err := fmt.Fprintln(a.out, args...); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}

// saved reports a change; if the write-through save failed the change only
// lives in memory and the user is told so.
func (a *app) saved(message string) error {
	if err := a.store.Err(); err != nil {
		return common.NewUserError("Change applied in memory but could not be saved", err)
	}
	a.println(cli.FormatSuccess(message))
	return nil
}

// autoSnapshot stores the current ledger before a destructive change when
// snapshots are enabled and available.
func (a *app) autoSnapshot(ctx context.Context, reason string) {
	if a.snapshots == nil || !a.cfg.AutoSnapshot {
		return
	}

	info, err := a.snapshots.Create(ctx, "", reason, a.store.ExportData())
	if err != nil {
		// A same-second rerun collides on the generated tag; the earlier
		// snapshot already holds this state.
		slog.Warn("Failed to create safety snapshot", "reason", reason, "error", err)
		return
	}

	a.println(cli.FormatInfo(fmt.Sprintf("Saved snapshot %s (restore with: pocket snapshot restore %s)", info.ID, info.ID)))
}

// withApp wraps a command body with ledger setup and teardown.
func withApp(run func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd.Context(), a, args)
	}
}
