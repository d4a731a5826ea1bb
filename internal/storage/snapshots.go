package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// Snapshot errors.
var (
	ErrSnapshotNotFound  = errors.New("snapshot not found")
	ErrSnapshotExists    = errors.New("snapshot already exists")
	ErrSnapshotCorrupted = errors.New("snapshot payload is unreadable")
)

// SnapshotInfo describes a stored snapshot without its payload.
type SnapshotInfo struct {
	CreatedAt    time.Time
	ID           string
	Description  string
	Transactions int
	Budgets      int
}

// SnapshotManager stores full copies of the ledger document so destructive
// operations (replace import, reset) can be undone.
type SnapshotManager struct {
	db  *sql.DB
	now func() time.Time
}

// Snapshots returns the snapshot manager backed by this database.
func (s *SQLiteStorage) Snapshots() *SnapshotManager {
	return &SnapshotManager{db: s.db, now: time.Now}
}

// Create stores data under tag. An empty tag is generated from the clock.
func (sm *SnapshotManager) Create(ctx context.Context, tag, description string, data model.AppData) (*SnapshotInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	createdAt := sm.now().UTC()
	if tag == "" {
		tag = fmt.Sprintf("snapshot-%s", createdAt.Format("2006-01-02-150405"))
	}
	if err := validateTag(tag); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	info := &SnapshotInfo{
		ID:           tag,
		CreatedAt:    createdAt,
		Description:  description,
		Transactions: len(data.Transactions),
		Budgets:      data.Budgets.Len(),
	}

	res, err := sm.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, description, transaction_count, budget_count, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, info.ID, info.Description, info.Transactions, info.Budgets, string(payload), info.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot: %w", classifyError(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotExists, info.ID)
	}

	return info, nil
}

// List returns all snapshots, newest first.
func (sm *SnapshotManager) List(ctx context.Context) ([]SnapshotInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := sm.db.QueryContext(ctx, `
		SELECT id, description, transaction_count, budget_count, created_at
		FROM snapshots
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snapshots []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		if err := rows.Scan(&info.ID, &info.Description, &info.Transactions, &info.Budgets, &info.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, info)
	}
	return snapshots, rows.Err()
}

// Load returns the ledger document stored in snapshot id.
func (sm *SnapshotManager) Load(ctx context.Context, id string) (model.AppData, error) {
	if err := validateContext(ctx); err != nil {
		return model.AppData{}, err
	}

	var payload string
	err := sm.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.AppData{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	if err != nil {
		return model.AppData{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var data model.AppData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return model.AppData{}, fmt.Errorf("%w: %w", ErrSnapshotCorrupted, err)
	}
	return data, nil
}

// Delete removes snapshot id.
func (sm *SnapshotManager) Delete(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	res, err := sm.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", classifyError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return nil
}
