package repositories

import (
	"context"
	"time"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
)

// SnapshotReader defines read operations for balance snapshot data
type SnapshotReader interface {
	// FindSnapshotByDate retrieves the snapshot for an exact (account, day).
	FindSnapshotByDate(ctx context.Context, accountID string, date time.Time) (*domain.BalanceSnapshot, error)

	// FindLatestSnapshot retrieves the account's most recent snapshot.
	FindLatestSnapshot(ctx context.Context, accountID string) (*domain.BalanceSnapshot, error)

	// ListSnapshotsByAccount retrieves all snapshots for an account, newest first.
	ListSnapshotsByAccount(ctx context.Context, accountID string) ([]domain.BalanceSnapshot, error)
}

// SnapshotWriter defines write operations for balance snapshot data
type SnapshotWriter interface {
	// UpsertSnapshot inserts the snapshot or replaces the balance of an
	// existing snapshot for the same (account, day).
	UpsertSnapshot(ctx context.Context, snapshot domain.BalanceSnapshot) error
}

// SnapshotRepositoryFacade combines all snapshot-related repository interfaces
type SnapshotRepositoryFacade interface {
	SnapshotReader
	SnapshotWriter
}
