package services

import (
	"context"
	"time"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
	"github.com/arcadehub/ledger_engine/internal/dto"
)

// BalanceReaderSvc defines balance calculation operations
type BalanceReaderSvc interface {
	// GetAccountBalance computes the signed balance of an account from its
	// posted entries, optionally as of a point in time.
	GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (*dto.BalanceResponse, error)

	// GetBalanceAtDate computes a historical balance, preferring the nearest
	// snapshot on or before the date plus incremental entries.
	GetBalanceAtDate(ctx context.Context, accountID string, date time.Time) (*dto.BalanceResponse, error)

	// ListSnapshots retrieves the stored snapshots of an account, newest first.
	ListSnapshots(ctx context.Context, accountID string, limit int) (*dto.ListSnapshotsResponse, error)
}

// BalanceWriterSvc defines snapshot persistence operations
type BalanceWriterSvc interface {
	// CreateSnapshot persists the balance of one account as of a date.
	CreateSnapshot(ctx context.Context, accountID string, snapshotDate time.Time, actor dto.Actor) (*domain.BalanceSnapshot, error)

	// SnapshotAll persists snapshots for every active account as of a date.
	SnapshotAll(ctx context.Context, snapshotDate time.Time, actor dto.Actor) ([]domain.BalanceSnapshot, error)
}

// BalanceSvcFacade combines all balance-related service interfaces
type BalanceSvcFacade interface {
	BalanceReaderSvc
	BalanceWriterSvc
}
