package repositories

import (
	"context"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
)

// ReconciliationReader defines read operations for reconciliation runs
type ReconciliationReader interface {
	// FindRunByID retrieves a reconciliation run by its identifier.
	FindRunByID(ctx context.Context, runID string) (*domain.ReconciliationRun, error)

	// ListRuns retrieves runs newest first using token-based pagination.
	ListRuns(ctx context.Context, limit int, nextToken *string) ([]domain.ReconciliationRun, *string, error)
}

// ReconciliationWriter defines write operations for reconciliation runs
type ReconciliationWriter interface {
	// SaveRun persists a new run record (normally status PENDING).
	SaveRun(ctx context.Context, run domain.ReconciliationRun) error

	// UpdateRun persists the outcome of a run (status, counters,
	// discrepancies, completion time).
	UpdateRun(ctx context.Context, run domain.ReconciliationRun) error
}

// ReconciliationRepositoryFacade combines the reconciliation repository interfaces
type ReconciliationRepositoryFacade interface {
	ReconciliationReader
	ReconciliationWriter
}
