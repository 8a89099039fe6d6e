package services

import (
	"context"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
	"github.com/arcadehub/ledger_engine/internal/dto"
)

// ReconciliationSvc defines reconciliation run operations.
// At most one run executes at a time per process.
type ReconciliationSvc interface {
	// RunReconciliation verifies the ledger-wide debit/credit equality and
	// every account balance against its latest snapshot, then persists the run.
	RunReconciliation(ctx context.Context, actor dto.Actor) (*domain.ReconciliationRun, error)

	// GetRunByID retrieves a specific reconciliation run.
	GetRunByID(ctx context.Context, runID string) (*domain.ReconciliationRun, error)

	// ListRuns retrieves past runs, newest first.
	ListRuns(ctx context.Context, limit int, nextToken *string) (*dto.ListReconciliationRunsResponse, error)
}

// ReconciliationSvcFacade is the full reconciliation service surface
type ReconciliationSvcFacade interface {
	ReconciliationSvc
}
