package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
	portsrepo "github.com/arcadehub/ledger_engine/internal/core/ports/repositories"
	"github.com/arcadehub/ledger_engine/internal/models"
	"github.com/arcadehub/ledger_engine/internal/utils/mapping"
	"github.com/arcadehub/ledger_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates a new repository for reconciliation runs.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

const reconciliationSelect = `
	SELECT run_id, run_date, status, total_accounts, balanced_accounts, imbalanced_accounts, discrepancies, completed_at, created_at, created_by, last_updated_at, last_updated_by
	FROM reconciliation_runs`

// SaveRun persists a freshly started run record.
func (r *PgxReconciliationRepository) SaveRun(ctx context.Context, run domain.ReconciliationRun) error {
	modelRun, err := mapping.ToModelReconciliationRun(run)
	if err != nil {
		return fmt.Errorf("failed to map reconciliation run %s: %w", run.RunID, err)
	}

	query := `
		INSERT INTO reconciliation_runs (run_id, run_date, status, total_accounts, balanced_accounts, imbalanced_accounts, discrepancies, completed_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = r.Pool.Exec(ctx, query,
		modelRun.RunID,
		modelRun.RunDate,
		modelRun.Status,
		modelRun.TotalAccounts,
		modelRun.BalancedAccounts,
		modelRun.ImbalancedAccounts,
		modelRun.Discrepancies,
		modelRun.CompletedAt,
		modelRun.CreatedAt,
		modelRun.CreatedBy,
		modelRun.LastUpdatedAt,
		modelRun.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reconciliation run %s: %w", modelRun.RunID, err)
	}
	return nil
}

// UpdateRun persists a run's outcome.
func (r *PgxReconciliationRepository) UpdateRun(ctx context.Context, run domain.ReconciliationRun) error {
	modelRun, err := mapping.ToModelReconciliationRun(run)
	if err != nil {
		return fmt.Errorf("failed to map reconciliation run %s: %w", run.RunID, err)
	}

	query := `
		UPDATE reconciliation_runs
		SET status = $2, total_accounts = $3, balanced_accounts = $4, imbalanced_accounts = $5, discrepancies = $6, completed_at = $7, last_updated_at = $8, last_updated_by = $9
		WHERE run_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelRun.RunID,
		modelRun.Status,
		modelRun.TotalAccounts,
		modelRun.BalancedAccounts,
		modelRun.ImbalancedAccounts,
		modelRun.Discrepancies,
		modelRun.CompletedAt,
		modelRun.LastUpdatedAt,
		modelRun.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update reconciliation run %s: %w", modelRun.RunID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reconciliation run %s not found for update", modelRun.RunID)
	}
	return nil
}

// FindRunByID retrieves a run by id, or nil.
func (r *PgxReconciliationRepository) FindRunByID(ctx context.Context, runID string) (*domain.ReconciliationRun, error) {
	rows, err := r.Pool.Query(ctx, reconciliationSelect+` WHERE run_id = $1;`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reconciliation run %s: %w", runID, err)
	}
	defer rows.Close()

	modelRun, err := pgx.CollectOneRow(rows, scanReconciliationRun)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan reconciliation run: %w", err)
	}

	domainRun, err := mapping.ToDomainReconciliationRun(modelRun)
	if err != nil {
		return nil, fmt.Errorf("failed to map reconciliation run %s: %w", runID, err)
	}
	return &domainRun, nil
}

// ListRuns retrieves runs newest first with token-based cursor pagination
// over run_date.
func (r *PgxReconciliationRepository) ListRuns(ctx context.Context, limit int, nextToken *string) ([]domain.ReconciliationRun, *string, error) {
	query := reconciliationSelect + ` WHERE TRUE`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid reconciliation pagination token: %w", err)
		}
		query += fmt.Sprintf(" AND run_date < $%d", len(args)+1)
		args = append(args, cursor)
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(" ORDER BY run_date DESC, run_id DESC LIMIT $%d;", len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query reconciliation runs: %w", err)
	}
	defer rows.Close()

	modelRuns, err := pgx.CollectRows(rows, scanReconciliationRun)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan reconciliation runs: %w", err)
	}

	var next *string
	if len(modelRuns) > limit {
		modelRuns = modelRuns[:limit]
		token := pagination.EncodeDateBasedToken(modelRuns[len(modelRuns)-1].RunDate)
		next = &token
	}

	domainRuns := make([]domain.ReconciliationRun, len(modelRuns))
	for i, modelRun := range modelRuns {
		domainRun, err := mapping.ToDomainReconciliationRun(modelRun)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to map reconciliation run %s: %w", modelRun.RunID, err)
		}
		domainRuns[i] = domainRun
	}
	return domainRuns, next, nil
}

func scanReconciliationRun(row pgx.CollectableRow) (models.ReconciliationRun, error) {
	var run models.ReconciliationRun
	err := row.Scan(
		&run.RunID,
		&run.RunDate,
		&run.Status,
		&run.TotalAccounts,
		&run.BalancedAccounts,
		&run.ImbalancedAccounts,
		&run.Discrepancies,
		&run.CompletedAt,
		&run.CreatedAt,
		&run.CreatedBy,
		&run.LastUpdatedAt,
		&run.LastUpdatedBy,
	)
	return run, err
}
