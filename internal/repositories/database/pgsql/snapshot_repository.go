package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
	portsrepo "github.com/arcadehub/ledger_engine/internal/core/ports/repositories"
	"github.com/arcadehub/ledger_engine/internal/models"
	"github.com/arcadehub/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSnapshotRepository struct {
	BaseRepository
}

// newPgxSnapshotRepository creates a new repository for balance snapshots.
func newPgxSnapshotRepository(pool *pgxpool.Pool) portsrepo.SnapshotRepositoryFacade {
	return &PgxSnapshotRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SnapshotRepositoryFacade = (*PgxSnapshotRepository)(nil)

const snapshotSelect = `
	SELECT snapshot_id, account_id, balance, currency_code, snapshot_date, created_at, created_by, last_updated_at, last_updated_by
	FROM balance_snapshots`

// UpsertSnapshot inserts the snapshot or replaces the balance stored for the
// same (account, day). Snapshots are derived data, recomputable from entries,
// so no audit row accompanies them.
func (r *PgxSnapshotRepository) UpsertSnapshot(ctx context.Context, snapshot domain.BalanceSnapshot) error {
	modelSnap := mapping.ToModelSnapshot(snapshot)

	query := `
		INSERT INTO balance_snapshots (snapshot_id, account_id, balance, currency_code, snapshot_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (account_id, snapshot_date) DO UPDATE SET
			balance = EXCLUDED.balance,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		modelSnap.SnapshotID,
		modelSnap.AccountID,
		modelSnap.Balance,
		modelSnap.CurrencyCode,
		modelSnap.SnapshotDate,
		modelSnap.CreatedAt,
		modelSnap.CreatedBy,
		modelSnap.LastUpdatedAt,
		modelSnap.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot for account %s: %w", modelSnap.AccountID, err)
	}
	return nil
}

// FindSnapshotByDate retrieves the snapshot for an exact (account, day), or nil.
func (r *PgxSnapshotRepository) FindSnapshotByDate(ctx context.Context, accountID string, date time.Time) (*domain.BalanceSnapshot, error) {
	return r.queryOne(ctx, snapshotSelect+` WHERE account_id = $1 AND snapshot_date = $2;`, accountID, date)
}

// FindLatestSnapshot retrieves the account's most recent snapshot, or nil.
func (r *PgxSnapshotRepository) FindLatestSnapshot(ctx context.Context, accountID string) (*domain.BalanceSnapshot, error) {
	return r.queryOne(ctx, snapshotSelect+` WHERE account_id = $1 ORDER BY snapshot_date DESC LIMIT 1;`, accountID)
}

// ListSnapshotsByAccount retrieves all snapshots of an account, newest first.
func (r *PgxSnapshotRepository) ListSnapshotsByAccount(ctx context.Context, accountID string) ([]domain.BalanceSnapshot, error) {
	rows, err := r.Pool.Query(ctx, snapshotSelect+` WHERE account_id = $1 ORDER BY snapshot_date DESC;`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots for account %s: %w", accountID, err)
	}
	defer rows.Close()

	modelSnaps, err := pgx.CollectRows(rows, scanSnapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshots: %w", err)
	}

	return mapping.ToDomainSnapshotSlice(modelSnaps), nil
}

func (r *PgxSnapshotRepository) queryOne(ctx context.Context, query string, args ...interface{}) (*domain.BalanceSnapshot, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	modelSnap, err := pgx.CollectOneRow(rows, scanSnapshot)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	domainSnap := mapping.ToDomainSnapshot(modelSnap)
	return &domainSnap, nil
}

func scanSnapshot(row pgx.CollectableRow) (models.BalanceSnapshot, error) {
	var snapshot models.BalanceSnapshot
	err := row.Scan(
		&snapshot.SnapshotID,
		&snapshot.AccountID,
		&snapshot.Balance,
		&snapshot.CurrencyCode,
		&snapshot.SnapshotDate,
		&snapshot.CreatedAt,
		&snapshot.CreatedBy,
		&snapshot.LastUpdatedAt,
		&snapshot.LastUpdatedBy,
	)
	return snapshot, err
}
