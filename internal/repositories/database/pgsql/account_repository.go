package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arcadehub/ledger_engine/internal/apperrors"
	"github.com/arcadehub/ledger_engine/internal/core/domain"
	portsrepo "github.com/arcadehub/ledger_engine/internal/core/ports/repositories"
	"github.com/arcadehub/ledger_engine/internal/models"
	"github.com/arcadehub/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

const accountSelect = `
	SELECT account_id, code, name, account_type, currency_code, COALESCE(parent_account_id, ''), normal_balance, description, is_active, created_at, created_by, last_updated_at, last_updated_by
	FROM accounts`

// SaveAccount inserts a new account with its audit row. A taken code surfaces
// as ErrDuplicate via the unique constraint.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account, audit domain.AuditLog) error {
	modelAcc := mapping.ToModelAccount(account)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO accounts (account_id, code, name, account_type, currency_code, parent_account_id, normal_balance, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Code,
		modelAcc.Name,
		modelAcc.AccountType,
		modelAcc.CurrencyCode,
		modelAcc.ParentAccountID,
		modelAcc.NormalBalance,
		modelAcc.Description,
		modelAcc.IsActive,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, modelAcc.Code)
		}
		return fmt.Errorf("failed to insert account %s: %w", modelAcc.AccountID, err)
	}

	if err := appendAuditInTx(ctx, tx, audit); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateAccount persists the mutable account fields with the audit row.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account, audit domain.AuditLog) error {
	modelAcc := mapping.ToModelAccount(account)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE accounts
		SET name = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Name,
		modelAcc.Description,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", modelAcc.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, modelAcc.AccountID)
	}

	if err := appendAuditInTx(ctx, tx, audit); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeactivateAccount flips is_active off with the audit row.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND is_active;
	`
	tag, err := tx.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: active account %s", apperrors.ErrNotFound, accountID)
	}

	if err := appendAuditInTx(ctx, tx, audit); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindAccountByID retrieves an account by id, or nil when absent.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.queryOne(ctx, accountSelect+` WHERE account_id = $1;`, accountID)
}

// FindAccountByCode retrieves an account by its unique code, or nil.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return r.queryOne(ctx, accountSelect+` WHERE code = $1;`, code)
}

// FindAccountsByIDs retrieves multiple accounts keyed by id. Missing ids are
// simply absent from the result map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	rows, err := r.Pool.Query(ctx, accountSelect+` WHERE account_id = ANY($1);`, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by ids: %w", err)
	}
	defer rows.Close()

	modelAccounts, err := pgx.CollectRows(rows, scanAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}

	result := make(map[string]domain.Account, len(modelAccounts))
	for _, modelAcc := range modelAccounts {
		result[modelAcc.AccountID] = mapping.ToDomainAccount(modelAcc)
	}
	return result, nil
}

// FindChildAccounts retrieves the direct children of an account.
func (r *PgxAccountRepository) FindChildAccounts(ctx context.Context, parentAccountID string) ([]domain.Account, error) {
	return r.queryMany(ctx, accountSelect+` WHERE parent_account_id = $1 ORDER BY code;`, parentAccountID)
}

// FindActiveAccounts retrieves every active account ordered by code.
func (r *PgxAccountRepository) FindActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	return r.queryMany(ctx, accountSelect+` WHERE is_active ORDER BY code;`)
}

// ListAccounts retrieves a page of active accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	return r.queryMany(ctx, accountSelect+` WHERE is_active ORDER BY code LIMIT $1 OFFSET $2;`, limit, offset)
}

func (r *PgxAccountRepository) queryOne(ctx context.Context, query string, args ...interface{}) (*domain.Account, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	defer rows.Close()

	modelAcc, err := pgx.CollectOneRow(rows, scanAccount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}

	domainAcc := mapping.ToDomainAccount(modelAcc)
	return &domainAcc, nil
}

func (r *PgxAccountRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	modelAccounts, err := pgx.CollectRows(rows, scanAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}

	return mapping.ToDomainAccountSlice(modelAccounts), nil
}

func scanAccount(row pgx.CollectableRow) (models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.AccountID,
		&account.Code,
		&account.Name,
		&account.AccountType,
		&account.CurrencyCode,
		&account.ParentAccountID,
		&account.NormalBalance,
		&account.Description,
		&account.IsActive,
		&account.CreatedAt,
		&account.CreatedBy,
		&account.LastUpdatedAt,
		&account.LastUpdatedBy,
	)
	return account, err
}
