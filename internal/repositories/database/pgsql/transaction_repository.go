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
	"github.com/arcadehub/ledger_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const transactionSelect = `
	SELECT transaction_id, idempotency_key, reference, description, status, transaction_date, posted_at, voided_at, void_reason, metadata, created_at, created_by, last_updated_at, last_updated_by
	FROM transactions`

const entrySelect = `
	SELECT entry_id, transaction_id, account_id, entry_type, amount, currency_code, base_currency_amount, exchange_rate_used, description, created_at, created_by, last_updated_at, last_updated_by
	FROM transaction_entries`

// SaveTransaction persists the transaction header, all entries, and the audit
// row in one database transaction. The unique index on idempotency_key is the
// final authority under concurrency: a violation rolls everything back and
// surfaces as ErrDuplicate so the caller can fetch the winning row.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.TransactionEntry, audit domain.AuditLog) error {
	modelTxn := mapping.ToModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	txnQuery := `
		INSERT INTO transactions (transaction_id, idempotency_key, reference, description, status, transaction_date, posted_at, voided_at, void_reason, metadata, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, txnQuery,
		modelTxn.TransactionID,
		modelTxn.IdempotencyKey,
		modelTxn.Reference,
		modelTxn.Description,
		modelTxn.Status,
		modelTxn.TransactionDate,
		modelTxn.PostedAt,
		modelTxn.VoidedAt,
		modelTxn.VoidReason,
		modelTxn.Metadata,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: idempotency key %s", apperrors.ErrDuplicate, modelTxn.IdempotencyKey)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", modelTxn.TransactionID, err)
	}

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO transaction_entries (entry_id, transaction_id, account_id, entry_type, amount, currency_code, base_currency_amount, exchange_rate_used, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, entry := range entries {
		modelEntry := mapping.ToModelEntry(entry)
		batch.Queue(entryQuery,
			modelEntry.EntryID,
			modelEntry.TransactionID,
			modelEntry.AccountID,
			modelEntry.EntryType,
			modelEntry.Amount,
			modelEntry.CurrencyCode,
			modelEntry.BaseCurrencyAmount,
			modelEntry.ExchangeRateUsed,
			modelEntry.Description,
			modelEntry.CreatedAt,
			modelEntry.CreatedBy,
			modelEntry.LastUpdatedAt,
			modelEntry.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range entries {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert entries for transaction %s: %w", modelTxn.TransactionID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close entry batch for transaction %s: %w", modelTxn.TransactionID, err)
	}

	if err := appendAuditInTx(ctx, tx, audit); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateTransactionStatus transitions the row's status guarded by the
// expected current status. Zero rows affected means either a concurrent
// transition won or the row never existed; the follow-up read distinguishes
// ErrInvalidState from ErrNotFound.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, txn domain.Transaction, expected domain.TransactionStatus, audit domain.AuditLog) error {
	modelTxn := mapping.ToModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE transactions
		SET status = $2, posted_at = $3, voided_at = $4, void_reason = $5, last_updated_at = $6, last_updated_by = $7
		WHERE transaction_id = $1 AND status = $8;
	`
	tag, err := tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.Status,
		modelTxn.PostedAt,
		modelTxn.VoidedAt,
		modelTxn.VoidReason,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
		string(expected),
	)
	if err != nil {
		return fmt.Errorf("failed to update status of transaction %s: %w", modelTxn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		var current string
		err := tx.QueryRow(ctx, `SELECT status FROM transactions WHERE transaction_id = $1;`, modelTxn.TransactionID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, modelTxn.TransactionID)
		}
		if err != nil {
			return fmt.Errorf("failed to read status of transaction %s: %w", modelTxn.TransactionID, err)
		}
		return fmt.Errorf("%w: transaction %s is %s, expected %s", apperrors.ErrInvalidState, modelTxn.TransactionID, current, expected)
	}

	if err := appendAuditInTx(ctx, tx, audit); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction header by id, or nil.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.queryOne(ctx, transactionSelect+` WHERE transaction_id = $1;`, transactionID)
}

// FindTransactionByIdempotencyKey retrieves the transaction stored under the
// caller-supplied key, or nil.
func (r *PgxTransactionRepository) FindTransactionByIdempotencyKey(ctx context.Context, idempotencyKey string) (*domain.Transaction, error) {
	return r.queryOne(ctx, transactionSelect+` WHERE idempotency_key = $1;`, idempotencyKey)
}

// FindEntriesByTransactionID retrieves all entries of one transaction.
func (r *PgxTransactionRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionEntry, error) {
	rows, err := r.Pool.Query(ctx, entrySelect+` WHERE transaction_id = $1 ORDER BY entry_id;`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries of transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	modelEntries, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("failed to scan entries: %w", err)
	}

	return mapping.ToDomainEntrySlice(modelEntries), nil
}

// ListEntriesByAccountID retrieves posted entries for an account, newest
// transaction date first, with token-based cursor pagination.
func (r *PgxTransactionRepository) ListEntriesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.TransactionEntry, *string, error) {
	query := `
		SELECT e.entry_id, e.transaction_id, e.account_id, e.entry_type, e.amount, e.currency_code, e.base_currency_amount, e.exchange_rate_used, e.description, e.created_at, e.created_by, e.last_updated_at, e.last_updated_by, t.transaction_date
		FROM transaction_entries e
		JOIN transactions t ON t.transaction_id = e.transaction_id
		WHERE e.account_id = $1 AND t.status = 'POSTED'
	`
	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		txnDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid entry pagination token: %w", err)
		}
		query += fmt.Sprintf(" AND (t.transaction_date, e.created_at) < ($%d, $%d)", len(args)+1, len(args)+2)
		args = append(args, txnDate, createdAt)
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(" ORDER BY t.transaction_date DESC, e.created_at DESC LIMIT $%d;", len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries of account %s: %w", accountID, err)
	}
	defer rows.Close()

	type pagedEntry struct {
		entry   models.TransactionEntry
		txnDate time.Time
	}
	pagedEntries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (pagedEntry, error) {
		var p pagedEntry
		err := row.Scan(
			&p.entry.EntryID,
			&p.entry.TransactionID,
			&p.entry.AccountID,
			&p.entry.EntryType,
			&p.entry.Amount,
			&p.entry.CurrencyCode,
			&p.entry.BaseCurrencyAmount,
			&p.entry.ExchangeRateUsed,
			&p.entry.Description,
			&p.entry.CreatedAt,
			&p.entry.CreatedBy,
			&p.entry.LastUpdatedAt,
			&p.entry.LastUpdatedBy,
			&p.txnDate,
		)
		return p, err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan entries: %w", err)
	}

	// The cursor pairs the parent transaction's date with the entry's
	// creation time for a stable total order.
	var next *string
	if len(pagedEntries) > limit {
		pagedEntries = pagedEntries[:limit]
		last := pagedEntries[len(pagedEntries)-1]
		token := pagination.EncodeToken(last.txnDate, last.entry.CreatedAt)
		next = &token
	}

	modelEntries := make([]models.TransactionEntry, len(pagedEntries))
	for i, p := range pagedEntries {
		modelEntries[i] = p.entry
	}
	return mapping.ToDomainEntrySlice(modelEntries), next, nil
}

func (r *PgxTransactionRepository) queryOne(ctx context.Context, query string, args ...interface{}) (*domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	defer rows.Close()

	modelTxn, err := pgx.CollectOneRow(rows, scanTransaction)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	return &domainTxn, nil
}

func scanTransaction(row pgx.CollectableRow) (models.Transaction, error) {
	var txn models.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.IdempotencyKey,
		&txn.Reference,
		&txn.Description,
		&txn.Status,
		&txn.TransactionDate,
		&txn.PostedAt,
		&txn.VoidedAt,
		&txn.VoidReason,
		&txn.Metadata,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	return txn, err
}

func scanEntry(row pgx.CollectableRow) (models.TransactionEntry, error) {
	var entry models.TransactionEntry
	err := row.Scan(
		&entry.EntryID,
		&entry.TransactionID,
		&entry.AccountID,
		&entry.EntryType,
		&entry.Amount,
		&entry.CurrencyCode,
		&entry.BaseCurrencyAmount,
		&entry.ExchangeRateUsed,
		&entry.Description,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	return entry, err
}
