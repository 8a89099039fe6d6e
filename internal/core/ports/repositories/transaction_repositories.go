package repositories

import (
	"context"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByIdempotencyKey retrieves the transaction created for a
	// caller-supplied idempotency key, if any.
	FindTransactionByIdempotencyKey(ctx context.Context, idempotencyKey string) (*domain.Transaction, error)

	// FindEntriesByTransactionID retrieves all entries of a single transaction.
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionEntry, error)

	// ListEntriesByAccountID retrieves a paginated list of posted entries for a
	// specific account using token-based cursor pagination. It returns the
	// entries, a token for the next page, and an error.
	ListEntriesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.TransactionEntry, *string, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists the transaction, all its entries, and the audit
	// row as one atomic unit. On an idempotency-key uniqueness violation it
	// returns apperrors.ErrDuplicate without persisting anything; the caller
	// re-fetches the winning row.
	SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.TransactionEntry, audit domain.AuditLog) error

	// UpdateTransactionStatus transitions the transaction's status, guarded by
	// the expected current status, and writes the audit row atomically.
	// Returns apperrors.ErrInvalidState when the row is no longer in the
	// expected status, apperrors.ErrNotFound when it does not exist.
	UpdateTransactionStatus(ctx context.Context, txn domain.Transaction, expected domain.TransactionStatus, audit domain.AuditLog) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
