package repositories

import (
	"context"
	"time"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its unique user-facing code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindChildAccounts retrieves the direct children of an account.
	FindChildAccounts(ctx context.Context, parentAccountID string) ([]domain.Account, error)

	// FindActiveAccounts retrieves every active account (reconciliation scan).
	FindActiveAccounts(ctx context.Context) ([]domain.Account, error)

	// ListAccounts retrieves a paginated list of active accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account and its audit row atomically.
	// Returns apperrors.ErrDuplicate when the account code is taken.
	SaveAccount(ctx context.Context, account domain.Account, audit domain.AuditLog) error

	// UpdateAccount updates an existing account's mutable details (name,
	// description) and writes the audit row in the same transaction.
	UpdateAccount(ctx context.Context, account domain.Account, audit domain.AuditLog) error

	// DeactivateAccount marks an account as inactive, with its audit row.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time, audit domain.AuditLog) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
