package services

import (
	"context"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
	"github.com/arcadehub/ledger_engine/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction together with its entries.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListEntriesByAccount retrieves a paginated list of entries for an account.
	ListEntriesByAccount(ctx context.Context, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateTransaction validates, converts, and persists a balanced transaction.
	// A repeated idempotency key returns the already stored transaction.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor dto.Actor) (*domain.Transaction, error)

	// PostTransaction moves a pending transaction to posted.
	PostTransaction(ctx context.Context, transactionID string, actor dto.Actor) (*domain.Transaction, error)

	// VoidTransaction moves a pending or posted transaction to voided.
	// No compensating entries are created.
	VoidTransaction(ctx context.Context, transactionID string, req dto.VoidTransactionRequest, actor dto.Actor) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
