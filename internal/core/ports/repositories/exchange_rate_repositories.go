package repositories

import (
	"context"
	"time"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindLatestRate retrieves the most recent rate for the exact (from, to)
	// pair with an effective date on or before asOf. Inverse-pair fallback is
	// the service's concern, not the repository's.
	FindLatestRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves rates with optional pair/date filters and
	// offset pagination. Returns the rates and the unfiltered total.
	ListExchangeRates(ctx context.Context, fromCurrency, toCurrency *string, effectiveDate *time.Time, page, pageSize int) ([]domain.ExchangeRate, int, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// UpsertExchangeRate inserts a rate or, when one already exists for
	// (from, to, effective date), replaces its value. The audit row is
	// written in the same database transaction.
	UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate, audit domain.AuditLog) error
}

// ExchangeRateRepositoryFacade combines all exchange-rate repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

// ExchangeRateRepositoryWithTx extends ExchangeRateRepositoryFacade with transaction capabilities
type ExchangeRateRepositoryWithTx interface {
	ExchangeRateRepositoryFacade
	TransactionManager
}
