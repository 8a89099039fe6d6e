package services

import (
	"context"
	"time"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
	"github.com/arcadehub/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// GetBaseCurrency retrieves the ledger's base currency.
	GetBaseCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies retrieves all registered currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// RegisterCurrency persists a new currency.
	RegisterCurrency(ctx context.Context, req dto.RegisterCurrencyRequest, actor dto.Actor) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetRate resolves the rate from one currency to another as of a date.
	// A direct pair wins; otherwise the reciprocal of the inverse pair is used.
	GetRate(ctx context.Context, fromCode, toCode string, asOf time.Time) (decimal.Decimal, error)

	// Convert converts an amount between currencies as of a date.
	Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, asOf time.Time) (*dto.ConversionResponse, error)

	// ToBaseCurrency converts an amount into the base currency, returning the
	// converted amount and the rate that was applied.
	ToBaseCurrency(ctx context.Context, amount decimal.Decimal, fromCode string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error)

	// ListExchangeRates retrieves a filtered, paginated list of stored rates.
	ListExchangeRates(ctx context.Context, params dto.ListExchangeRatesParams) (*dto.ListExchangeRatesResponse, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// SetExchangeRate persists a rate for a currency pair on an effective date,
	// replacing any rate already stored for that pair and date.
	SetExchangeRate(ctx context.Context, req dto.SetExchangeRateRequest, actor dto.Actor) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
