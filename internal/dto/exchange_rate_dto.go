package dto

import (
	"time"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetExchangeRateRequest is the body for creating or replacing a rate.
type SetExchangeRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,len=3,uppercase"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,len=3,uppercase"`
	Rate             decimal.Decimal `json:"rate" binding:"required,dgt0"`
	DateEffective    time.Time       `json:"dateEffective" binding:"required"`
}

// ExchangeRateResponse is the API representation of an exchange rate.
// Rate serializes as an exact-precision decimal string.
type ExchangeRateResponse struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	CreatedAt        time.Time       `json:"createdAt"`
}

func ToExchangeRateResponse(r *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   r.ExchangeRateID,
		FromCurrencyCode: r.FromCurrencyCode,
		ToCurrencyCode:   r.ToCurrencyCode,
		Rate:             r.Rate,
		DateEffective:    r.DateEffective,
		CreatedAt:        r.CreatedAt,
	}
}

// ListExchangeRatesParams carries the optional filters for listing rates.
type ListExchangeRatesParams struct {
	FromCurrency *string
	ToCurrency   *string
	AsOf         *time.Time
	Page         int
	PageSize     int
}

// ListExchangeRatesResponse wraps a rate page with its total count.
type ListExchangeRatesResponse struct {
	Rates []ExchangeRateResponse `json:"rates"`
	Total int                    `json:"total"`
}

// ConversionResponse is the result of a currency conversion query.
type ConversionResponse struct {
	Amount           decimal.Decimal `json:"amount"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Converted        decimal.Decimal `json:"converted"`
	Rate             decimal.Decimal `json:"rate"`
	AsOf             time.Time       `json:"asOf"`
}
