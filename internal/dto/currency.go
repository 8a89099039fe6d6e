package dto

import (
	"time"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
)

// RegisterCurrencyRequest is the body for registering a new currency.
type RegisterCurrencyRequest struct {
	CurrencyCode   string `json:"currencyCode" binding:"required,len=3,uppercase"`
	Name           string `json:"name" binding:"required"`
	Symbol         string `json:"symbol" binding:"required"`
	DecimalPlaces  int    `json:"decimalPlaces" binding:"gte=0,lte=18"`
	IsBaseCurrency bool   `json:"isBaseCurrency"`
}

// CurrencyResponse is the API representation of a currency.
type CurrencyResponse struct {
	CurrencyCode   string    `json:"currencyCode"`
	Name           string    `json:"name"`
	Symbol         string    `json:"symbol"`
	DecimalPlaces  int       `json:"decimalPlaces"`
	IsBaseCurrency bool      `json:"isBaseCurrency"`
	CreatedAt      time.Time `json:"createdAt"`
}

func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:   c.CurrencyCode,
		Name:           c.Name,
		Symbol:         c.Symbol,
		DecimalPlaces:  c.DecimalPlaces,
		IsBaseCurrency: c.IsBaseCurrency,
		CreatedAt:      c.CreatedAt,
	}
}

// ListCurrenciesResponse wraps the currency collection.
type ListCurrenciesResponse struct {
	Currencies []CurrencyResponse `json:"currencies"`
}

func ToListCurrenciesResponse(cs []domain.Currency) ListCurrenciesResponse {
	resp := ListCurrenciesResponse{Currencies: make([]CurrencyResponse, len(cs))}
	for i := range cs {
		resp.Currencies[i] = ToCurrencyResponse(&cs[i])
	}
	return resp
}
