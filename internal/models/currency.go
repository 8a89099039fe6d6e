package models

// Currency mirrors one row of the currencies table.
type Currency struct {
	CurrencyCode   string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	DecimalPlaces  int    `json:"decimalPlaces"`
	IsBaseCurrency bool   `json:"isBaseCurrency"`
	AuditFields
}
