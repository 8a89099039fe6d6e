package domain

// Currency represents a supported currency in the ledger.
// Exactly one currency is flagged as the base currency at any time; every
// entry is converted into it for the global double-entry invariant.
type Currency struct {
	CurrencyCode   string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Name           string `json:"name"`         // e.g., "US Dollar"
	Symbol         string `json:"symbol"`       // e.g., "$"
	DecimalPlaces  int    `json:"decimalPlaces"`
	IsBaseCurrency bool   `json:"isBaseCurrency"`
	AuditFields
}
