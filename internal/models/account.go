package models

// AccountType mirrors the account_type column.
type AccountType string

// NormalBalance mirrors the normal_balance column.
type NormalBalance string

// Account mirrors one row of the accounts table.
type Account struct {
	AccountID       string        `json:"accountID"`
	Code            string        `json:"code"`
	Name            string        `json:"name"`
	AccountType     AccountType   `json:"accountType"`
	CurrencyCode    string        `json:"currencyCode"`
	ParentAccountID string        `json:"parentAccountID"` // Empty when NULL
	NormalBalance   NormalBalance `json:"normalBalance"`
	Description     string        `json:"description"`
	IsActive        bool          `json:"isActive"`
	AuditFields
}
