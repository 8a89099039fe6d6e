package domain

import "fmt"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance is the side (debit or credit) on which an account's balance
// naturally increases. It is a pure function of the account type.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "DEBIT"
	NormalCredit NormalBalance = "CREDIT"
)

// NormalBalanceForType derives the normal balance side from an account type.
// Asset and Expense accounts increase on the debit side; Liability, Equity
// and Revenue accounts increase on the credit side.
func NormalBalanceForType(accountType AccountType) (NormalBalance, error) {
	switch accountType {
	case Asset, Expense:
		return NormalDebit, nil
	case Liability, Equity, Revenue:
		return NormalCredit, nil
	default:
		return "", fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// Account represents one node in the chart of accounts.
// Accounts are never physically deleted; they are deactivated instead, so
// historical entries always resolve.
type Account struct {
	AccountID       string        `json:"accountID"` // Primary Key (e.g., UUID)
	Code            string        `json:"code"`      // Unique, user-facing (e.g., "1000-CASH")
	Name            string        `json:"name"`
	AccountType     AccountType   `json:"accountType"`
	CurrencyCode    string        `json:"currencyCode"`    // FK -> currencies.currency_code
	ParentAccountID string        `json:"parentAccountID"` // Nullable FK -> accounts.account_id (self-referencing)
	NormalBalance   NormalBalance `json:"normalBalance"`   // Derived at creation from AccountType
	Description     string        `json:"description"`
	IsActive        bool          `json:"isActive"`
	AuditFields
}
