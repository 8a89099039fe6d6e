package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether an entry line is a Debit or a Credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// TransactionEntry represents a single debit or credit line within a
// Transaction, affecting exactly one account. Entries are immutable once
// written; the amount is always positive and the sign is implied by
// EntryType, never by a signed amount.
type TransactionEntry struct {
	EntryID            string          `json:"entryID"`       // Primary Key (e.g., UUID)
	TransactionID      string          `json:"transactionID"` // FK -> transactions.transaction_id
	AccountID          string          `json:"accountID"`     // FK -> accounts.account_id
	EntryType          EntryType       `json:"entryType"`
	Amount             decimal.Decimal `json:"amount"`       // Positive, in entry currency
	CurrencyCode       string          `json:"currencyCode"` // Entry (account) currency
	BaseCurrencyAmount decimal.Decimal `json:"baseCurrencyAmount"`
	ExchangeRateUsed   decimal.Decimal `json:"exchangeRateUsed"` // 1 when the entry currency is the base currency
	Description        string          `json:"description"`
	AuditFields
}

// Validate checks the entry's own shape independent of store state.
func (e TransactionEntry) Validate() error {
	if e.AccountID == "" {
		return fmt.Errorf("entry account ID is required")
	}
	if e.EntryType != Debit && e.EntryType != Credit {
		return fmt.Errorf("entry type must be DEBIT or CREDIT, got '%s'", e.EntryType)
	}
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("entry amount must be positive, got %s", e.Amount.String())
	}
	return nil
}
