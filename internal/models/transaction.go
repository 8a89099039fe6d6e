package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus mirrors the status column.
type TransactionStatus string

// EntryType mirrors the entry_type column.
type EntryType string

// Transaction mirrors one row of the transactions table.
type Transaction struct {
	TransactionID   string            `json:"transactionID"`
	IdempotencyKey  string            `json:"idempotencyKey"`
	Reference       string            `json:"reference"`
	Description     string            `json:"description"`
	Status          TransactionStatus `json:"status"`
	TransactionDate time.Time         `json:"transactionDate"`
	PostedAt        *time.Time        `json:"postedAt,omitempty"`
	VoidedAt        *time.Time        `json:"voidedAt,omitempty"`
	VoidReason      string            `json:"voidReason,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"` // Stored as JSONB
	AuditFields
}

// TransactionEntry mirrors one row of the transaction_entries table.
type TransactionEntry struct {
	EntryID            string          `json:"entryID"`
	TransactionID      string          `json:"transactionID"`
	AccountID          string          `json:"accountID"`
	EntryType          EntryType       `json:"entryType"`
	Amount             decimal.Decimal `json:"amount"`
	CurrencyCode       string          `json:"currencyCode"`
	BaseCurrencyAmount decimal.Decimal `json:"baseCurrencyAmount"`
	ExchangeRateUsed   decimal.Decimal `json:"exchangeRateUsed"`
	Description        string          `json:"description"`
	AuditFields
}
