package dto

import (
	"time"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest is one debit or credit line of a transaction request.
type CreateEntryRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	EntryType    string          `json:"entryType" binding:"required,oneof=DEBIT CREDIT"`
	Amount       decimal.Decimal `json:"amount" binding:"required,dgt0"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	Description  string          `json:"description,omitempty"`
}

// CreateTransactionRequest is the body for creating a balanced transaction.
type CreateTransactionRequest struct {
	IdempotencyKey  string               `json:"idempotencyKey" binding:"required"`
	Reference       string               `json:"reference,omitempty"`
	Description     string               `json:"description" binding:"required"`
	TransactionDate time.Time            `json:"transactionDate" binding:"required"`
	Metadata        map[string]string    `json:"metadata,omitempty"`
	Entries         []CreateEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// VoidTransactionRequest is the body for voiding a transaction.
type VoidTransactionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// TransactionResponse is the API representation of a transaction header.
// Entries are fetched separately by transaction id.
type TransactionResponse struct {
	TransactionID   string            `json:"transactionID"`
	IdempotencyKey  string            `json:"idempotencyKey"`
	Reference       string            `json:"reference,omitempty"`
	Description     string            `json:"description"`
	Status          string            `json:"status"`
	TransactionDate time.Time         `json:"transactionDate"`
	PostedAt        *time.Time        `json:"postedAt,omitempty"`
	VoidedAt        *time.Time        `json:"voidedAt,omitempty"`
	VoidReason      string            `json:"voidReason,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	CreatedBy       string            `json:"createdBy"`
}

func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		IdempotencyKey:  t.IdempotencyKey,
		Reference:       t.Reference,
		Description:     t.Description,
		Status:          string(t.Status),
		TransactionDate: t.TransactionDate,
		PostedAt:        t.PostedAt,
		VoidedAt:        t.VoidedAt,
		VoidReason:      t.VoidReason,
		Metadata:        t.Metadata,
		CreatedAt:       t.CreatedAt,
		CreatedBy:       t.CreatedBy,
	}
}

// EntryResponse is the API representation of a transaction entry.
// All decimal fields serialize as exact-precision strings.
type EntryResponse struct {
	EntryID            string          `json:"entryID"`
	TransactionID      string          `json:"transactionID"`
	AccountID          string          `json:"accountID"`
	EntryType          string          `json:"entryType"`
	Amount             decimal.Decimal `json:"amount"`
	CurrencyCode       string          `json:"currencyCode"`
	BaseCurrencyAmount decimal.Decimal `json:"baseCurrencyAmount"`
	ExchangeRateUsed   decimal.Decimal `json:"exchangeRateUsed"`
	Description        string          `json:"description,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
}

func ToEntryResponse(e *domain.TransactionEntry) EntryResponse {
	return EntryResponse{
		EntryID:            e.EntryID,
		TransactionID:      e.TransactionID,
		AccountID:          e.AccountID,
		EntryType:          string(e.EntryType),
		Amount:             e.Amount,
		CurrencyCode:       e.CurrencyCode,
		BaseCurrencyAmount: e.BaseCurrencyAmount,
		ExchangeRateUsed:   e.ExchangeRateUsed,
		Description:        e.Description,
		CreatedAt:          e.CreatedAt,
	}
}

func ToEntryResponses(es []domain.TransactionEntry) []EntryResponse {
	resp := make([]EntryResponse, len(es))
	for i := range es {
		resp[i] = ToEntryResponse(&es[i])
	}
	return resp
}

// ListEntriesParams carries cursor pagination inputs for entry listings.
type ListEntriesParams struct {
	Limit     int
	NextToken *string
}

// ListEntriesResponse wraps a page of entries plus the next-page token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
