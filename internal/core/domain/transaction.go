package domain

import "time"

// TransactionStatus indicates the state of a transaction.
// Allowed transitions: Pending -> Posted, Pending -> Voided, Posted -> Voided.
// Voided is terminal.
type TransactionStatus string

const (
	Pending TransactionStatus = "PENDING"
	Posted  TransactionStatus = "POSTED"
	Voided  TransactionStatus = "VOIDED"
)

// Transaction represents a single balanced financial event composed of
// multiple entries. Only entries of Posted transactions contribute to
// balances; voiding removes a transaction's effect without generating a
// compensating reversal.
type Transaction struct {
	TransactionID   string             `json:"transactionID"`  // Primary Key (e.g., UUID)
	IdempotencyKey  string             `json:"idempotencyKey"` // Unique, caller-supplied
	Reference       string             `json:"reference"`
	Description     string             `json:"description"`
	Status          TransactionStatus  `json:"status"`
	TransactionDate time.Time          `json:"transactionDate"`
	PostedAt        *time.Time         `json:"postedAt,omitempty"`
	VoidedAt        *time.Time         `json:"voidedAt,omitempty"`
	VoidReason      string             `json:"voidReason,omitempty"`
	Metadata        map[string]string  `json:"metadata,omitempty"`
	Entries         []TransactionEntry `json:"entries,omitempty"` // Populated on demand, not by default
	AuditFields
}

// CanPost reports whether the transaction may transition to Posted.
func (t Transaction) CanPost() bool {
	return t.Status == Pending
}

// CanVoid reports whether the transaction may transition to Voided.
// Both Pending and Posted transactions may be voided.
func (t Transaction) CanVoid() bool {
	return t.Status == Pending || t.Status == Posted
}
