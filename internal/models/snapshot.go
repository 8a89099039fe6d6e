package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot mirrors one row of the balance_snapshots table.
type BalanceSnapshot struct {
	SnapshotID   string          `json:"snapshotID"`
	AccountID    string          `json:"accountID"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
	SnapshotDate time.Time       `json:"snapshotDate"`
	AuditFields
}
