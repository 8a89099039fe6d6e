package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot is a cached account balance at a point in time, used to
// bound the cost of balance recomputation over long entry histories.
// At most one snapshot exists per (account, day); re-snapshotting the same
// day replaces the stored balance.
type BalanceSnapshot struct {
	SnapshotID   string          `json:"snapshotID"` // Primary Key (e.g., UUID)
	AccountID    string          `json:"accountID"`  // FK -> accounts.account_id
	Balance      decimal.Decimal `json:"balance"`    // Signed per the account's normal balance
	CurrencyCode string          `json:"currencyCode"`
	SnapshotDate time.Time       `json:"snapshotDate"` // Truncated to day
	AuditFields
}
