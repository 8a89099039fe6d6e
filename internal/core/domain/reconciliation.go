package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationStatus indicates the outcome of a reconciliation run.
type ReconciliationStatus string

const (
	ReconciliationPending    ReconciliationStatus = "PENDING"
	ReconciliationBalanced   ReconciliationStatus = "BALANCED"
	ReconciliationImbalanced ReconciliationStatus = "IMBALANCED"
)

// GlobalDiscrepancyID marks a discrepancy that applies to the whole ledger
// (global debit/credit mismatch) rather than a single account.
const GlobalDiscrepancyID = "GLOBAL"

// Discrepancy records one detected mismatch between the expected
// (snapshot-derived) and actual (freshly recomputed) balance of an account.
type Discrepancy struct {
	AccountID       string          `json:"accountID"`
	AccountCode     string          `json:"accountCode"`
	AccountName     string          `json:"accountName"`
	ExpectedBalance decimal.Decimal `json:"expectedBalance"`
	ActualBalance   decimal.Decimal `json:"actualBalance"`
	Difference      decimal.Decimal `json:"difference"`
}

// ReconciliationRun is the persisted record of one reconciliation pass.
// Failed runs are stored as Imbalanced with a synthetic discrepancy carrying
// the error, so they remain queryable.
type ReconciliationRun struct {
	RunID              string               `json:"runID"` // Primary Key (e.g., UUID)
	RunDate            time.Time            `json:"runDate"`
	Status             ReconciliationStatus `json:"status"`
	TotalAccounts      int                  `json:"totalAccounts"`
	BalancedAccounts   int                  `json:"balancedAccounts"`
	ImbalancedAccounts int                  `json:"imbalancedAccounts"`
	Discrepancies      []Discrepancy        `json:"discrepancies"`
	CompletedAt        *time.Time           `json:"completedAt,omitempty"`
	AuditFields
}
