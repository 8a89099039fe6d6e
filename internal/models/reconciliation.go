package models

import (
	"encoding/json"
	"time"
)

// ReconciliationRun mirrors one row of the reconciliation_runs table.
// Discrepancies are stored as a JSONB array.
type ReconciliationRun struct {
	RunID              string          `json:"runID"`
	RunDate            time.Time       `json:"runDate"`
	Status             string          `json:"status"`
	TotalAccounts      int             `json:"totalAccounts"`
	BalancedAccounts   int             `json:"balancedAccounts"`
	ImbalancedAccounts int             `json:"imbalancedAccounts"`
	Discrepancies      json.RawMessage `json:"discrepancies"`
	CompletedAt        *time.Time      `json:"completedAt,omitempty"`
	AuditFields
}
