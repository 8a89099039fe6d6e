package dto

import (
	"time"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DiscrepancyResponse is one mismatch found by a reconciliation run.
// AccountID is "GLOBAL" when the ledger-wide debit/credit totals differ.
type DiscrepancyResponse struct {
	AccountID       string          `json:"accountID"`
	AccountCode     string          `json:"accountCode,omitempty"`
	AccountName     string          `json:"accountName,omitempty"`
	ExpectedBalance decimal.Decimal `json:"expectedBalance"`
	ActualBalance   decimal.Decimal `json:"actualBalance"`
	Difference      decimal.Decimal `json:"difference"`
}

// ReconciliationRunResponse is the API representation of a reconciliation run.
type ReconciliationRunResponse struct {
	RunID              string                `json:"runID"`
	RunDate            time.Time             `json:"runDate"`
	Status             string                `json:"status"`
	TotalAccounts      int                   `json:"totalAccounts"`
	BalancedAccounts   int                   `json:"balancedAccounts"`
	ImbalancedAccounts int                   `json:"imbalancedAccounts"`
	Discrepancies      []DiscrepancyResponse `json:"discrepancies"`
	CompletedAt        *time.Time            `json:"completedAt,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	CreatedBy          string                `json:"createdBy"`
}

func ToReconciliationRunResponse(r *domain.ReconciliationRun) ReconciliationRunResponse {
	discrepancies := make([]DiscrepancyResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = DiscrepancyResponse{
			AccountID:       d.AccountID,
			AccountCode:     d.AccountCode,
			AccountName:     d.AccountName,
			ExpectedBalance: d.ExpectedBalance,
			ActualBalance:   d.ActualBalance,
			Difference:      d.Difference,
		}
	}
	return ReconciliationRunResponse{
		RunID:              r.RunID,
		RunDate:            r.RunDate,
		Status:             string(r.Status),
		TotalAccounts:      r.TotalAccounts,
		BalancedAccounts:   r.BalancedAccounts,
		ImbalancedAccounts: r.ImbalancedAccounts,
		Discrepancies:      discrepancies,
		CompletedAt:        r.CompletedAt,
		CreatedAt:          r.CreatedAt,
		CreatedBy:          r.CreatedBy,
	}
}

// ListReconciliationRunsResponse wraps a page of runs, newest first.
type ListReconciliationRunsResponse struct {
	Runs      []ReconciliationRunResponse `json:"runs"`
	NextToken *string                     `json:"nextToken,omitempty"`
}

func ToListReconciliationRunsResponse(runs []domain.ReconciliationRun, nextToken *string) ListReconciliationRunsResponse {
	resp := ListReconciliationRunsResponse{
		Runs:      make([]ReconciliationRunResponse, len(runs)),
		NextToken: nextToken,
	}
	for i := range runs {
		resp.Runs[i] = ToReconciliationRunResponse(&runs[i])
	}
	return resp
}
