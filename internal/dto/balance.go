package dto

import (
	"time"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceResponse is the signed balance of an account at a point in time.
// Positive means the account carries its normal-balance side.
type BalanceResponse struct {
	AccountID    string          `json:"accountID"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
	AsOf         time.Time       `json:"asOf"`
}

// SnapshotResponse is the API representation of a persisted balance snapshot.
type SnapshotResponse struct {
	SnapshotID   string          `json:"snapshotID"`
	AccountID    string          `json:"accountID"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
	SnapshotDate time.Time       `json:"snapshotDate"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func ToSnapshotResponse(s *domain.BalanceSnapshot) SnapshotResponse {
	return SnapshotResponse{
		SnapshotID:   s.SnapshotID,
		AccountID:    s.AccountID,
		Balance:      s.Balance,
		CurrencyCode: s.CurrencyCode,
		SnapshotDate: s.SnapshotDate,
		CreatedAt:    s.CreatedAt,
	}
}

// ListSnapshotsResponse wraps the snapshots of one account, newest first.
type ListSnapshotsResponse struct {
	Snapshots []SnapshotResponse `json:"snapshots"`
}

func ToListSnapshotsResponse(snapshots []domain.BalanceSnapshot) ListSnapshotsResponse {
	resp := ListSnapshotsResponse{Snapshots: make([]SnapshotResponse, len(snapshots))}
	for i := range snapshots {
		resp.Snapshots[i] = ToSnapshotResponse(&snapshots[i])
	}
	return resp
}
