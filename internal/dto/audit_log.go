package dto

import (
	"encoding/json"
	"time"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
)

// AuditLogResponse is the API representation of one audit trail row.
type AuditLogResponse struct {
	AuditLogID string          `json:"auditLogID"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityID"`
	Action     string          `json:"action"`
	OldValue   json.RawMessage `json:"oldValue,omitempty"`
	NewValue   json.RawMessage `json:"newValue,omitempty"`
	UserID     string          `json:"userID"`
	IPAddress  string          `json:"ipAddress,omitempty"`
	UserAgent  string          `json:"userAgent,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func ToAuditLogResponse(l *domain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		AuditLogID: l.AuditLogID,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Action:     string(l.Action),
		OldValue:   l.OldValue,
		NewValue:   l.NewValue,
		UserID:     l.UserID,
		IPAddress:  l.IPAddress,
		UserAgent:  l.UserAgent,
		CreatedAt:  l.CreatedAt,
	}
}

// ListAuditLogsResponse wraps a page of audit rows, newest first.
type ListAuditLogsResponse struct {
	AuditLogs []AuditLogResponse `json:"auditLogs"`
	NextToken *string            `json:"nextToken,omitempty"`
}

func ToListAuditLogsResponse(logs []domain.AuditLog, nextToken *string) ListAuditLogsResponse {
	resp := ListAuditLogsResponse{
		AuditLogs: make([]AuditLogResponse, len(logs)),
		NextToken: nextToken,
	}
	for i := range logs {
		resp.AuditLogs[i] = ToAuditLogResponse(&logs[i])
	}
	return resp
}
