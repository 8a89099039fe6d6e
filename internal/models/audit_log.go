package models

import (
	"encoding/json"
	"time"
)

// AuditLog mirrors one row of the audit_logs table.
type AuditLog struct {
	AuditLogID string          `json:"auditLogID"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityID"`
	Action     string          `json:"action"`
	OldValue   json.RawMessage `json:"oldValue,omitempty"` // JSONB, NULL for creates
	NewValue   json.RawMessage `json:"newValue,omitempty"`
	UserID     string          `json:"userID"`
	IPAddress  string          `json:"ipAddress,omitempty"`
	UserAgent  string          `json:"userAgent,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}
