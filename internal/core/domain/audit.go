package domain

import (
	"encoding/json"
	"time"
)

// AuditAction identifies the kind of mutation an audit row documents.
type AuditAction string

const (
	AuditCreate     AuditAction = "CREATE"
	AuditUpdate     AuditAction = "UPDATE"
	AuditDeactivate AuditAction = "DEACTIVATE"
	AuditPost       AuditAction = "POST"
	AuditVoid       AuditAction = "VOID"
)

// AuditLog is one immutable row in the append-only audit trail. Every
// mutating operation writes exactly one row in the same atomic scope as its
// primary write; if the audit write fails the whole mutation rolls back.
type AuditLog struct {
	AuditLogID string          `json:"auditLogID"` // Primary Key (e.g., UUID)
	EntityType string          `json:"entityType"` // e.g. "transaction", "account"
	EntityID   string          `json:"entityID"`
	Action     AuditAction     `json:"action"`
	OldValue   json.RawMessage `json:"oldValue,omitempty"`
	NewValue   json.RawMessage `json:"newValue,omitempty"`
	UserID     string          `json:"userID"` // Opaque actor id, not authenticated here
	IPAddress  string          `json:"ipAddress,omitempty"`
	UserAgent  string          `json:"userAgent,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}
