package services

import (
	"context"

	"github.com/arcadehub/ledger_engine/internal/dto"
)

// AuditReaderSvc defines read operations over the audit trail
type AuditReaderSvc interface {
	// ListAuditLogs retrieves a filtered, paginated audit trail, newest first.
	ListAuditLogs(ctx context.Context, entityType string, entityID string, limit int, nextToken *string) (*dto.ListAuditLogsResponse, error)
}

// AuditSvcFacade is the full audit service surface
type AuditSvcFacade interface {
	AuditReaderSvc
}
