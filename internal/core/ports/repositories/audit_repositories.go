package repositories

import (
	"context"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AuditLogReader defines read operations for the audit trail
type AuditLogReader interface {
	// ListAuditLogs retrieves audit rows for an entity, newest first, using
	// token-based cursor pagination.
	ListAuditLogs(ctx context.Context, entityType, entityID string, limit int, nextToken *string) ([]domain.AuditLog, *string, error)
}

// AuditLogWriter defines write operations for the audit trail.
// Mutating repositories append audit rows on their own pgx.Tx so that the
// audit write commits or rolls back with the primary mutation.
type AuditLogWriter interface {
	// AppendInTx appends one immutable audit row within an open transaction.
	AppendInTx(ctx context.Context, tx pgx.Tx, log domain.AuditLog) error
}

// AuditLogRepositoryFacade combines the audit repository interfaces
type AuditLogRepositoryFacade interface {
	AuditLogReader
	AuditLogWriter
}
