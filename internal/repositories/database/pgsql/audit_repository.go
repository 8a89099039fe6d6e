package pgsql

import (
	"context"
	"fmt"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
	portsrepo "github.com/arcadehub/ledger_engine/internal/core/ports/repositories"
	"github.com/arcadehub/ledger_engine/internal/models"
	"github.com/arcadehub/ledger_engine/internal/utils/mapping"
	"github.com/arcadehub/ledger_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditLogRepository struct {
	BaseRepository
}

// newPgxAuditLogRepository creates a new repository for the audit trail.
func newPgxAuditLogRepository(pool *pgxpool.Pool) portsrepo.AuditLogRepositoryFacade {
	return &PgxAuditLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AuditLogRepositoryFacade = (*PgxAuditLogRepository)(nil)

// AppendInTx inserts one audit row on the caller's open transaction, so the
// row commits or rolls back together with the mutation it documents.
func (r *PgxAuditLogRepository) AppendInTx(ctx context.Context, tx pgx.Tx, log domain.AuditLog) error {
	return appendAuditInTx(ctx, tx, log)
}

// appendAuditInTx is shared by every mutating repository in this package.
func appendAuditInTx(ctx context.Context, tx pgx.Tx, log domain.AuditLog) error {
	modelLog := mapping.ToModelAuditLog(log)
	query := `
		INSERT INTO audit_logs (audit_log_id, entity_type, entity_id, action, old_value, new_value, user_id, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		modelLog.AuditLogID,
		modelLog.EntityType,
		modelLog.EntityID,
		modelLog.Action,
		modelLog.OldValue,
		modelLog.NewValue,
		modelLog.UserID,
		modelLog.IPAddress,
		modelLog.UserAgent,
		modelLog.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit log %s: %w", modelLog.AuditLogID, err)
	}
	return nil
}

// ListAuditLogs retrieves audit rows newest first, optionally filtered by
// entity type and id, with token-based cursor pagination over created_at.
func (r *PgxAuditLogRepository) ListAuditLogs(ctx context.Context, entityType, entityID string, limit int, nextToken *string) ([]domain.AuditLog, *string, error) {
	query := `
		SELECT audit_log_id, entity_type, entity_id, action, old_value, new_value, user_id, ip_address, user_agent, created_at
		FROM audit_logs
		WHERE ($1 = '' OR entity_type = $1)
		  AND ($2 = '' OR entity_id = $2)
	`
	args := []interface{}{entityType, entityID}

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid audit log pagination token: %w", err)
		}
		query += fmt.Sprintf(" AND created_at < $%d", len(args)+1)
		args = append(args, cursor)
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(" ORDER BY created_at DESC, audit_log_id DESC LIMIT $%d;", len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	modelLogs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AuditLog, error) {
		var log models.AuditLog
		err := row.Scan(
			&log.AuditLogID,
			&log.EntityType,
			&log.EntityID,
			&log.Action,
			&log.OldValue,
			&log.NewValue,
			&log.UserID,
			&log.IPAddress,
			&log.UserAgent,
			&log.CreatedAt,
		)
		return log, err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan audit logs: %w", err)
	}

	var next *string
	if len(modelLogs) > limit {
		modelLogs = modelLogs[:limit]
		token := pagination.EncodeDateBasedToken(modelLogs[len(modelLogs)-1].CreatedAt)
		next = &token
	}

	return mapping.ToDomainAuditLogSlice(modelLogs), next, nil
}
