package services

import (
	"context"
	"fmt"

	portsrepo "github.com/arcadehub/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/arcadehub/ledger_engine/internal/core/ports/services"
	"github.com/arcadehub/ledger_engine/internal/dto"
)

// auditService exposes the append-only audit trail for reads. Writes never go
// through a service; repositories append audit rows inside the transaction of
// the mutation they document.
type auditService struct {
	auditRepo portsrepo.AuditLogReader
}

// NewAuditService creates a new audit service.
func NewAuditService(auditRepo portsrepo.AuditLogReader) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) ListAuditLogs(ctx context.Context, entityType string, entityID string, limit int, nextToken *string) (*dto.ListAuditLogsResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	logs, next, err := s.auditRepo.ListAuditLogs(ctx, entityType, entityID, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	resp := dto.ToListAuditLogsResponse(logs, next)
	return &resp, nil
}
