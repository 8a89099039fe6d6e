package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
	"github.com/arcadehub/ledger_engine/internal/models"
)

func ToModelReconciliationRun(d domain.ReconciliationRun) (models.ReconciliationRun, error) {
	discrepancies := d.Discrepancies
	if discrepancies == nil {
		discrepancies = []domain.Discrepancy{}
	}
	raw, err := json.Marshal(discrepancies)
	if err != nil {
		return models.ReconciliationRun{}, fmt.Errorf("failed to marshal discrepancies for run %s: %w", d.RunID, err)
	}
	return models.ReconciliationRun{
		RunID:              d.RunID,
		RunDate:            d.RunDate,
		Status:             string(d.Status),
		TotalAccounts:      d.TotalAccounts,
		BalancedAccounts:   d.BalancedAccounts,
		ImbalancedAccounts: d.ImbalancedAccounts,
		Discrepancies:      raw,
		CompletedAt:        d.CompletedAt,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}, nil
}

func ToDomainReconciliationRun(m models.ReconciliationRun) (domain.ReconciliationRun, error) {
	var discrepancies []domain.Discrepancy
	if len(m.Discrepancies) > 0 {
		if err := json.Unmarshal(m.Discrepancies, &discrepancies); err != nil {
			return domain.ReconciliationRun{}, fmt.Errorf("failed to unmarshal discrepancies for run %s: %w", m.RunID, err)
		}
	}
	return domain.ReconciliationRun{
		RunID:              m.RunID,
		RunDate:            m.RunDate,
		Status:             domain.ReconciliationStatus(m.Status),
		TotalAccounts:      m.TotalAccounts,
		BalancedAccounts:   m.BalancedAccounts,
		ImbalancedAccounts: m.ImbalancedAccounts,
		Discrepancies:      discrepancies,
		CompletedAt:        m.CompletedAt,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}, nil
}
