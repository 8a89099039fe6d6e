package mapping

import (
	"github.com/arcadehub/ledger_engine/internal/core/domain"
	"github.com/arcadehub/ledger_engine/internal/models"
)

func ToModelSnapshot(d domain.BalanceSnapshot) models.BalanceSnapshot {
	return models.BalanceSnapshot{
		SnapshotID:   d.SnapshotID,
		AccountID:    d.AccountID,
		Balance:      d.Balance,
		CurrencyCode: d.CurrencyCode,
		SnapshotDate: d.SnapshotDate,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainSnapshot(m models.BalanceSnapshot) domain.BalanceSnapshot {
	return domain.BalanceSnapshot{
		SnapshotID:   m.SnapshotID,
		AccountID:    m.AccountID,
		Balance:      m.Balance,
		CurrencyCode: m.CurrencyCode,
		SnapshotDate: m.SnapshotDate,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainSnapshotSlice(ms []models.BalanceSnapshot) []domain.BalanceSnapshot {
	ds := make([]domain.BalanceSnapshot, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSnapshot(m)
	}
	return ds
}
