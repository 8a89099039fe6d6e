package mapping

import (
	"github.com/arcadehub/ledger_engine/internal/core/domain"
	"github.com/arcadehub/ledger_engine/internal/models"
)

func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		IdempotencyKey:  d.IdempotencyKey,
		Reference:       d.Reference,
		Description:     d.Description,
		Status:          models.TransactionStatus(d.Status),
		TransactionDate: d.TransactionDate,
		PostedAt:        d.PostedAt,
		VoidedAt:        d.VoidedAt,
		VoidReason:      d.VoidReason,
		Metadata:        d.Metadata,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		IdempotencyKey:  m.IdempotencyKey,
		Reference:       m.Reference,
		Description:     m.Description,
		Status:          domain.TransactionStatus(m.Status),
		TransactionDate: m.TransactionDate,
		PostedAt:        m.PostedAt,
		VoidedAt:        m.VoidedAt,
		VoidReason:      m.VoidReason,
		Metadata:        m.Metadata,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelEntry(d domain.TransactionEntry) models.TransactionEntry {
	return models.TransactionEntry{
		EntryID:            d.EntryID,
		TransactionID:      d.TransactionID,
		AccountID:          d.AccountID,
		EntryType:          models.EntryType(d.EntryType),
		Amount:             d.Amount,
		CurrencyCode:       d.CurrencyCode,
		BaseCurrencyAmount: d.BaseCurrencyAmount,
		ExchangeRateUsed:   d.ExchangeRateUsed,
		Description:        d.Description,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainEntry(m models.TransactionEntry) domain.TransactionEntry {
	return domain.TransactionEntry{
		EntryID:            m.EntryID,
		TransactionID:      m.TransactionID,
		AccountID:          m.AccountID,
		EntryType:          domain.EntryType(m.EntryType),
		Amount:             m.Amount,
		CurrencyCode:       m.CurrencyCode,
		BaseCurrencyAmount: m.BaseCurrencyAmount,
		ExchangeRateUsed:   m.ExchangeRateUsed,
		Description:        m.Description,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainEntrySlice(ms []models.TransactionEntry) []domain.TransactionEntry {
	ds := make([]domain.TransactionEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
