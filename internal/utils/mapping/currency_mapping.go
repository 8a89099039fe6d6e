package mapping

import (
	"github.com/arcadehub/ledger_engine/internal/core/domain"
	"github.com/arcadehub/ledger_engine/internal/models"
)

func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyCode:   d.CurrencyCode,
		Name:           d.Name,
		Symbol:         d.Symbol,
		DecimalPlaces:  d.DecimalPlaces,
		IsBaseCurrency: d.IsBaseCurrency,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode:   m.CurrencyCode,
		Name:           m.Name,
		Symbol:         m.Symbol,
		DecimalPlaces:  m.DecimalPlaces,
		IsBaseCurrency: m.IsBaseCurrency,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	ds := make([]domain.Currency, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrency(m)
	}
	return ds
}
