package services

import (
	portsrepo "github.com/arcadehub/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/arcadehub/ledger_engine/internal/core/ports/services"
	"github.com/arcadehub/ledger_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Currency and exchange rate services come first; everything that touches
	// money depends on them.
	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency)

	container.Account = NewAccountService(repos.AccountRepo, container.Currency)
	container.Transaction = NewTransactionService(repos.TransactionRepo, container.Account, container.ExchangeRate, cfg.MaxTxnEntries)
	container.Balance = NewBalanceService(repos.SummaryRepo, repos.SnapshotRepo, repos.AccountRepo, container.Account)
	container.Reconciliation = NewReconciliationService(repos.ReconciliationRepo, repos.SummaryRepo, repos.SnapshotRepo, repos.AccountRepo)
	container.Audit = NewAuditService(repos.AuditLogRepo)

	return container
}
