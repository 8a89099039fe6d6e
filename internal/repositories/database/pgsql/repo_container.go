package pgsql

import (
	portsrepo "github.com/arcadehub/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	currencyRepo := newPgxCurrencyRepository(dbPool)
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	summaryRepo := newPgxSummaryRepository(dbPool)
	snapshotRepo := newPgxSnapshotRepository(dbPool)
	auditLogRepo := newPgxAuditLogRepository(dbPool)
	reconciliationRepo := newPgxReconciliationRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CurrencyRepo:       currencyRepo,
		ExchangeRateRepo:   exchangeRateRepo,
		AccountRepo:        accountRepo,
		TransactionRepo:    transactionRepo,
		SummaryRepo:        summaryRepo,
		SnapshotRepo:       snapshotRepo,
		AuditLogRepo:       auditLogRepo,
		ReconciliationRepo: reconciliationRepo,
	}
}
