package repositories

// RepositoryProvider aggregates every repository implementation so wiring can
// hand them to the service container in one value.
type RepositoryProvider struct {
	CurrencyRepo       CurrencyRepositoryFacade
	ExchangeRateRepo   ExchangeRateRepositoryFacade
	AccountRepo        AccountRepositoryFacade
	TransactionRepo    TransactionRepositoryWithTx
	SummaryRepo        EntrySummaryReader
	SnapshotRepo       SnapshotRepositoryFacade
	AuditLogRepo       AuditLogRepositoryFacade
	ReconciliationRepo ReconciliationRepositoryFacade
}
