package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AdjustmentRepo AdjustmentRepositoryWithTx
	AttachmentRepo AttachmentRepositoryFacade
	AccountRepo    AccountRepositoryFacade
	TypeRepo       AdjustmentTypeRepositoryFacade
	CurrencyRepo   CurrencyRepositoryFacade
	UserRepo       UserRepositoryFacade
	ReportingRepo  ReportingRepository
}
