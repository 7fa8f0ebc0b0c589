package services

import (
	portsrepo "github.com/finreg/adjustments_app/internal/core/ports/repositories"
	portssvc "github.com/finreg/adjustments_app/internal/core/ports/services"
	"github.com/finreg/adjustments_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// User service first since the lifecycle and export services depend on it
	// for capability checks and visibility scoping.
	container.User = NewUserService(repos.UserRepo)

	container.Account = NewAccountService(repos.AccountRepo)
	container.Type = NewAdjustmentTypeService(repos.TypeRepo)
	container.Currency = NewCurrencyService(repos.CurrencyRepo)

	container.Adjustment = NewAdjustmentService(
		cfg,
		repos.AdjustmentRepo,
		repos.AttachmentRepo,
		repos.AccountRepo,
		repos.TypeRepo,
		repos.CurrencyRepo,
		container.User,
	)

	container.Reporting = NewReportingService(repos.ReportingRepo)
	container.Export = NewExportService(repos.AdjustmentRepo, repos.AccountRepo, repos.TypeRepo, container.User)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AdjustmentSvcFacade = (*adjustmentService)(nil)
	_ portssvc.AccountSvcFacade    = (*accountService)(nil)
	_ portssvc.UserSvcFacade       = (*userService)(nil)
)
