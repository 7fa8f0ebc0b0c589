package pgsql

import (
	portsrepo "github.com/finreg/adjustments_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx-backed repositories over a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AdjustmentRepo: newPgxAdjustmentRepository(pool),
		AttachmentRepo: newPgxAttachmentRepository(pool),
		AccountRepo:    newPgxAccountRepository(pool),
		TypeRepo:       newPgxAdjustmentTypeRepository(pool),
		CurrencyRepo:   newPgxCurrencyRepository(pool),
		UserRepo:       newPgxUserRepository(pool),
		ReportingRepo:  newPgxReportingRepository(pool),
	}
}
