package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/tokotrack/backoffice/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx-backed repositories against one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	snapshotRepo := newPgxBalanceRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	financeRepo := newPgxFinanceRepository(dbPool)
	inventoryRepo := newPgxInventoryRepository(dbPool)

	return &portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		JournalRepo:   journalRepo,
		SnapshotRepo:  snapshotRepo,
		FinanceRepo:   financeRepo,
		InventoryRepo: inventoryRepo,
	}
}
