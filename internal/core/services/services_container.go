package services

import (
	"github.com/tokotrack/backoffice/internal/core/domain"
	portsrepo "github.com/tokotrack/backoffice/internal/core/ports/repositories"
	portssvc "github.com/tokotrack/backoffice/internal/core/ports/services"
)

// NewServicesProvider wires every service against the repository provider.
// The ledger service is built first; the chart-of-account, posting and
// finance services all trigger snapshot work through it.
func NewServicesProvider(repos *portsrepo.RepositoryProvider, clock domain.Clock) *portssvc.ServicesProvider {
	ledgerSvc := NewLedgerService(repos.AccountRepo, repos.JournalRepo, repos.SnapshotRepo, clock)

	return &portssvc.ServicesProvider{
		AccountSvc:   NewChartOfAccountService(repos.AccountRepo, repos.SnapshotRepo, ledgerSvc, clock),
		LedgerSvc:    ledgerSvc,
		PostingSvc:   NewPostingService(repos.AccountRepo, repos.JournalRepo, repos.FinanceRepo, repos.InventoryRepo, ledgerSvc, clock),
		FinanceSvc:   NewFinanceService(repos.FinanceRepo, ledgerSvc),
		InventorySvc: NewInventoryService(repos.InventoryRepo),
		ReportingSvc: NewReportingService(repos.AccountRepo, repos.JournalRepo, repos.InventoryRepo, ledgerSvc),
	}
}
