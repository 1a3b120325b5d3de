package services

// ServicesProvider holds all service facades for handler registration.
type ServicesProvider struct {
	AccountSvc   ChartOfAccountSvcFacade
	LedgerSvc    LedgerSvcFacade
	PostingSvc   PostingSvcFacade
	FinanceSvc   FinanceSvcFacade
	InventorySvc InventorySvcFacade
	ReportingSvc ReportingSvcFacade
}
