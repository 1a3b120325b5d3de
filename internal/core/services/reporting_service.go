package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokotrack/backoffice/internal/core/domain"
	portsrepo "github.com/tokotrack/backoffice/internal/core/ports/repositories"
	portssvc "github.com/tokotrack/backoffice/internal/core/ports/services"
	"github.com/tokotrack/backoffice/internal/dto"
	"github.com/tokotrack/backoffice/internal/utils/accounting"
)

// assetKindOrder fixes the presentation order of balance sheet asset sections.
var assetKindOrder = []domain.CategoryKind{
	domain.KindCash,
	domain.KindBank,
	domain.KindReceivable,
	domain.KindInventory,
	domain.KindInvestment,
	domain.KindAsset,
	domain.KindFixedAsset,
}

// ReportingService reshapes computed balances into financial statements. It
// never aggregates journal rows itself for balances; everything flows through
// the ledger service so reports agree with balance queries.
type ReportingService struct {
	accountRepo   portsrepo.AccountRepositoryFacade
	journalRepo   portsrepo.JournalRepositoryFacade
	inventoryRepo portsrepo.InventoryRepositoryFacade
	ledgerSvc     portssvc.LedgerSvcFacade
}

// NewReportingService creates a ReportingService.
func NewReportingService(
	accountRepo portsrepo.AccountRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	inventoryRepo portsrepo.InventoryRepositoryFacade,
	ledgerSvc portssvc.LedgerSvcFacade,
) *ReportingService {
	return &ReportingService{
		accountRepo:   accountRepo,
		journalRepo:   journalRepo,
		inventoryRepo: inventoryRepo,
		ledgerSvc:     ledgerSvc,
	}
}

// accountsByKind indexes all accounts under their category kind, preserving
// code order, and returns the category lookup alongside.
func (s *ReportingService) accountsByKind(ctx context.Context) (map[domain.CategoryKind][]domain.Account, map[int]domain.AccountCategory, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	categories, err := s.accountRepo.ListCategories(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list categories: %w", err)
	}
	catByID := make(map[int]domain.AccountCategory, len(categories))
	for _, cat := range categories {
		catByID[cat.CategoryID] = cat
	}
	byKind := make(map[domain.CategoryKind][]domain.Account)
	for _, acc := range accounts {
		kind := catByID[acc.CategoryID].Kind
		byKind[kind] = append(byKind[kind], acc)
	}
	return byKind, catByID, nil
}

func sectionFromBalances(kind domain.CategoryKind, accounts []domain.Account, balances map[string]decimal.Decimal) dto.ReportSection {
	section := dto.ReportSection{Kind: kind, Total: decimal.Zero, Accounts: []dto.ReportLine{}}
	for _, acc := range accounts {
		balance := balances[acc.AccountID]
		section.Accounts = append(section.Accounts, dto.ReportLine{
			AccountID: acc.AccountID,
			Code:      acc.Code,
			Name:      acc.Name,
			Balance:   balance,
		})
		section.Total = section.Total.Add(balance)
	}
	return section
}

// periodSection computes one kind's section from period activity only, so a
// profit and loss statement ignores balances carried in from before start.
func (s *ReportingService) periodSection(ctx context.Context, kind domain.CategoryKind, accounts []domain.Account, catByID map[int]domain.AccountCategory, start, end time.Time) (dto.ReportSection, error) {
	section := dto.ReportSection{Kind: kind, Total: decimal.Zero, Accounts: []dto.ReportLine{}}
	for _, acc := range accounts {
		activity, err := s.journalRepo.SumAccountActivity(ctx, acc.AccountID, start, end)
		if err != nil {
			return section, fmt.Errorf("failed to aggregate activity for %s: %w", acc.Code, err)
		}
		movement, err := accounting.EndingBalance(decimal.Zero, activity.Debit, activity.Credit, catByID[acc.CategoryID].NormalSide)
		if err != nil {
			return section, err
		}
		section.Accounts = append(section.Accounts, dto.ReportLine{
			AccountID: acc.AccountID,
			Code:      acc.Code,
			Name:      acc.Name,
			Balance:   movement,
		})
		section.Total = section.Total.Add(movement)
	}
	return section, nil
}

// ProfitLoss reports revenue minus cost minus expense over [start, end].
func (s *ReportingService) ProfitLoss(ctx context.Context, start, end time.Time) (*dto.ProfitLossReport, error) {
	byKind, catByID, err := s.accountsByKind(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := s.periodSection(ctx, domain.KindRevenue, byKind[domain.KindRevenue], catByID, start, end)
	if err != nil {
		return nil, err
	}
	cost, err := s.periodSection(ctx, domain.KindCost, byKind[domain.KindCost], catByID, start, end)
	if err != nil {
		return nil, err
	}
	expense, err := s.periodSection(ctx, domain.KindExpense, byKind[domain.KindExpense], catByID, start, end)
	if err != nil {
		return nil, err
	}

	return &dto.ProfitLossReport{
		Start:     domain.DateOnly(start),
		End:       domain.DateOnly(end),
		Revenue:   revenue,
		Cost:      cost,
		Expense:   expense,
		NetProfit: revenue.Total.Sub(cost.Total).Sub(expense.Total),
	}, nil
}

// BalanceSheet reports the position statement as of end-of-day on asOf.
// Cumulative profit to date appears as its own equity line so the statement
// closes: assets = liabilities + equity + profit.
func (s *ReportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*dto.BalanceSheetReport, error) {
	byKind, _, err := s.accountsByKind(ctx)
	if err != nil {
		return nil, err
	}
	balances, err := s.ledgerSvc.BalancesAsOf(ctx, asOf)
	if err != nil {
		return nil, err
	}

	report := &dto.BalanceSheetReport{
		AsOf:        domain.DateOnly(asOf),
		Assets:      []dto.ReportSection{},
		TotalAssets: decimal.Zero,
	}
	for _, kind := range assetKindOrder {
		section := sectionFromBalances(kind, byKind[kind], balances)
		report.Assets = append(report.Assets, section)
		report.TotalAssets = report.TotalAssets.Add(section.Total)
	}

	report.Liabilities = sectionFromBalances(domain.KindPayable, byKind[domain.KindPayable], balances)
	report.Equity = sectionFromBalances(domain.KindEquity, byKind[domain.KindEquity], balances)

	profit := decimal.Zero
	for _, kind := range []domain.CategoryKind{domain.KindRevenue, domain.KindCost, domain.KindExpense} {
		section := sectionFromBalances(kind, byKind[kind], balances)
		if kind == domain.KindRevenue {
			profit = profit.Add(section.Total)
		} else {
			profit = profit.Sub(section.Total)
		}
	}
	report.PeriodProfit = profit
	report.TotalLiabEqty = report.Liabilities.Total.Add(report.Equity.Total).Add(profit)
	return report, nil
}

// CashFlow reports cash and bank movement over [start, end].
func (s *ReportingService) CashFlow(ctx context.Context, start, end time.Time) (*dto.CashFlowReport, error) {
	byKind, _, err := s.accountsByKind(ctx)
	if err != nil {
		return nil, err
	}

	opening, err := s.ledgerSvc.BalancesAsOf(ctx, domain.DateOnly(start).AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	closing, err := s.ledgerSvc.BalancesAsOf(ctx, end)
	if err != nil {
		return nil, err
	}

	report := &dto.CashFlowReport{
		Start:    domain.DateOnly(start),
		End:      domain.DateOnly(end),
		Opening:  decimal.Zero,
		Closing:  decimal.Zero,
		Sections: []dto.ReportSection{},
	}
	for _, kind := range []domain.CategoryKind{domain.KindCash, domain.KindBank} {
		accounts := byKind[kind]
		section := sectionFromBalances(kind, accounts, closing)
		report.Sections = append(report.Sections, section)
		report.Closing = report.Closing.Add(section.Total)
		for _, acc := range accounts {
			report.Opening = report.Opening.Add(opening[acc.AccountID])
		}
	}
	report.NetMovement = report.Closing.Sub(report.Opening)
	return report, nil
}

// WarehouseBalances reports per-warehouse cash and bank positions as of asOf.
func (s *ReportingService) WarehouseBalances(ctx context.Context, asOf time.Time) (*dto.WarehouseBalanceReport, error) {
	warehouses, err := s.inventoryRepo.ListWarehouses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}
	byKind, _, err := s.accountsByKind(ctx)
	if err != nil {
		return nil, err
	}
	balances, err := s.ledgerSvc.BalancesAsOf(ctx, asOf)
	if err != nil {
		return nil, err
	}

	report := &dto.WarehouseBalanceReport{
		AsOf:       domain.DateOnly(asOf),
		Warehouses: []dto.WarehouseCashBank{},
		TotalCash:  decimal.Zero,
		TotalBank:  decimal.Zero,
	}
	for _, wh := range warehouses {
		row := dto.WarehouseCashBank{WarehouseID: wh.WarehouseID, Name: wh.Name, Cash: decimal.Zero, Bank: decimal.Zero}
		for _, acc := range byKind[domain.KindCash] {
			if acc.WarehouseID != nil && *acc.WarehouseID == wh.WarehouseID {
				row.Cash = row.Cash.Add(balances[acc.AccountID])
			}
		}
		for _, acc := range byKind[domain.KindBank] {
			if acc.WarehouseID != nil && *acc.WarehouseID == wh.WarehouseID {
				row.Bank = row.Bank.Add(balances[acc.AccountID])
			}
		}
		report.Warehouses = append(report.Warehouses, row)
		report.TotalCash = report.TotalCash.Add(row.Cash)
		report.TotalBank = report.TotalBank.Add(row.Bank)
	}
	return report, nil
}

// DailyRevenue reports one warehouse's month of dashboard figures, one row
// per calendar day plus a totals row.
func (s *ReportingService) DailyRevenue(ctx context.Context, warehouseID int64, month time.Month, year int) (*dto.DailyRevenueReport, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	lines, err := s.journalRepo.ListJournalsByDateRange(ctx, monthStart, domain.EndOfDay(monthEnd), &warehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}

	days := monthEnd.Day()
	rows := make([]dto.DailyRevenueRow, days)
	for i := range rows {
		rows[i] = dto.DailyRevenueRow{
			Date:        monthStart.AddDate(0, 0, i).Format(time.DateOnly),
			Transfer:    decimal.Zero,
			Withdrawal:  decimal.Zero,
			Voucher:     decimal.Zero,
			Deposit:     decimal.Zero,
			Accessories: decimal.Zero,
			Expense:     decimal.Zero,
			Fee:         decimal.Zero,
		}
	}

	for _, line := range lines {
		day := domain.DateOnly(line.DateIssued).Day() - 1
		if day < 0 || day >= days {
			continue
		}
		row := &rows[day]
		switch line.TrxType {
		case domain.TrxTransfer:
			row.Transfer = row.Transfer.Add(line.Amount)
		case domain.TrxCashWithdrawal:
			row.Withdrawal = row.Withdrawal.Add(line.Amount)
		case domain.TrxVoucher:
			row.Voucher = row.Voucher.Add(line.Amount)
		case domain.TrxDeposit:
			row.Deposit = row.Deposit.Add(line.Amount)
		case domain.TrxAccessories, domain.TrxGoodsSale:
			row.Accessories = row.Accessories.Add(line.Amount)
		case domain.TrxExpense:
			row.Expense = row.Expense.Add(line.Amount)
		}
		row.Fee = row.Fee.Add(line.FeeAmount)
		row.TrxCount++
	}

	totals := dto.DailyRevenueRow{
		Date:        monthStart.Format("2006-01"),
		Transfer:    decimal.Zero,
		Withdrawal:  decimal.Zero,
		Voucher:     decimal.Zero,
		Deposit:     decimal.Zero,
		Accessories: decimal.Zero,
		Expense:     decimal.Zero,
		Fee:         decimal.Zero,
	}
	for _, row := range rows {
		totals.Transfer = totals.Transfer.Add(row.Transfer)
		totals.Withdrawal = totals.Withdrawal.Add(row.Withdrawal)
		totals.Voucher = totals.Voucher.Add(row.Voucher)
		totals.Deposit = totals.Deposit.Add(row.Deposit)
		totals.Accessories = totals.Accessories.Add(row.Accessories)
		totals.Expense = totals.Expense.Add(row.Expense)
		totals.Fee = totals.Fee.Add(row.Fee)
		totals.TrxCount += row.TrxCount
	}

	return &dto.DailyRevenueReport{
		WarehouseID: warehouseID,
		Days:        rows,
		Totals:      totals,
	}, nil
}
