package services

import (
	"context"
	"time"

	"github.com/tokotrack/backoffice/internal/dto"
)

// ReportingSvcFacade reshapes computed balances into financial reports. It
// only reads through the ledger service and journal aggregates.
type ReportingSvcFacade interface {
	ProfitLoss(ctx context.Context, start, end time.Time) (*dto.ProfitLossReport, error)
	BalanceSheet(ctx context.Context, asOf time.Time) (*dto.BalanceSheetReport, error)
	CashFlow(ctx context.Context, start, end time.Time) (*dto.CashFlowReport, error)
	WarehouseBalances(ctx context.Context, asOf time.Time) (*dto.WarehouseBalanceReport, error)
	DailyRevenue(ctx context.Context, warehouseID int64, month time.Month, year int) (*dto.DailyRevenueReport, error)
}
