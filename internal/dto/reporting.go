package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokotrack/backoffice/internal/core/domain"
)

// ReportLine is one account's computed balance inside a report section.
type ReportLine struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}

// ReportSection groups accounts of one category kind with their total.
type ReportSection struct {
	Kind     domain.CategoryKind `json:"kind"`
	Total    decimal.Decimal     `json:"total"`
	Accounts []ReportLine        `json:"accounts"`
}

// ProfitLossReport is revenue minus cost minus expense over a period.
type ProfitLossReport struct {
	Start     time.Time       `json:"startDate"`
	End       time.Time       `json:"endDate"`
	Revenue   ReportSection   `json:"revenue"`
	Cost      ReportSection   `json:"cost"`
	Expense   ReportSection   `json:"expense"`
	NetProfit decimal.Decimal `json:"netProfit"`
}

// BalanceSheetReport is the position statement as of one date.
type BalanceSheetReport struct {
	AsOf          time.Time       `json:"asOf"`
	Assets        []ReportSection `json:"assets"`
	Liabilities   ReportSection   `json:"liabilities"`
	Equity        ReportSection   `json:"equity"`
	PeriodProfit  decimal.Decimal `json:"periodProfit"`
	TotalAssets   decimal.Decimal `json:"totalAssets"`
	TotalLiabEqty decimal.Decimal `json:"totalLiabilitiesAndEquity"`
}

// CashFlowReport tracks cash and bank movement over a period.
type CashFlowReport struct {
	Start       time.Time       `json:"startDate"`
	End         time.Time       `json:"endDate"`
	Opening     decimal.Decimal `json:"openingBalance"`
	NetMovement decimal.Decimal `json:"netMovement"`
	Closing     decimal.Decimal `json:"closingBalance"`
	Sections    []ReportSection `json:"sections"`
}

// WarehouseCashBank is one warehouse's cash and bank position.
type WarehouseCashBank struct {
	WarehouseID int64           `json:"warehouseID"`
	Name        string          `json:"name"`
	Cash        decimal.Decimal `json:"cash"`
	Bank        decimal.Decimal `json:"bank"`
}

// WarehouseBalanceReport lists per-warehouse cash/bank balances.
type WarehouseBalanceReport struct {
	AsOf       time.Time           `json:"asOf"`
	Warehouses []WarehouseCashBank `json:"warehouses"`
	TotalCash  decimal.Decimal     `json:"totalCash"`
	TotalBank  decimal.Decimal     `json:"totalBank"`
}

// DailyRevenueRow is one day's dashboard figures for a warehouse.
type DailyRevenueRow struct {
	Date        string          `json:"date"`
	Transfer    decimal.Decimal `json:"transfer"`
	Withdrawal  decimal.Decimal `json:"withdrawal"`
	Voucher     decimal.Decimal `json:"voucher"`
	Deposit     decimal.Decimal `json:"deposit"`
	Accessories decimal.Decimal `json:"accessories"`
	TrxCount    int             `json:"trxCount"`
	Expense     decimal.Decimal `json:"expense"`
	Fee         decimal.Decimal `json:"fee"`
}

// DailyRevenueReport is a month's dashboard for one warehouse.
type DailyRevenueReport struct {
	WarehouseID int64             `json:"warehouseID"`
	Days        []DailyRevenueRow `json:"days"`
	Totals      DailyRevenueRow   `json:"totals"`
}
