package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrxType tags a journal line with the business event that produced it.
type TrxType string

const (
	TrxTransfer        TrxType = "Transfer"
	TrxCashWithdrawal  TrxType = "Cash Withdrawal"
	TrxVoucher         TrxType = "Voucher"
	TrxDeposit         TrxType = "Deposit"
	TrxAccessories     TrxType = "Accessories"
	TrxMutation        TrxType = "Cash Mutation"
	TrxExpense         TrxType = "Expense"
	TrxGoodsSale       TrxType = "Goods Sale"
	TrxGeneralJournal  TrxType = "General Journal"
	TrxStockAdjustment TrxType = "Stock Adjustment"
)

// JournalLine is one monetary movement. Every line is inherently a balanced
// debit/credit pair: it carries both the debit-side and credit-side account
// references plus a single amount, rather than two independent rows.
type JournalLine struct {
	JournalID string `json:"journalID"` // Primary key (UUID)
	// Invoice groups all lines (and side records) of one business event.
	Invoice         string    `json:"invoice"`
	DateIssued      time.Time `json:"dateIssued"`
	DebitAccountID  string    `json:"debitAccountID"`
	CreditAccountID string    `json:"creditAccountID"`
	// Amount participates in the balance equation; always >= 0.
	Amount decimal.Decimal `json:"amount"`
	// FeeAmount is a secondary profit-tracking figure. It is reported on
	// revenue dashboards but never enters account balances.
	FeeAmount   decimal.Decimal `json:"feeAmount"`
	TrxType     TrxType         `json:"trxType"`
	Description string          `json:"description"`
	WarehouseID int64           `json:"warehouseID"`
	UserID      string          `json:"userID"`
	AuditFields
}

// AccountActivity is an aggregated debit/credit pair for one account over
// some date window.
type AccountActivity struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}
