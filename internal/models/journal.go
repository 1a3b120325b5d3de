package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine maps the journals table. One row carries both sides of a
// balanced debit/credit pair.
type JournalLine struct {
	JournalID       string          `json:"journalID"` // Primary key (UUID)
	Invoice         string          `json:"invoice"`
	DateIssued      time.Time       `json:"dateIssued"`
	DebitAccountID  string          `json:"debitAccountID"`
	CreditAccountID string          `json:"creditAccountID"`
	Amount          decimal.Decimal `json:"amount"`
	FeeAmount       decimal.Decimal `json:"feeAmount"`
	TrxType         string          `json:"trxType"`
	Description     string          `json:"description"`
	WarehouseID     int64           `json:"warehouseID"`
	UserID          string          `json:"userID"`
	AuditFields
}
