package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot maps the account_balances table. Composite primary key
// (account_id, balance_date).
type BalanceSnapshot struct {
	AccountID     string          `json:"accountID"`
	BalanceDate   time.Time       `json:"balanceDate"`
	EndingBalance decimal.Decimal `json:"endingBalance"`
	ComputedAt    time.Time       `json:"computedAt"`
}
