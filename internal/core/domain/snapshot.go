package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot caches an account's ending balance as of end-of-day on
// BalanceDate. A snapshot for date D, combined with journal lines dated
// strictly after D, fully determines the balance for any date >= D.
//
// Snapshots are a rebuildable cache: the recalculation engine overwrites
// them freely and deletes every snapshot after a date whose history changed.
type BalanceSnapshot struct {
	AccountID     string          `json:"accountID"`
	BalanceDate   time.Time       `json:"balanceDate"` // Midnight UTC
	EndingBalance decimal.Decimal `json:"endingBalance"`
	ComputedAt    time.Time       `json:"computedAt"`
}
