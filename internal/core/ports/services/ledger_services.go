package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the balance recalculation engine.
type LedgerSvcFacade interface {
	// RecomputeAsOf recomputes every account's ending balance as of
	// end-of-day on cutoff from full history and persists the snapshots.
	RecomputeAsOf(ctx context.Context, cutoff time.Time) error

	// EnsureSnapshot lazily runs RecomputeAsOf(date) when the snapshot row
	// for any account is missing for that date.
	EnsureSnapshot(ctx context.Context, date time.Time) error

	// BalanceAsOf answers "balance at end-of-day on date" for one account
	// via the prior-day snapshot plus same-day deltas.
	BalanceAsOf(ctx context.Context, accountID string, date time.Time) (decimal.Decimal, error)

	// BalancesAsOf answers the same question for every account at once.
	BalancesAsOf(ctx context.Context, date time.Time) (map[string]decimal.Decimal, error)

	// RefreshFrom handles a historical edit at editedDate: recompute that
	// date's snapshots, then drop every later snapshot. Same-day edits are
	// no-ops.
	RefreshFrom(ctx context.Context, editedDate time.Time) error

	// RestateEquity recomputes the equity account's starting balance from
	// assets minus liabilities as of the given date and persists it.
	RestateEquity(ctx context.Context, asOf time.Time, userID string) (decimal.Decimal, error)
}
