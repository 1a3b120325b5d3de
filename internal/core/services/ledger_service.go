package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokotrack/backoffice/internal/apperrors"
	"github.com/tokotrack/backoffice/internal/core/domain"
	portsrepo "github.com/tokotrack/backoffice/internal/core/ports/repositories"
	"github.com/tokotrack/backoffice/internal/middleware"
	"github.com/tokotrack/backoffice/internal/platform/metrics"
	"github.com/tokotrack/backoffice/internal/utils/accounting"
)

// LedgerService maintains the balance snapshot cache. Two code paths answer
// balance queries: a full recomputation from the journal history (RecomputeAsOf)
// and a cheap snapshot-plus-same-day-delta read (BalanceAsOf). Both go through
// accounting.EndingBalance so they cannot drift apart.
type LedgerService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	journalRepo  portsrepo.JournalRepositoryFacade
	snapshotRepo portsrepo.BalanceSnapshotRepository
	clock        domain.Clock
}

// NewLedgerService creates a LedgerService.
func NewLedgerService(
	accountRepo portsrepo.AccountRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	snapshotRepo portsrepo.BalanceSnapshotRepository,
	clock domain.Clock,
) *LedgerService {
	return &LedgerService{
		accountRepo:  accountRepo,
		journalRepo:  journalRepo,
		snapshotRepo: snapshotRepo,
		clock:        clock,
	}
}

// normalSides returns every account paired with its category's normal side.
func (s *LedgerService) normalSides(ctx context.Context) ([]domain.Account, map[int]domain.NormalSide, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	categories, err := s.accountRepo.ListCategories(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list categories: %w", err)
	}
	sides := make(map[int]domain.NormalSide, len(categories))
	for _, cat := range categories {
		sides[cat.CategoryID] = cat.NormalSide
	}
	return accounts, sides, nil
}

// RecomputeAsOf rebuilds every account's snapshot for end-of-day on cutoff
// from the full journal history and persists the result. Idempotent: running
// it twice for the same date overwrites the snapshots with identical values.
func (s *LedgerService) RecomputeAsOf(ctx context.Context, cutoff time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	started := time.Now()
	date := domain.DateOnly(cutoff)

	accounts, sides, err := s.normalSides(ctx)
	if err != nil {
		metrics.RecalculationFailures.Inc()
		return fmt.Errorf("%w: %v", apperrors.ErrRecalculation, err)
	}

	activity, err := s.journalRepo.SumActivityThrough(ctx, domain.EndOfDay(date))
	if err != nil {
		metrics.RecalculationFailures.Inc()
		return fmt.Errorf("%w: failed to aggregate journal activity: %v", apperrors.ErrRecalculation, err)
	}

	computedAt := s.clock.Now()
	snapshots := make([]domain.BalanceSnapshot, 0, len(accounts))
	for _, acc := range accounts {
		side, ok := sides[acc.CategoryID]
		if !ok {
			metrics.RecalculationFailures.Inc()
			return fmt.Errorf("%w: account %s references unknown category %d", apperrors.ErrRecalculation, acc.AccountID, acc.CategoryID)
		}
		act := activity[acc.AccountID]
		ending, err := accounting.EndingBalance(acc.StartingBalance, act.Debit, act.Credit, side)
		if err != nil {
			metrics.RecalculationFailures.Inc()
			return fmt.Errorf("%w: %v", apperrors.ErrRecalculation, err)
		}
		snapshots = append(snapshots, domain.BalanceSnapshot{
			AccountID:     acc.AccountID,
			BalanceDate:   date,
			EndingBalance: ending,
			ComputedAt:    computedAt,
		})
	}

	if err := s.snapshotRepo.UpsertSnapshots(ctx, snapshots); err != nil {
		metrics.RecalculationFailures.Inc()
		return fmt.Errorf("%w: failed to persist snapshots: %v", apperrors.ErrRecalculation, err)
	}

	metrics.RecalculationsTotal.Inc()
	metrics.RecalculationDuration.Observe(time.Since(started).Seconds())
	logger.Info("Recomputed balance snapshots",
		slog.String("balance_date", date.Format(time.DateOnly)),
		slog.Int("accounts", len(snapshots)))
	return nil
}

// EnsureSnapshot lazily fills the snapshot row set for one date. A date with
// no posting activity ends up with snapshots identical to the previous day's.
func (s *LedgerService) EnsureSnapshot(ctx context.Context, date time.Time) error {
	date = domain.DateOnly(date)
	existing, err := s.snapshotRepo.GetSnapshotsForDate(ctx, date)
	if err != nil {
		return fmt.Errorf("%w: failed to read snapshots: %v", apperrors.ErrRecalculation, err)
	}
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to list accounts: %v", apperrors.ErrRecalculation, err)
	}
	for _, acc := range accounts {
		if _, ok := existing[acc.AccountID]; !ok {
			return s.RecomputeAsOf(ctx, date)
		}
	}
	return nil
}

// BalanceAsOf answers "what was this account's balance at end-of-day on date"
// from the prior-day snapshot plus the date's own journal activity.
func (s *LedgerService) BalanceAsOf(ctx context.Context, accountID string, date time.Time) (decimal.Decimal, error) {
	date = domain.DateOnly(date)
	prior := date.AddDate(0, 0, -1)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	category, err := s.accountRepo.FindCategoryByID(ctx, account.CategoryID)
	if err != nil {
		return decimal.Zero, err
	}

	if err := s.EnsureSnapshot(ctx, prior); err != nil {
		return decimal.Zero, err
	}

	base := account.StartingBalance
	snap, err := s.snapshotRepo.GetSnapshot(ctx, accountID, prior)
	switch {
	case err == nil:
		base = snap.EndingBalance
	case errors.Is(err, apperrors.ErrNotFound):
		// Account created after the ensure pass; starting balance is the base.
	default:
		return decimal.Zero, fmt.Errorf("failed to read snapshot: %w", err)
	}

	activity, err := s.journalRepo.SumAccountActivity(ctx, accountID, date, date)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to aggregate same-day activity: %w", err)
	}
	return accounting.EndingBalance(base, activity.Debit, activity.Credit, category.NormalSide)
}

// BalancesAsOf answers the balance-as-of question for every account at once.
func (s *LedgerService) BalancesAsOf(ctx context.Context, date time.Time) (map[string]decimal.Decimal, error) {
	date = domain.DateOnly(date)
	prior := date.AddDate(0, 0, -1)

	if err := s.EnsureSnapshot(ctx, prior); err != nil {
		return nil, err
	}

	accounts, sides, err := s.normalSides(ctx)
	if err != nil {
		return nil, err
	}
	bases, err := s.snapshotRepo.GetSnapshotsForDate(ctx, prior)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshots: %w", err)
	}
	dayActivity, err := s.journalRepo.SumActivityOn(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate same-day activity: %w", err)
	}

	balances := make(map[string]decimal.Decimal, len(accounts))
	for _, acc := range accounts {
		base, ok := bases[acc.AccountID]
		if !ok {
			base = acc.StartingBalance
		}
		act := dayActivity[acc.AccountID]
		ending, err := accounting.EndingBalance(base, act.Debit, act.Credit, sides[acc.CategoryID])
		if err != nil {
			return nil, err
		}
		balances[acc.AccountID] = ending
	}
	return balances, nil
}

// RefreshFrom reacts to a change in already-posted history at editedDate:
// rebuild that date's snapshots, then drop every later snapshot so stale
// values can never be served. Edits dated today need no snapshot work because
// today's balance is always computed from live journal rows.
func (s *LedgerService) RefreshFrom(ctx context.Context, editedDate time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	date := domain.DateOnly(editedDate)
	if !date.Before(s.clock.Today()) {
		return nil
	}

	if err := s.RecomputeAsOf(ctx, date); err != nil {
		return err
	}
	if err := s.snapshotRepo.DeleteAfter(ctx, date); err != nil {
		metrics.RecalculationFailures.Inc()
		return fmt.Errorf("%w: failed to invalidate later snapshots: %v", apperrors.ErrRecalculation, err)
	}
	logger.Info("Invalidated snapshots after historical edit",
		slog.String("edited_date", date.Format(time.DateOnly)))
	return nil
}

// RestateEquity recomputes the equity account's starting balance as total
// assets minus total liabilities as of the given date and persists it. Run
// after starting-balance edits so the balance sheet keeps closing.
func (s *LedgerService) RestateEquity(ctx context.Context, asOf time.Time, userID string) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	equityAccounts, err := s.accountRepo.ListAccountsByKinds(ctx, domain.KindEquity)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find equity account: %w", err)
	}
	if len(equityAccounts) == 0 {
		return decimal.Zero, fmt.Errorf("%w: no equity account configured", apperrors.ErrNotFound)
	}
	equity := equityAccounts[0]

	balances, err := s.BalancesAsOf(ctx, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	categories, err := s.accountRepo.ListCategories(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	kinds := make(map[int]domain.CategoryKind, len(categories))
	for _, cat := range categories {
		kinds[cat.CategoryID] = cat.Kind
	}

	restated := decimal.Zero
	for _, acc := range accounts {
		kind := kinds[acc.CategoryID]
		switch {
		case kind.IsAsset():
			restated = restated.Add(balances[acc.AccountID])
		case kind.IsLiability():
			restated = restated.Sub(balances[acc.AccountID])
		}
	}

	if err := s.accountRepo.UpdateStartingBalance(ctx, equity.AccountID, restated, userID, s.clock.Now()); err != nil {
		return decimal.Zero, fmt.Errorf("failed to restate equity: %w", err)
	}
	logger.Info("Restated equity starting balance",
		slog.String("equity_account_id", equity.AccountID),
		slog.String("balance", restated.String()))
	return restated, nil
}
