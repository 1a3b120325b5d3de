package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tokotrack/backoffice/internal/apperrors"
	"github.com/tokotrack/backoffice/internal/core/domain"
	portsrepo "github.com/tokotrack/backoffice/internal/core/ports/repositories"
	portssvc "github.com/tokotrack/backoffice/internal/core/ports/services"
	"github.com/tokotrack/backoffice/internal/dto"
	"github.com/tokotrack/backoffice/internal/middleware"
)

// ChartOfAccountService manages chart-of-account entries. Category structure
// is seeded and immutable; the service only creates, renames and removes
// accounts within it.
type ChartOfAccountService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	snapshotRepo portsrepo.BalanceSnapshotRepository
	ledgerSvc    portssvc.LedgerSvcFacade
	clock        domain.Clock
}

// NewChartOfAccountService creates a ChartOfAccountService.
func NewChartOfAccountService(
	accountRepo portsrepo.AccountRepositoryFacade,
	snapshotRepo portsrepo.BalanceSnapshotRepository,
	ledgerSvc portssvc.LedgerSvcFacade,
	clock domain.Clock,
) *ChartOfAccountService {
	return &ChartOfAccountService{
		accountRepo:  accountRepo,
		snapshotRepo: snapshotRepo,
		ledgerSvc:    ledgerSvc,
		clock:        clock,
	}
}

func (s *ChartOfAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *ChartOfAccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

func (s *ChartOfAccountService) ListCategories(ctx context.Context) ([]domain.AccountCategory, error) {
	categories, err := s.accountRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *ChartOfAccountService) ListCashAndBankAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByKinds(ctx, domain.KindCash, domain.KindBank)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash and bank accounts: %w", err)
	}
	return accounts, nil
}

// CreateAccount validates the category, rejects duplicate names and persists
// the account; the repository assigns the next code within the category's
// numbering block as part of the insert.
func (s *ChartOfAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown category %d", apperrors.ErrValidation, req.CategoryID)
		}
		return nil, err
	}

	existing, err := s.accountRepo.FindAccountByName(ctx, req.Name)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account name %q", apperrors.ErrDuplicate, req.Name)
	}

	startingBalance := decimal.Zero
	if req.StartingBalance != nil {
		startingBalance = *req.StartingBalance
	}

	now := s.clock.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Name:            req.Name,
		CategoryID:      req.CategoryID,
		StartingBalance: startingBalance,
		WarehouseID:     req.WarehouseID,
		IsLocked:        false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	code, err := s.accountRepo.SaveAccount(ctx, account)
	if err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}
	account.Code = code

	// A non-zero opening balance shifts the balance sheet from day one.
	if !startingBalance.IsZero() {
		s.rebuildAfterStartingBalanceChange(ctx, creatorUserID)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// UpdateAccount renames an account and/or overwrites its starting balance.
// Starting-balance edits invalidate every snapshot and restate equity.
func (s *ChartOfAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	balanceChanged := false
	if req.Name != nil && *req.Name != account.Name {
		existing, err := s.accountRepo.FindAccountByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.AccountID != accountID {
			return nil, fmt.Errorf("%w: account name %q", apperrors.ErrDuplicate, *req.Name)
		}
		account.Name = *req.Name
	}
	if req.StartingBalance != nil && !req.StartingBalance.Equal(account.StartingBalance) {
		account.StartingBalance = *req.StartingBalance
		balanceChanged = true
	}

	now := s.clock.Now()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	if balanceChanged {
		s.rebuildAfterStartingBalanceChange(ctx, userID)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes an account unless it is locked or referenced by
// journal lines.
func (s *ChartOfAccountService) DeleteAccount(ctx context.Context, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.IsLocked {
		return fmt.Errorf("%w: account %s", apperrors.ErrLocked, account.Code)
	}

	referenced, err := s.accountRepo.HasJournalReferences(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check journal references: %w", err)
	}
	if referenced {
		return fmt.Errorf("%w: account %s", apperrors.ErrInUse, account.Code)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	if !account.StartingBalance.IsZero() {
		s.rebuildAfterStartingBalanceChange(ctx, account.LastUpdatedBy)
	}

	logger.Info("Account deleted", slog.String("account_id", accountID), slog.String("code", account.Code))
	return nil
}

// rebuildAfterStartingBalanceChange drops the whole snapshot cache, rebuilds
// today's snapshots and restates equity. Starting balances feed every date's
// computation, so no cached snapshot survives an edit. Failures here never
// fail the account write; balances heal lazily on the next read.
func (s *ChartOfAccountService) rebuildAfterStartingBalanceChange(ctx context.Context, userID string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.snapshotRepo.DeleteAfter(ctx, time.Time{}); err != nil {
		logger.Error("Failed to drop snapshot cache", slog.String("error", err.Error()))
		return
	}
	if err := s.ledgerSvc.RecomputeAsOf(ctx, s.clock.Today()); err != nil {
		logger.Error("Failed to rebuild snapshots", slog.String("error", err.Error()))
		return
	}
	if _, err := s.ledgerSvc.RestateEquity(ctx, s.clock.Today(), userID); err != nil {
		logger.Error("Failed to restate equity", slog.String("error", err.Error()))
	}
}
