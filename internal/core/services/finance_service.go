package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/tokotrack/backoffice/internal/apperrors"
	"github.com/tokotrack/backoffice/internal/core/domain"
	portsrepo "github.com/tokotrack/backoffice/internal/core/ports/repositories"
	portssvc "github.com/tokotrack/backoffice/internal/core/ports/services"
	"github.com/tokotrack/backoffice/internal/dto"
	"github.com/tokotrack/backoffice/internal/middleware"
)

// FinanceService serves AP/AR reads and deletions. Creating invoices and
// recording payments are postings and live on the posting service.
type FinanceService struct {
	financeRepo portsrepo.FinanceRepositoryFacade
	ledgerSvc   portssvc.LedgerSvcFacade
}

// NewFinanceService creates a FinanceService.
func NewFinanceService(financeRepo portsrepo.FinanceRepositoryFacade, ledgerSvc portssvc.LedgerSvcFacade) *FinanceService {
	return &FinanceService{financeRepo: financeRepo, ledgerSvc: ledgerSvc}
}

// ListFinances returns records of one type alongside per-contact totals.
func (s *FinanceService) ListFinances(ctx context.Context, financeType domain.FinanceType, contactID *int64) (*dto.ListFinancesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	records, err := s.financeRepo.ListFinancesByType(ctx, financeType, contactID)
	if err != nil {
		logger.Error("Failed to list finances", slog.String("error", err.Error()), slog.String("finance_type", string(financeType)))
		return nil, fmt.Errorf("failed to list finances: %w", err)
	}
	summaries, err := s.financeRepo.SummarizeByContact(ctx, financeType)
	if err != nil {
		logger.Error("Failed to summarize finances", slog.String("error", err.Error()), slog.String("finance_type", string(financeType)))
		return nil, fmt.Errorf("failed to summarize finances: %w", err)
	}

	return &dto.ListFinancesResponse{
		Finances:  dto.ToFinanceResponses(records),
		ByContact: dto.ToFinanceSummaryResponses(summaries),
	}, nil
}

// OutstandingBalance sums bill minus payments across one invoice's records.
func (s *FinanceService) OutstandingBalance(ctx context.Context, invoice string) (decimal.Decimal, error) {
	history, err := s.financeRepo.FindFinancesByInvoice(ctx, invoice)
	if err != nil {
		return decimal.Zero, err
	}
	if len(history) == 0 {
		return decimal.Zero, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoice)
	}
	return domain.Outstanding(history), nil
}

// DeleteFinance removes one finance record together with the journal lines
// posted with it. Bills with payments on record and invoices backed by
// inventory movements cannot be deleted.
func (s *FinanceService) DeleteFinance(ctx context.Context, financeID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	finance, err := s.financeRepo.FindFinanceByID(ctx, financeID)
	if err != nil {
		return err
	}

	if finance.PaymentNth == 0 {
		history, err := s.financeRepo.FindFinancesByInvoice(ctx, finance.Invoice)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if len(history) > 1 {
			return fmt.Errorf("%w: invoice %s has payments on record", apperrors.ErrConflict, finance.Invoice)
		}
	}

	hasInventory, err := s.financeRepo.HasInventoryTransactions(ctx, finance.Invoice)
	if err != nil {
		return fmt.Errorf("failed to check inventory references: %w", err)
	}
	if hasInventory {
		return fmt.Errorf("%w: invoice %s has inventory transactions", apperrors.ErrInUse, finance.Invoice)
	}

	if err := s.financeRepo.DeleteFinanceWithJournals(ctx, *finance); err != nil {
		logger.Error("Failed to delete finance record", slog.String("error", err.Error()), slog.String("finance_id", financeID))
		return err
	}

	if err := s.ledgerSvc.RefreshFrom(ctx, finance.DateIssued); err != nil {
		logger.Error("Snapshot refresh failed after finance deletion",
			slog.String("error", err.Error()), slog.String("invoice", finance.Invoice))
	}

	logger.Info("Deleted finance record", slog.String("finance_id", financeID), slog.String("invoice", finance.Invoice))
	return nil
}
