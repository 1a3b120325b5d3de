package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tokotrack/backoffice/internal/core/domain"
	"github.com/tokotrack/backoffice/internal/dto"
)

// FinanceSvcFacade exposes AP/AR reads and deletions. Invoice creation and
// payments are postings and live on PostingSvcFacade.
type FinanceSvcFacade interface {
	// ListFinances retrieves records of one type with per-contact totals.
	ListFinances(ctx context.Context, financeType domain.FinanceType, contactID *int64) (*dto.ListFinancesResponse, error)

	// OutstandingBalance computes billed minus paid for one invoice.
	OutstandingBalance(ctx context.Context, invoice string) (decimal.Decimal, error)

	// DeleteFinance removes an unpaid finance record and its journal
	// lines. Fails with apperrors.ErrConflict once payments exist and
	// with apperrors.ErrInUse when inventory references the invoice.
	DeleteFinance(ctx context.Context, financeID string) error
}
