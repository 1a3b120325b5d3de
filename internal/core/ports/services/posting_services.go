package services

import (
	"context"
	"time"

	"github.com/tokotrack/backoffice/internal/core/domain"
	"github.com/tokotrack/backoffice/internal/dto"
)

// PostingSvcFacade translates business events into atomic posting events:
// journal lines plus finance and inventory side records, committed as one
// unit. Each method validates before any write and triggers the snapshot
// refresh after commit when the event is back-dated.
type PostingSvcFacade interface {
	CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, userID string) (*dto.PostingResponse, error)
	CreateMutation(ctx context.Context, req dto.CreateMutationRequest, userID string) (*dto.PostingResponse, error)
	CreateVoucherSale(ctx context.Context, req dto.VoucherSaleRequest, userID string) (*dto.PostingResponse, error)
	CreateDepositSale(ctx context.Context, req dto.DepositSaleRequest, userID string) (*dto.PostingResponse, error)
	CreateSalesByValue(ctx context.Context, req dto.SalesByValueRequest, userID string) (*dto.PostingResponse, error)
	CheckoutCart(ctx context.Context, req dto.CheckoutCartRequest, userID string) (*dto.PostingResponse, error)
	CreateStockAdjustment(ctx context.Context, req dto.StockAdjustmentRequest, userID string) (*dto.PostingResponse, error)

	// CreateFinanceInvoice opens a payable/receivable invoice together
	// with its journal line.
	CreateFinanceInvoice(ctx context.Context, req dto.CreateFinanceRequest, userID string) (*dto.PostingResponse, error)

	// PayFinanceInvoice records a partial or final payment. Fails with
	// apperrors.ErrOverpayment before any write when the amount exceeds
	// the invoice's outstanding balance.
	PayFinanceInvoice(ctx context.Context, req dto.PayInvoiceRequest, userID string) (*dto.PostingResponse, error)

	// UpdateJournal corrects one line's amount/fee and refreshes the
	// snapshots for its issue date.
	UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.JournalLine, error)

	// DeleteJournalInvoice removes every journal line sharing the given
	// line's invoice, reverses its inventory transactions, and refreshes
	// snapshots. Fails with apperrors.ErrInUse when finance records
	// reference the invoice.
	DeleteJournalInvoice(ctx context.Context, journalID string) error

	// GetJournalByID retrieves one journal line.
	GetJournalByID(ctx context.Context, journalID string) (*domain.JournalLine, error)

	// ListJournals retrieves journal lines issued inside [start, end].
	ListJournals(ctx context.Context, start, end time.Time, warehouseID *int64) ([]domain.JournalLine, error)
}
