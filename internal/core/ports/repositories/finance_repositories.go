package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tokotrack/backoffice/internal/core/domain"
)

// FinanceSummary aggregates one contact's AP or AR position.
type FinanceSummary struct {
	ContactID   int64
	FinanceType domain.FinanceType
	Billed      decimal.Decimal
	Paid        decimal.Decimal
	Outstanding decimal.Decimal
}

// FinanceReader defines read operations over AP/AR records.
type FinanceReader interface {
	// FindFinanceByID retrieves one finance record.
	FindFinanceByID(ctx context.Context, financeID string) (*domain.Finance, error)

	// FindFinancesByInvoice retrieves the full payment history of one
	// invoice, bill row first.
	FindFinancesByInvoice(ctx context.Context, invoice string) ([]domain.Finance, error)

	// ListFinancesByType retrieves records of one finance type, optionally
	// restricted to a contact, newest first.
	ListFinancesByType(ctx context.Context, financeType domain.FinanceType, contactID *int64) ([]domain.Finance, error)

	// SummarizeByContact aggregates billed/paid/outstanding totals per
	// contact for one finance type.
	SummarizeByContact(ctx context.Context, financeType domain.FinanceType) ([]FinanceSummary, error)

	// HasInventoryTransactions reports whether inventory rows reference
	// the invoice; such finance records cannot be deleted.
	HasInventoryTransactions(ctx context.Context, invoice string) (bool, error)
}

// FinanceWriter defines the mutations allowed outside event posting.
type FinanceWriter interface {
	// DeleteFinanceWithJournals removes the finance record and the journal
	// lines posted with the same invoice, status and payment ordinal,
	// atomically.
	DeleteFinanceWithJournals(ctx context.Context, finance domain.Finance) error
}

// FinanceRepositoryFacade combines the finance repository interfaces.
type FinanceRepositoryFacade interface {
	FinanceReader
	FinanceWriter
}
