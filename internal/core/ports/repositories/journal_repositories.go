package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokotrack/backoffice/internal/core/domain"
)

// JournalReader defines read operations over the journal entry log.
type JournalReader interface {
	// FindJournalByID retrieves one journal line.
	FindJournalByID(ctx context.Context, journalID string) (*domain.JournalLine, error)

	// FindJournalsByInvoice retrieves all lines sharing one grouping key.
	FindJournalsByInvoice(ctx context.Context, invoice string) ([]domain.JournalLine, error)

	// ListJournalsByDateRange retrieves lines issued inside [start, end],
	// optionally restricted to one warehouse, newest first.
	ListJournalsByDateRange(ctx context.Context, start, end time.Time, warehouseID *int64) ([]domain.JournalLine, error)

	// SumActivityThrough aggregates per-account debit and credit totals for
	// all lines issued up to and including end-of-day on cutoff.
	SumActivityThrough(ctx context.Context, cutoff time.Time) (map[string]domain.AccountActivity, error)

	// SumActivityOn aggregates per-account debit and credit totals for
	// lines issued exactly on the given calendar date.
	SumActivityOn(ctx context.Context, date time.Time) (map[string]domain.AccountActivity, error)

	// SumAccountActivity aggregates one account's debit/credit totals over
	// [start, end] end-of-day inclusive.
	SumAccountActivity(ctx context.Context, accountID string, start, end time.Time) (domain.AccountActivity, error)
}

// JournalWriter defines the mutations allowed outside event posting.
type JournalWriter interface {
	// UpdateJournalAmounts corrects one line's amount and fee. The caller
	// must trigger recalculation for the line's issue date afterwards.
	UpdateJournalAmounts(ctx context.Context, journalID string, amount, fee decimal.Decimal, description string, userID string, now time.Time) error

	// DeleteJournalsByInvoice removes every line sharing the invoice key
	// and reverses any inventory transactions posted with it, atomically.
	DeleteJournalsByInvoice(ctx context.Context, invoice string) error
}

// EventPoster writes one business event atomically: journal lines, finance
// records, inventory transactions and the derived product cost / warehouse
// stock updates all commit together or not at all. It returns the grouping
// key the event was posted under.
type EventPoster interface {
	PostEvent(ctx context.Context, event domain.PostingEvent) (string, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	EventPoster
}
