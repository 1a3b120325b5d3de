package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokotrack/backoffice/internal/core/domain"
)

// AccountReader defines read operations for chart-of-account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountByName retrieves an account by its unique name.
	FindAccountByName(ctx context.Context, name string) (*domain.Account, error)

	// ListAccounts retrieves all chart-of-account entries ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListAccountsByKinds retrieves accounts whose category carries one of
	// the given kinds.
	ListAccountsByKinds(ctx context.Context, kinds ...domain.CategoryKind) ([]domain.Account, error)

	// HasJournalReferences reports whether any journal line references the
	// account on either side.
	HasJournalReferences(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for chart-of-account data.
type AccountWriter interface {
	// SaveAccount persists a new account and returns its assigned code.
	// The next sequential code within the category's numbering block is
	// minted in the same transaction as the insert, serialized with a
	// locking read.
	SaveAccount(ctx context.Context, account domain.Account) (string, error)

	// UpdateAccount updates an existing account's name and starting balance.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// UpdateStartingBalance overwrites one account's starting balance.
	UpdateStartingBalance(ctx context.Context, accountID string, balance decimal.Decimal, userID string, now time.Time) error

	// DeleteAccount removes an account row.
	DeleteAccount(ctx context.Context, accountID string) error
}

// CategoryReader exposes the seeded account categories.
type CategoryReader interface {
	// FindCategoryByID retrieves one seeded category.
	FindCategoryByID(ctx context.Context, categoryID int) (*domain.AccountCategory, error)

	// ListCategories retrieves all seeded categories ordered by ID.
	ListCategories(ctx context.Context) ([]domain.AccountCategory, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	CategoryReader
}
