package services

import (
	"context"

	"github.com/tokotrack/backoffice/internal/core/domain"
	"github.com/tokotrack/backoffice/internal/dto"
)

// ChartOfAccountReaderSvc defines read operations for chart-of-account data.
type ChartOfAccountReaderSvc interface {
	// GetAccountByID retrieves a specific account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListCategories retrieves all seeded account categories.
	ListCategories(ctx context.Context) ([]domain.AccountCategory, error)

	// ListCashAndBankAccounts retrieves accounts of the cash and bank kinds.
	ListCashAndBankAccounts(ctx context.Context) ([]domain.Account, error)
}

// ChartOfAccountWriterSvc defines write operations for chart-of-account data.
type ChartOfAccountWriterSvc interface {
	// CreateAccount validates and persists a new account, assigning the
	// next code within the category's numbering block.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount changes an account's name and/or starting balance and
	// restates the equity account's starting balance.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an account. Fails with apperrors.ErrLocked for
	// locked accounts and apperrors.ErrInUse for referenced ones.
	DeleteAccount(ctx context.Context, accountID string) error
}

// ChartOfAccountSvcFacade combines the chart-of-account service interfaces.
type ChartOfAccountSvcFacade interface {
	ChartOfAccountReaderSvc
	ChartOfAccountWriterSvc
}
