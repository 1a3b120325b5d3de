package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokotrack/backoffice/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a chart-of-account entry.
type CreateAccountRequest struct {
	Name            string           `json:"name" binding:"required,max=255"`
	CategoryID      int              `json:"categoryID" binding:"required,min=1"`
	StartingBalance *decimal.Decimal `json:"startingBalance"` // Optional, defaults to zero
	WarehouseID     *int64           `json:"warehouseID"`     // Optional association
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name            *string          `json:"name"`
	StartingBalance *decimal.Decimal `json:"startingBalance"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string          `json:"accountID"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	CategoryID      int             `json:"categoryID"`
	StartingBalance decimal.Decimal `json:"startingBalance"`
	WarehouseID     *int64          `json:"warehouseID"`
	IsLocked        bool            `json:"isLocked"`
	CreatedAt       time.Time       `json:"createdAt"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
}

// CategoryResponse defines the data returned for a seeded account category.
type CategoryResponse struct {
	CategoryID int                 `json:"categoryID"`
	Name       string              `json:"name"`
	NormalSide domain.NormalSide   `json:"normalSide"`
	Kind       domain.CategoryKind `json:"kind"`
}

// BalanceResponse is the result of a balance-as-of query.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	Date      string          `json:"date"`
	Balance   decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		CategoryID:      acc.CategoryID,
		StartingBalance: acc.StartingBalance,
		WarehouseID:     acc.WarehouseID,
		IsLocked:        acc.IsLocked,
		CreatedAt:       acc.CreatedAt,
		LastUpdatedAt:   acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain accounts.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ToCategoryResponse converts a domain.AccountCategory.
func ToCategoryResponse(cat domain.AccountCategory) CategoryResponse {
	return CategoryResponse{
		CategoryID: cat.CategoryID,
		Name:       cat.Name,
		NormalSide: cat.NormalSide,
		Kind:       cat.Kind,
	}
}
