package models

import "github.com/shopspring/decimal"

// AccountCategory maps the account_categories table. Rows are seeded by
// migration and never mutated at runtime.
type AccountCategory struct {
	CategoryID int    `json:"categoryID"`
	Name       string `json:"name"`
	NormalSide string `json:"normalSide"` // "D" or "C"
	Kind       string `json:"kind"`
	CodePrefix int    `json:"codePrefix"`
}

// Account maps the accounts table.
type Account struct {
	AccountID       string          `json:"accountID"` // Primary key (UUID)
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	CategoryID      int             `json:"categoryID"`
	StartingBalance decimal.Decimal `json:"startingBalance"`
	WarehouseID     *int64          `json:"warehouseID"` // Nullable
	IsLocked        bool            `json:"isLocked"`
	AuditFields
}
