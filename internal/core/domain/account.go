package domain

import (
	"github.com/shopspring/decimal"
)

// NormalSide is the side on which an account's balance grows. It is fixed by
// the account's category and never changes after creation.
type NormalSide string

const (
	DebitNormal  NormalSide = "D"
	CreditNormal NormalSide = "C"
)

// CategoryKind tags an account category with its reporting role. Grouping
// decisions use this tag; the seeded integer category IDs only preserve the
// historical numbering blocks.
type CategoryKind string

const (
	KindCash       CategoryKind = "CASH"
	KindBank       CategoryKind = "BANK"
	KindReceivable CategoryKind = "RECEIVABLE"
	KindInventory  CategoryKind = "INVENTORY"
	KindInvestment CategoryKind = "INVESTMENT"
	KindAsset      CategoryKind = "ASSET"
	KindFixedAsset CategoryKind = "FIXED_ASSET"
	KindPayable    CategoryKind = "PAYABLE"
	KindEquity     CategoryKind = "EQUITY"
	KindRevenue    CategoryKind = "REVENUE"
	KindCost       CategoryKind = "COST"
	KindExpense    CategoryKind = "EXPENSE"
)

// IsAsset reports whether the kind sits on the asset side of the balance sheet.
func (k CategoryKind) IsAsset() bool {
	switch k {
	case KindCash, KindBank, KindReceivable, KindInventory, KindInvestment, KindAsset, KindFixedAsset:
		return true
	}
	return false
}

// IsLiability reports whether the kind sits on the liability side.
func (k CategoryKind) IsLiability() bool {
	return k == KindPayable
}

// AccountCategory is a seeded, immutable classification. CategoryID values are
// stable ordered integers (1..45); NormalSide and Kind are fixed per category.
type AccountCategory struct {
	CategoryID int          `json:"categoryID"`
	Name       string       `json:"name"`
	NormalSide NormalSide   `json:"normalSide"`
	Kind       CategoryKind `json:"kind"`
	// CodePrefix is the numbering block the category's account codes start
	// from, e.g. 10100 for cash accounts.
	CodePrefix int `json:"codePrefix"`
}

// Account is one chart-of-account entry.
type Account struct {
	AccountID string `json:"accountID"` // Primary key (UUID)
	// Code is the category-scoped sequential code, e.g. "10100-003".
	Code       string `json:"code"`
	Name       string `json:"name"`
	CategoryID int    `json:"categoryID"`
	// StartingBalance is the cumulative balance as of the system's epoch,
	// before any snapshot exists. Bootstrap base for recalculation only.
	StartingBalance decimal.Decimal `json:"startingBalance"`
	WarehouseID     *int64          `json:"warehouseID"` // Optional association
	// IsLocked forbids deletion (seeded system accounts).
	IsLocked bool `json:"isLocked"`
	AuditFields
}
