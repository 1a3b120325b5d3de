package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryTrxType tags an inventory movement.
type InventoryTrxType string

const (
	InventorySale       InventoryTrxType = "Sales"
	InventoryPurchase   InventoryTrxType = "Purchase"
	InventoryAdjustment InventoryTrxType = "Stock Adjustment"
)

// Product is a sellable item. Cost is the weighted-average unit cost over all
// inventory transactions; EndStock mirrors the summed signed quantities.
type Product struct {
	ProductID int64           `json:"productID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Cost      decimal.Decimal `json:"cost"`
	Sold      decimal.Decimal `json:"sold"`
	EndStock  decimal.Decimal `json:"endStock"`
	AuditFields
}

// Warehouse is a physical location holding stock and its own cash account.
type Warehouse struct {
	WarehouseID   int64  `json:"warehouseID"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	CashAccountID string `json:"cashAccountID"`
	IsActive      bool   `json:"isActive"`
}

// WarehouseStock is the current stock level of one product in one warehouse.
// CurrentStock is derived: the sum of signed transaction quantities.
type WarehouseStock struct {
	WarehouseID  int64           `json:"warehouseID"`
	ProductID    int64           `json:"productID"`
	InitStock    decimal.Decimal `json:"initStock"`
	CurrentStock decimal.Decimal `json:"currentStock"`
}

// InventoryTransaction is one signed stock movement tied to a posted invoice.
// Sales carry negative quantities, purchases positive ones.
type InventoryTransaction struct {
	TransactionID int64            `json:"transactionID"`
	Invoice       string           `json:"invoice"`
	DateIssued    time.Time        `json:"dateIssued"`
	ProductID     int64            `json:"productID"`
	Quantity      decimal.Decimal  `json:"quantity"`
	Price         decimal.Decimal  `json:"price"`
	Cost          decimal.Decimal  `json:"cost"`
	TrxType       InventoryTrxType `json:"transactionType"`
	ContactID     int64            `json:"contactID"`
	WarehouseID   int64            `json:"warehouseID"`
	UserID        string           `json:"userID"`
	AuditFields
}

// Contact is a customer or supplier referenced by AP/AR records.
type Contact struct {
	ContactID int64  `json:"contactID"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}
