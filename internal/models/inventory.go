package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product maps the products table. Cost, Sold and EndStock are derived
// columns maintained inside posting transactions.
type Product struct {
	ProductID int64           `json:"productID"` // Primary key (bigserial)
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Cost      decimal.Decimal `json:"cost"`
	Sold      decimal.Decimal `json:"sold"`
	EndStock  decimal.Decimal `json:"endStock"`
	AuditFields
}

// Warehouse maps the warehouses table.
type Warehouse struct {
	WarehouseID   int64  `json:"warehouseID"` // Primary key (bigserial)
	Code          string `json:"code"`
	Name          string `json:"name"`
	CashAccountID string `json:"cashAccountID"`
	IsActive      bool   `json:"isActive"`
}

// WarehouseStock maps the warehouse_stocks table. Composite primary key
// (warehouse_id, product_id).
type WarehouseStock struct {
	WarehouseID  int64           `json:"warehouseID"`
	ProductID    int64           `json:"productID"`
	InitStock    decimal.Decimal `json:"initStock"`
	CurrentStock decimal.Decimal `json:"currentStock"`
}

// InventoryTransaction maps the inventory_transactions table.
type InventoryTransaction struct {
	TransactionID int64           `json:"transactionID"` // Primary key (bigserial)
	Invoice       string          `json:"invoice"`
	DateIssued    time.Time       `json:"dateIssued"`
	ProductID     int64           `json:"productID"`
	Quantity      decimal.Decimal `json:"quantity"` // Signed: sales negative, purchases positive
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	TrxType       string          `json:"transactionType"`
	ContactID     int64           `json:"contactID"`
	WarehouseID   int64           `json:"warehouseID"`
	UserID        string          `json:"userID"`
	AuditFields
}

// Contact maps the contacts table.
type Contact struct {
	ContactID int64  `json:"contactID"` // Primary key (bigserial)
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}
