package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokotrack/backoffice/internal/core/domain"
)

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID int64           `json:"productID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Cost      decimal.Decimal `json:"cost"`
	Sold      decimal.Decimal `json:"sold"`
	EndStock  decimal.Decimal `json:"endStock"`
}

// WarehouseStockResponse defines one product's stock level in a warehouse.
type WarehouseStockResponse struct {
	WarehouseID  int64           `json:"warehouseID"`
	ProductID    int64           `json:"productID"`
	CurrentStock decimal.Decimal `json:"currentStock"`
}

// InventoryTransactionResponse defines one signed stock movement.
type InventoryTransactionResponse struct {
	TransactionID int64                   `json:"transactionID"`
	Invoice       string                  `json:"invoice"`
	DateIssued    time.Time               `json:"dateIssued"`
	ProductID     int64                   `json:"productID"`
	Quantity      decimal.Decimal         `json:"quantity"`
	Price         decimal.Decimal         `json:"price"`
	Cost          decimal.Decimal         `json:"cost"`
	TrxType       domain.InventoryTrxType `json:"transactionType"`
	WarehouseID   int64                   `json:"warehouseID"`
}

// ToProductResponse converts a domain.Product.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID: p.ProductID,
		Code:      p.Code,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Cost:      p.Cost,
		Sold:      p.Sold,
		EndStock:  p.EndStock,
	}
}

// ToWarehouseStockResponses converts warehouse stock rows.
func ToWarehouseStockResponses(stocks []domain.WarehouseStock) []WarehouseStockResponse {
	res := make([]WarehouseStockResponse, len(stocks))
	for i, s := range stocks {
		res[i] = WarehouseStockResponse{
			WarehouseID:  s.WarehouseID,
			ProductID:    s.ProductID,
			CurrentStock: s.CurrentStock,
		}
	}
	return res
}

// ToInventoryTransactionResponses converts inventory movements.
func ToInventoryTransactionResponses(txns []domain.InventoryTransaction) []InventoryTransactionResponse {
	res := make([]InventoryTransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = InventoryTransactionResponse{
			TransactionID: t.TransactionID,
			Invoice:       t.Invoice,
			DateIssued:    t.DateIssued,
			ProductID:     t.ProductID,
			Quantity:      t.Quantity,
			Price:         t.Price,
			Cost:          t.Cost,
			TrxType:       t.TrxType,
			WarehouseID:   t.WarehouseID,
		}
	}
	return res
}
