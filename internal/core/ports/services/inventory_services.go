package services

import (
	"context"
	"time"

	"github.com/tokotrack/backoffice/internal/core/domain"
)

// InventorySvcFacade exposes inventory reads. All inventory writes happen
// inside posting events.
type InventorySvcFacade interface {
	// GetProductByID retrieves one product.
	GetProductByID(ctx context.Context, productID int64) (*domain.Product, error)

	// ListWarehouseStock retrieves current stock levels for one warehouse.
	ListWarehouseStock(ctx context.Context, warehouseID int64) ([]domain.WarehouseStock, error)

	// ListTransactionsByProduct retrieves a product's movements in a window.
	ListTransactionsByProduct(ctx context.Context, productID int64, start, end time.Time) ([]domain.InventoryTransaction, error)
}
