package repositories

import (
	"context"
	"time"

	"github.com/tokotrack/backoffice/internal/core/domain"
)

// InventoryReader defines read operations over products, warehouses and stock.
type InventoryReader interface {
	// FindProductByID retrieves one product.
	FindProductByID(ctx context.Context, productID int64) (*domain.Product, error)

	// FindWarehouseByID retrieves one warehouse.
	FindWarehouseByID(ctx context.Context, warehouseID int64) (*domain.Warehouse, error)

	// FindContactByID retrieves one contact.
	FindContactByID(ctx context.Context, contactID int64) (*domain.Contact, error)

	// ListWarehouseStock retrieves current stock levels for one warehouse.
	ListWarehouseStock(ctx context.Context, warehouseID int64) ([]domain.WarehouseStock, error)

	// ListTransactionsByProduct retrieves a product's inventory movements
	// inside [start, end], newest first.
	ListTransactionsByProduct(ctx context.Context, productID int64, start, end time.Time) ([]domain.InventoryTransaction, error)

	// ListWarehouses retrieves all active warehouses ordered by name.
	ListWarehouses(ctx context.Context) ([]domain.Warehouse, error)
}

// InventoryRepositoryFacade combines the inventory repository interfaces.
// All inventory writes happen inside posting events; there is no standalone
// writer.
type InventoryRepositoryFacade interface {
	InventoryReader
}
