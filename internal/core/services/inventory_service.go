package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tokotrack/backoffice/internal/core/domain"
	portsrepo "github.com/tokotrack/backoffice/internal/core/ports/repositories"
)

// InventoryService serves inventory reads. Product cost, sold counters and
// warehouse stock are maintained inside posting events, never here.
type InventoryService struct {
	inventoryRepo portsrepo.InventoryRepositoryFacade
}

// NewInventoryService creates an InventoryService.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade) *InventoryService {
	return &InventoryService{inventoryRepo: inventoryRepo}
}

func (s *InventoryService) GetProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	return s.inventoryRepo.FindProductByID(ctx, productID)
}

func (s *InventoryService) ListWarehouseStock(ctx context.Context, warehouseID int64) ([]domain.WarehouseStock, error) {
	if _, err := s.inventoryRepo.FindWarehouseByID(ctx, warehouseID); err != nil {
		return nil, err
	}
	stocks, err := s.inventoryRepo.ListWarehouseStock(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list warehouse stock: %w", err)
	}
	return stocks, nil
}

func (s *InventoryService) ListTransactionsByProduct(ctx context.Context, productID int64, start, end time.Time) ([]domain.InventoryTransaction, error) {
	if _, err := s.inventoryRepo.FindProductByID(ctx, productID); err != nil {
		return nil, err
	}
	txns, err := s.inventoryRepo.ListTransactionsByProduct(ctx, productID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory transactions: %w", err)
	}
	return txns, nil
}
