package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tokotrack/backoffice/internal/apperrors"
	"github.com/tokotrack/backoffice/internal/core/domain"
	portsrepo "github.com/tokotrack/backoffice/internal/core/ports/repositories"
	"github.com/tokotrack/backoffice/internal/models"
	"github.com/tokotrack/backoffice/internal/utils/mapping"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new read-side repository for products,
// warehouses, stock levels and contacts.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

func (r *PgxInventoryRepository) FindProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	query := `
		SELECT product_id, code, name, category, price, cost, sold, end_stock,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM products WHERE product_id = $1`
	var m models.Product
	err := r.Pool.QueryRow(ctx, query, productID).Scan(
		&m.ProductID, &m.Code, &m.Name, &m.Category, &m.Price, &m.Cost, &m.Sold, &m.EndStock,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %d", apperrors.ErrNotFound, productID)
		}
		return nil, fmt.Errorf("failed to find product %d: %w", productID, err)
	}
	product := mapping.ToDomainProduct(m)
	return &product, nil
}

func (r *PgxInventoryRepository) FindWarehouseByID(ctx context.Context, warehouseID int64) (*domain.Warehouse, error) {
	query := `SELECT warehouse_id, code, name, cash_account_id, is_active FROM warehouses WHERE warehouse_id = $1`
	var m models.Warehouse
	err := r.Pool.QueryRow(ctx, query, warehouseID).Scan(&m.WarehouseID, &m.Code, &m.Name, &m.CashAccountID, &m.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: warehouse %d", apperrors.ErrNotFound, warehouseID)
		}
		return nil, fmt.Errorf("failed to find warehouse %d: %w", warehouseID, err)
	}
	warehouse := mapping.ToDomainWarehouse(m)
	return &warehouse, nil
}

func (r *PgxInventoryRepository) FindContactByID(ctx context.Context, contactID int64) (*domain.Contact, error) {
	query := `SELECT contact_id, name, phone, address FROM contacts WHERE contact_id = $1`
	var m models.Contact
	err := r.Pool.QueryRow(ctx, query, contactID).Scan(&m.ContactID, &m.Name, &m.Phone, &m.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: contact %d", apperrors.ErrNotFound, contactID)
		}
		return nil, fmt.Errorf("failed to find contact %d: %w", contactID, err)
	}
	contact := mapping.ToDomainContact(m)
	return &contact, nil
}

func (r *PgxInventoryRepository) ListWarehouseStock(ctx context.Context, warehouseID int64) ([]domain.WarehouseStock, error) {
	query := `
		SELECT warehouse_id, product_id, init_stock, current_stock
		FROM warehouse_stocks WHERE warehouse_id = $1
		ORDER BY product_id`
	rows, err := r.Pool.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list warehouse stock: %w", err)
	}
	defer rows.Close()

	stocks := []domain.WarehouseStock{}
	for rows.Next() {
		var m models.WarehouseStock
		if err := rows.Scan(&m.WarehouseID, &m.ProductID, &m.InitStock, &m.CurrentStock); err != nil {
			return nil, fmt.Errorf("failed to scan warehouse stock: %w", err)
		}
		stocks = append(stocks, mapping.ToDomainWarehouseStock(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate warehouse stock: %w", err)
	}
	return stocks, nil
}

func (r *PgxInventoryRepository) ListTransactionsByProduct(ctx context.Context, productID int64, start, end time.Time) ([]domain.InventoryTransaction, error) {
	query := `
		SELECT transaction_id, invoice, date_issued, product_id, quantity, price, cost, trx_type, contact_id, warehouse_id, user_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM inventory_transactions
		WHERE product_id = $1 AND date_issued >= $2 AND date_issued <= $3
		ORDER BY date_issued DESC, transaction_id DESC`
	rows, err := r.Pool.Query(ctx, query, productID, domain.DateOnly(start), domain.EndOfDay(end))
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.InventoryTransaction{}
	for rows.Next() {
		var m models.InventoryTransaction
		err := rows.Scan(
			&m.TransactionID, &m.Invoice, &m.DateIssued, &m.ProductID, &m.Quantity, &m.Price, &m.Cost,
			&m.TrxType, &m.ContactID, &m.WarehouseID, &m.UserID,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory transaction: %w", err)
		}
		txns = append(txns, mapping.ToDomainInventoryTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory transactions: %w", err)
	}
	return txns, nil
}

func (r *PgxInventoryRepository) ListWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	query := `SELECT warehouse_id, code, name, cash_account_id, is_active FROM warehouses WHERE is_active ORDER BY name`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}
	defer rows.Close()

	warehouses := []domain.Warehouse{}
	for rows.Next() {
		var m models.Warehouse
		if err := rows.Scan(&m.WarehouseID, &m.Code, &m.Name, &m.CashAccountID, &m.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan warehouse: %w", err)
		}
		warehouses = append(warehouses, mapping.ToDomainWarehouse(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate warehouses: %w", err)
	}
	return warehouses, nil
}
