package mapping

import (
	"github.com/tokotrack/backoffice/internal/core/domain"
	"github.com/tokotrack/backoffice/internal/models"
)

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:   m.ProductID,
		Code:        m.Code,
		Name:        m.Name,
		Category:    m.Category,
		Price:       m.Price,
		Cost:        m.Cost,
		Sold:        m.Sold,
		EndStock:    m.EndStock,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainWarehouse converts a model Warehouse to a domain Warehouse
func ToDomainWarehouse(m models.Warehouse) domain.Warehouse {
	return domain.Warehouse{
		WarehouseID:   m.WarehouseID,
		Code:          m.Code,
		Name:          m.Name,
		CashAccountID: m.CashAccountID,
		IsActive:      m.IsActive,
	}
}

// ToDomainWarehouseStock converts a model WarehouseStock to a domain WarehouseStock
func ToDomainWarehouseStock(m models.WarehouseStock) domain.WarehouseStock {
	return domain.WarehouseStock{
		WarehouseID:  m.WarehouseID,
		ProductID:    m.ProductID,
		InitStock:    m.InitStock,
		CurrentStock: m.CurrentStock,
	}
}

// ToModelInventoryTransaction converts a domain InventoryTransaction to a model InventoryTransaction
func ToModelInventoryTransaction(d domain.InventoryTransaction) models.InventoryTransaction {
	return models.InventoryTransaction{
		TransactionID: d.TransactionID,
		Invoice:       d.Invoice,
		DateIssued:    d.DateIssued,
		ProductID:     d.ProductID,
		Quantity:      d.Quantity,
		Price:         d.Price,
		Cost:          d.Cost,
		TrxType:       string(d.TrxType),
		ContactID:     d.ContactID,
		WarehouseID:   d.WarehouseID,
		UserID:        d.UserID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInventoryTransaction converts a model InventoryTransaction to a domain InventoryTransaction
func ToDomainInventoryTransaction(m models.InventoryTransaction) domain.InventoryTransaction {
	return domain.InventoryTransaction{
		TransactionID: m.TransactionID,
		Invoice:       m.Invoice,
		DateIssued:    m.DateIssued,
		ProductID:     m.ProductID,
		Quantity:      m.Quantity,
		Price:         m.Price,
		Cost:          m.Cost,
		TrxType:       domain.InventoryTrxType(m.TrxType),
		ContactID:     m.ContactID,
		WarehouseID:   m.WarehouseID,
		UserID:        m.UserID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainContact converts a model Contact to a domain Contact
func ToDomainContact(m models.Contact) domain.Contact {
	return domain.Contact{
		ContactID: m.ContactID,
		Name:      m.Name,
		Phone:     m.Phone,
		Address:   m.Address,
	}
}
