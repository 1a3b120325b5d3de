package mapping

import (
	"github.com/tokotrack/backoffice/internal/core/domain"
	"github.com/tokotrack/backoffice/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		Code:            d.Code,
		Name:            d.Name,
		CategoryID:      d.CategoryID,
		StartingBalance: d.StartingBalance,
		WarehouseID:     d.WarehouseID,
		IsLocked:        d.IsLocked,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		Code:            m.Code,
		Name:            m.Name,
		CategoryID:      m.CategoryID,
		StartingBalance: m.StartingBalance,
		WarehouseID:     m.WarehouseID,
		IsLocked:        m.IsLocked,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCategory converts a model AccountCategory to a domain AccountCategory
func ToDomainCategory(m models.AccountCategory) domain.AccountCategory {
	return domain.AccountCategory{
		CategoryID: m.CategoryID,
		Name:       m.Name,
		NormalSide: domain.NormalSide(m.NormalSide),
		Kind:       domain.CategoryKind(m.Kind),
		CodePrefix: m.CodePrefix,
	}
}
