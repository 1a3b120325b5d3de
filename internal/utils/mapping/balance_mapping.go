package mapping

import (
	"github.com/tokotrack/backoffice/internal/core/domain"
	"github.com/tokotrack/backoffice/internal/models"
)

// ToModelBalanceSnapshot converts a domain BalanceSnapshot to a model BalanceSnapshot
func ToModelBalanceSnapshot(d domain.BalanceSnapshot) models.BalanceSnapshot {
	return models.BalanceSnapshot{
		AccountID:     d.AccountID,
		BalanceDate:   d.BalanceDate,
		EndingBalance: d.EndingBalance,
		ComputedAt:    d.ComputedAt,
	}
}

// ToDomainBalanceSnapshot converts a model BalanceSnapshot to a domain BalanceSnapshot
func ToDomainBalanceSnapshot(m models.BalanceSnapshot) domain.BalanceSnapshot {
	return domain.BalanceSnapshot{
		AccountID:     m.AccountID,
		BalanceDate:   m.BalanceDate,
		EndingBalance: m.EndingBalance,
		ComputedAt:    m.ComputedAt,
	}
}
