package mapping

import (
	"github.com/tokotrack/backoffice/internal/core/domain"
	"github.com/tokotrack/backoffice/internal/models"
)

// ToModelFinance converts a domain Finance to a model Finance
func ToModelFinance(d domain.Finance) models.Finance {
	return models.Finance{
		FinanceID:   d.FinanceID,
		Invoice:     d.Invoice,
		JournalID:   d.JournalID,
		DateIssued:  d.DateIssued,
		DueDate:     d.DueDate,
		Description: d.Description,
		BillAmount:  d.BillAmount,
		PayAmount:   d.PayAmount,
		Settled:     d.Settled,
		PaymentNth:  d.PaymentNth,
		FinanceType: string(d.FinanceType),
		ContactID:   d.ContactID,
		AccountID:   d.AccountID,
		UserID:      d.UserID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFinance converts a model Finance to a domain Finance
func ToDomainFinance(m models.Finance) domain.Finance {
	return domain.Finance{
		FinanceID:   m.FinanceID,
		Invoice:     m.Invoice,
		JournalID:   m.JournalID,
		DateIssued:  m.DateIssued,
		DueDate:     m.DueDate,
		Description: m.Description,
		BillAmount:  m.BillAmount,
		PayAmount:   m.PayAmount,
		Settled:     m.Settled,
		PaymentNth:  m.PaymentNth,
		FinanceType: domain.FinanceType(m.FinanceType),
		ContactID:   m.ContactID,
		AccountID:   m.AccountID,
		UserID:      m.UserID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFinanceSlice converts a slice of model Finances
func ToDomainFinanceSlice(ms []models.Finance) []domain.Finance {
	ds := make([]domain.Finance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFinance(m)
	}
	return ds
}
