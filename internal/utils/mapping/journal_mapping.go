package mapping

import (
	"github.com/tokotrack/backoffice/internal/core/domain"
	"github.com/tokotrack/backoffice/internal/models"
)

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		JournalID:       d.JournalID,
		Invoice:         d.Invoice,
		DateIssued:      d.DateIssued,
		DebitAccountID:  d.DebitAccountID,
		CreditAccountID: d.CreditAccountID,
		Amount:          d.Amount,
		FeeAmount:       d.FeeAmount,
		TrxType:         string(d.TrxType),
		Description:     d.Description,
		WarehouseID:     d.WarehouseID,
		UserID:          d.UserID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		JournalID:       m.JournalID,
		Invoice:         m.Invoice,
		DateIssued:      m.DateIssued,
		DebitAccountID:  m.DebitAccountID,
		CreditAccountID: m.CreditAccountID,
		Amount:          m.Amount,
		FeeAmount:       m.FeeAmount,
		TrxType:         domain.TrxType(m.TrxType),
		Description:     m.Description,
		WarehouseID:     m.WarehouseID,
		UserID:          m.UserID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
