package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Finance maps the finances table. Rows sharing an invoice are one AP/AR
// record's payment history, ordered by payment_nth.
type Finance struct {
	FinanceID   string          `json:"financeID"` // Primary key (UUID)
	Invoice     string          `json:"invoice"`
	JournalID   string          `json:"journalID"`
	DateIssued  time.Time       `json:"dateIssued"`
	DueDate     time.Time       `json:"dueDate"`
	Description string          `json:"description"`
	BillAmount  decimal.Decimal `json:"billAmount"`
	PayAmount   decimal.Decimal `json:"paymentAmount"`
	Settled     bool            `json:"paymentStatus"`
	PaymentNth  int             `json:"paymentNth"`
	FinanceType string          `json:"financeType"`
	ContactID   int64           `json:"contactID"`
	AccountID   string          `json:"accountID"`
	UserID      string          `json:"userID"`
	AuditFields
}
