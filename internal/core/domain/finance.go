package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinanceType distinguishes accounts payable from accounts receivable.
type FinanceType string

const (
	Payable    FinanceType = "Payable"
	Receivable FinanceType = "Receivable"
)

// Finance is one AP/AR record. Records sharing an invoice form the payment
// history of that invoice: the nth=0 row carries the bill, later rows carry
// partial payments. Outstanding balance is always computed by summation,
// never stored.
type Finance struct {
	FinanceID string `json:"financeID"` // Primary key (UUID)
	Invoice   string `json:"invoice"`
	// JournalID references the journal line posted together with this
	// record; deleting a payment unwinds exactly that line.
	JournalID   string          `json:"journalID"`
	DateIssued  time.Time       `json:"dateIssued"`
	DueDate     time.Time       `json:"dueDate"`
	Description string          `json:"description"`
	BillAmount  decimal.Decimal `json:"billAmount"`
	PayAmount   decimal.Decimal `json:"paymentAmount"`
	// Settled is true on the payment row that brought the outstanding
	// balance to zero.
	Settled bool `json:"paymentStatus"`
	// PaymentNth is the sequence number of the partial payment; 0 for the
	// originating bill.
	PaymentNth  int         `json:"paymentNth"`
	FinanceType FinanceType `json:"financeType"`
	ContactID   int64       `json:"contactID"`
	// AccountID is the AP/AR control account the invoice posts against.
	AccountID string `json:"accountID"`
	UserID    string `json:"userID"`
	AuditFields
}

// Outstanding sums bill minus payments over one invoice's records.
func Outstanding(records []Finance) decimal.Decimal {
	total := decimal.Zero
	for _, f := range records {
		total = total.Add(f.BillAmount).Sub(f.PayAmount)
	}
	return total
}
