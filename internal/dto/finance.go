package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokotrack/backoffice/internal/core/domain"
	portsrepo "github.com/tokotrack/backoffice/internal/core/ports/repositories"
)

// CreateFinanceRequest creates a payable or receivable invoice together with
// its journal line.
type CreateFinanceRequest struct {
	FinanceType     domain.FinanceType `json:"type" binding:"required,oneof=Payable Receivable"`
	ContactID       int64              `json:"contactID" binding:"required"`
	DebitAccountID  string             `json:"debitAccountID" binding:"required"`
	CreditAccountID string             `json:"creditAccountID" binding:"required"`
	Amount          decimal.Decimal    `json:"amount" binding:"required"`
	Description     string             `json:"description" binding:"required,max=160"`
	DateIssued      *time.Time         `json:"dateIssued"`
}

// PayInvoiceRequest records a (possibly partial) payment against an invoice.
type PayInvoiceRequest struct {
	Invoice    string          `json:"invoice" binding:"required"`
	ContactID  int64           `json:"contactID" binding:"required"`
	AccountID  string          `json:"accountID" binding:"required"` // Cash/bank account the payment moves through
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Notes      string          `json:"notes" binding:"required"`
	DateIssued *time.Time      `json:"dateIssued"`
}

// FinanceResponse defines the data returned for an AP/AR record.
type FinanceResponse struct {
	FinanceID   string             `json:"financeID"`
	Invoice     string             `json:"invoice"`
	DateIssued  time.Time          `json:"dateIssued"`
	DueDate     time.Time          `json:"dueDate"`
	Description string             `json:"description"`
	BillAmount  decimal.Decimal    `json:"billAmount"`
	PayAmount   decimal.Decimal    `json:"paymentAmount"`
	Settled     bool               `json:"paymentStatus"`
	PaymentNth  int                `json:"paymentNth"`
	FinanceType domain.FinanceType `json:"financeType"`
	ContactID   int64              `json:"contactID"`
	AccountID   string             `json:"accountID"`
}

// FinanceSummaryResponse aggregates one contact's AP/AR position.
type FinanceSummaryResponse struct {
	ContactID   int64              `json:"contactID"`
	FinanceType domain.FinanceType `json:"financeType"`
	Billed      decimal.Decimal    `json:"billed"`
	Paid        decimal.Decimal    `json:"paid"`
	Outstanding decimal.Decimal    `json:"outstanding"`
}

// ListFinancesResponse is the contact-grouped AP/AR listing.
type ListFinancesResponse struct {
	Finances  []FinanceResponse        `json:"finances"`
	ByContact []FinanceSummaryResponse `json:"byContact"`
}

// ToFinanceResponse converts a domain.Finance.
func ToFinanceResponse(f *domain.Finance) FinanceResponse {
	return FinanceResponse{
		FinanceID:   f.FinanceID,
		Invoice:     f.Invoice,
		DateIssued:  f.DateIssued,
		DueDate:     f.DueDate,
		Description: f.Description,
		BillAmount:  f.BillAmount,
		PayAmount:   f.PayAmount,
		Settled:     f.Settled,
		PaymentNth:  f.PaymentNth,
		FinanceType: f.FinanceType,
		ContactID:   f.ContactID,
		AccountID:   f.AccountID,
	}
}

// ToFinanceResponses converts a slice of domain finance records.
func ToFinanceResponses(records []domain.Finance) []FinanceResponse {
	res := make([]FinanceResponse, len(records))
	for i := range records {
		res[i] = ToFinanceResponse(&records[i])
	}
	return res
}

// ToFinanceSummaryResponses converts repository summaries.
func ToFinanceSummaryResponses(summaries []portsrepo.FinanceSummary) []FinanceSummaryResponse {
	res := make([]FinanceSummaryResponse, len(summaries))
	for i, s := range summaries {
		res[i] = FinanceSummaryResponse{
			ContactID:   s.ContactID,
			FinanceType: s.FinanceType,
			Billed:      s.Billed,
			Paid:        s.Paid,
			Outstanding: s.Outstanding,
		}
	}
	return res
}
