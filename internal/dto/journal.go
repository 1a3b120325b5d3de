package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokotrack/backoffice/internal/core/domain"
)

// CreateTransferRequest posts a money transfer or cash withdrawal.
type CreateTransferRequest struct {
	DebitAccountID  string          `json:"debitAccountID" binding:"required"`
	CreditAccountID string          `json:"creditAccountID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	FeeAmount       decimal.Decimal `json:"feeAmount"`
	TrxType         domain.TrxType  `json:"trxType" binding:"required"`
	CustomerName    string          `json:"customerName" binding:"required,min=3,max=255"`
	Description     string          `json:"description" binding:"max=255"`
	DateIssued      *time.Time      `json:"dateIssued"`
}

// CreateMutationRequest posts a cash mutation between accounts, with an
// optional admin fee booked as a companion expense line.
type CreateMutationRequest struct {
	DebitAccountID  string          `json:"debitAccountID" binding:"required"`
	CreditAccountID string          `json:"creditAccountID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	AdminFee        decimal.Decimal `json:"adminFee"`
	Description     string          `json:"description" binding:"max=255"`
	DateIssued      *time.Time      `json:"dateIssued"`
}

// VoucherSaleRequest posts a voucher sale: the journal carries the cost, the
// fee carries the margin, and a Sales inventory transaction is recorded.
type VoucherSaleRequest struct {
	ProductID   int64           `json:"productID" binding:"required"`
	WarehouseID int64           `json:"warehouseID" binding:"required"`
	Quantity    decimal.Decimal `json:"qty" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description string          `json:"description" binding:"max=255"`
	DateIssued  *time.Time      `json:"dateIssued"`
}

// DepositSaleRequest posts a deposit (airtime) sale by value.
type DepositSaleRequest struct {
	WarehouseID int64           `json:"warehouseID" binding:"required"`
	Cost        decimal.Decimal `json:"cost" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description string          `json:"description" binding:"max=255"`
	DateIssued  *time.Time      `json:"dateIssued"`
}

// SalesByValueRequest posts a goods sale by value: a revenue line, a COGS
// line, and an optional customer-fee line, all under one invoice.
type SalesByValueRequest struct {
	PaymentAccountID string          `json:"paymentAccountID" binding:"required"`
	Sale             decimal.Decimal `json:"sale" binding:"required"`
	Cost             decimal.Decimal `json:"cost" binding:"required"`
	CustomerFee      decimal.Decimal `json:"customerFee"`
	Description      string          `json:"description" binding:"max=255"`
	DateIssued       *time.Time      `json:"dateIssued"`
}

// CartItem is one product position in a checkout.
type CartItem struct {
	ProductID int64           `json:"productID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
}

// CheckoutCartRequest posts a multi-item sale or purchase.
type CheckoutCartRequest struct {
	Items       []CartItem              `json:"cart" binding:"required,min=1,dive"`
	TrxType     domain.InventoryTrxType `json:"transactionType" binding:"required,oneof=Sales Purchase"`
	WarehouseID int64                   `json:"warehouseID" binding:"required"`
	ContactID   *int64                  `json:"contactID"`
	DateIssued  *time.Time              `json:"dateIssued"`
}

// StockAdjustmentRequest posts a signed stock correction with its valuation
// journal line.
type StockAdjustmentRequest struct {
	ProductID   int64           `json:"productID" binding:"required"`
	WarehouseID int64           `json:"warehouseID" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Description string          `json:"description" binding:"max=255"`
	DateIssued  *time.Time      `json:"dateIssued"`
}

// UpdateJournalRequest corrects one journal line's amount and fee.
type UpdateJournalRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	FeeAmount   decimal.Decimal `json:"feeAmount"`
	Description string          `json:"description" binding:"max=255"`
}

// JournalResponse defines the data returned for a journal line.
type JournalResponse struct {
	JournalID       string          `json:"journalID"`
	Invoice         string          `json:"invoice"`
	DateIssued      time.Time       `json:"dateIssued"`
	DebitAccountID  string          `json:"debitAccountID"`
	CreditAccountID string          `json:"creditAccountID"`
	Amount          decimal.Decimal `json:"amount"`
	FeeAmount       decimal.Decimal `json:"feeAmount"`
	TrxType         domain.TrxType  `json:"trxType"`
	Description     string          `json:"description"`
	WarehouseID     int64           `json:"warehouseID"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// PostingResponse reports the grouping key a business event was posted under.
type PostingResponse struct {
	Invoice string            `json:"invoice"`
	Lines   []JournalResponse `json:"lines"`
}

// ToJournalResponse converts a domain.JournalLine.
func ToJournalResponse(line *domain.JournalLine) JournalResponse {
	return JournalResponse{
		JournalID:       line.JournalID,
		Invoice:         line.Invoice,
		DateIssued:      line.DateIssued,
		DebitAccountID:  line.DebitAccountID,
		CreditAccountID: line.CreditAccountID,
		Amount:          line.Amount,
		FeeAmount:       line.FeeAmount,
		TrxType:         line.TrxType,
		Description:     line.Description,
		WarehouseID:     line.WarehouseID,
		CreatedAt:       line.CreatedAt,
	}
}

// ToJournalResponses converts a slice of domain journal lines.
func ToJournalResponses(lines []domain.JournalLine) []JournalResponse {
	res := make([]JournalResponse, len(lines))
	for i := range lines {
		res[i] = ToJournalResponse(&lines[i])
	}
	return res
}
