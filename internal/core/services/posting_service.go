package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tokotrack/backoffice/internal/apperrors"
	"github.com/tokotrack/backoffice/internal/core/domain"
	portsrepo "github.com/tokotrack/backoffice/internal/core/ports/repositories"
	portssvc "github.com/tokotrack/backoffice/internal/core/ports/services"
	"github.com/tokotrack/backoffice/internal/dto"
	"github.com/tokotrack/backoffice/internal/middleware"
	"github.com/tokotrack/backoffice/internal/platform/metrics"
	"github.com/tokotrack/backoffice/internal/utils/accounting"
)

// Seeded system accounts the posting service books against by name.
const (
	adminFeeAccountName        = "Bank Admin Charges"
	stockAdjustmentAccountName = "Stock Adjustments"
)

// How long after issue an AP/AR invoice falls due.
const financeDueDays = 30

// PostingService turns business events into posting events: journal lines
// plus finance and inventory side records staged together and committed in
// one transaction by the journal repository. Validation happens before any
// write; the snapshot refresh runs after commit and never unwinds it.
type PostingService struct {
	accountRepo   portsrepo.AccountRepositoryFacade
	journalRepo   portsrepo.JournalRepositoryFacade
	financeRepo   portsrepo.FinanceRepositoryFacade
	inventoryRepo portsrepo.InventoryRepositoryFacade
	ledgerSvc     portssvc.LedgerSvcFacade
	clock         domain.Clock
}

// NewPostingService creates a PostingService.
func NewPostingService(
	accountRepo portsrepo.AccountRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	financeRepo portsrepo.FinanceRepositoryFacade,
	inventoryRepo portsrepo.InventoryRepositoryFacade,
	ledgerSvc portssvc.LedgerSvcFacade,
	clock domain.Clock,
) *PostingService {
	return &PostingService{
		accountRepo:   accountRepo,
		journalRepo:   journalRepo,
		financeRepo:   financeRepo,
		inventoryRepo: inventoryRepo,
		ledgerSvc:     ledgerSvc,
		clock:         clock,
	}
}

// issueDate resolves an optional request date, defaulting to now.
func (s *PostingService) issueDate(requested *time.Time) time.Time {
	if requested != nil {
		return requested.UTC()
	}
	return s.clock.Now()
}

func (s *PostingService) audit(userID string) domain.AuditFields {
	now := s.clock.Now()
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

// accountByKind resolves the account of one category kind to post against,
// preferring one associated with the given warehouse.
func (s *PostingService) accountByKind(ctx context.Context, kind domain.CategoryKind, warehouseID int64) (*domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByKinds(ctx, kind)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: no account of kind %s configured", apperrors.ErrValidation, kind)
	}
	for i := range accounts {
		if accounts[i].WarehouseID != nil && *accounts[i].WarehouseID == warehouseID {
			return &accounts[i], nil
		}
	}
	for i := range accounts {
		if accounts[i].WarehouseID == nil {
			return &accounts[i], nil
		}
	}
	return &accounts[0], nil
}

// warehouseCashAccount resolves the warehouse's own cash account.
func (s *PostingService) warehouseCashAccount(ctx context.Context, warehouseID int64) (*domain.Warehouse, *domain.Account, error) {
	warehouse, err := s.inventoryRepo.FindWarehouseByID(ctx, warehouseID)
	if err != nil {
		return nil, nil, err
	}
	cash, err := s.accountRepo.FindAccountByID(ctx, warehouse.CashAccountID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve warehouse cash account: %w", err)
	}
	return warehouse, cash, nil
}

// warehouseOf picks the warehouse association carried by either account.
func warehouseOf(accounts ...*domain.Account) int64 {
	for _, acc := range accounts {
		if acc != nil && acc.WarehouseID != nil {
			return *acc.WarehouseID
		}
	}
	return 0
}

// post validates the staged lines, commits the event atomically, refreshes
// snapshots for back-dated events and returns the posted lines.
func (s *PostingService) post(ctx context.Context, event domain.PostingEvent, trxType domain.TrxType) (*dto.PostingResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := accounting.ValidateLineAmounts(event.Lines); err != nil {
		metrics.PostingFailures.WithLabelValues(string(trxType)).Inc()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	invoice, err := s.journalRepo.PostEvent(ctx, event)
	if err != nil {
		metrics.PostingFailures.WithLabelValues(string(trxType)).Inc()
		logger.Error("Failed to post event", slog.String("error", err.Error()), slog.String("trx_type", string(trxType)))
		return nil, err
	}
	metrics.PostingsTotal.WithLabelValues(string(trxType)).Inc()

	// The posting is committed; a failed refresh only leaves stale snapshots
	// behind, and those heal lazily on the next balance read.
	if earliest, ok := event.EarliestIssueDate(); ok {
		if err := s.ledgerSvc.RefreshFrom(ctx, earliest); err != nil {
			logger.Error("Snapshot refresh failed after posting",
				slog.String("error", err.Error()), slog.String("invoice", invoice))
		}
	}

	lines, err := s.journalRepo.FindJournalsByInvoice(ctx, invoice)
	if err != nil {
		logger.Error("Failed to read back posted lines", slog.String("error", err.Error()), slog.String("invoice", invoice))
		lines = nil
	}
	logger.Info("Posted event", slog.String("invoice", invoice), slog.String("trx_type", string(trxType)))
	return &dto.PostingResponse{Invoice: invoice, Lines: dto.ToJournalResponses(lines)}, nil
}

// CreateTransfer posts a money transfer or cash withdrawal on behalf of a
// walk-in customer.
func (s *PostingService) CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, userID string) (*dto.PostingResponse, error) {
	if req.TrxType != domain.TrxTransfer && req.TrxType != domain.TrxCashWithdrawal {
		return nil, fmt.Errorf("%w: transaction type %q is not a transfer", apperrors.ErrValidation, req.TrxType)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	debit, err := s.accountRepo.FindAccountByID(ctx, req.DebitAccountID)
	if err != nil {
		return nil, err
	}
	credit, err := s.accountRepo.FindAccountByID(ctx, req.CreditAccountID)
	if err != nil {
		return nil, err
	}

	issued := s.issueDate(req.DateIssued)
	description := req.CustomerName
	if req.Description != "" {
		description = req.CustomerName + " | " + req.Description
	}

	event := domain.PostingEvent{
		InvoiceSpec: &domain.InvoiceSpec{Prefix: domain.InvoicePrefixJournal, UserID: userID, Date: issued},
		Lines: []domain.JournalLine{{
			JournalID:       uuid.NewString(),
			DateIssued:      issued,
			DebitAccountID:  debit.AccountID,
			CreditAccountID: credit.AccountID,
			Amount:          req.Amount,
			FeeAmount:       req.FeeAmount,
			TrxType:         req.TrxType,
			Description:     description,
			WarehouseID:     warehouseOf(debit, credit),
			UserID:          userID,
			AuditFields:     s.audit(userID),
		}},
	}
	return s.post(ctx, event, req.TrxType)
}

// CreateMutation posts a cash mutation between two accounts, with an optional
// admin fee booked as a companion expense line under the same invoice.
func (s *PostingService) CreateMutation(ctx context.Context, req dto.CreateMutationRequest, userID string) (*dto.PostingResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	debit, err := s.accountRepo.FindAccountByID(ctx, req.DebitAccountID)
	if err != nil {
		return nil, err
	}
	credit, err := s.accountRepo.FindAccountByID(ctx, req.CreditAccountID)
	if err != nil {
		return nil, err
	}

	issued := s.issueDate(req.DateIssued)
	warehouseID := warehouseOf(debit, credit)
	lines := []domain.JournalLine{{
		JournalID:       uuid.NewString(),
		DateIssued:      issued,
		DebitAccountID:  debit.AccountID,
		CreditAccountID: credit.AccountID,
		Amount:          req.Amount,
		TrxType:         domain.TrxMutation,
		Description:     req.Description,
		WarehouseID:     warehouseID,
		UserID:          userID,
		AuditFields:     s.audit(userID),
	}}

	if req.AdminFee.IsPositive() {
		feeAccount, err := s.accountRepo.FindAccountByName(ctx, adminFeeAccountName)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: admin fee account %q is not configured", apperrors.ErrValidation, adminFeeAccountName)
			}
			return nil, err
		}
		lines = append(lines, domain.JournalLine{
			JournalID:       uuid.NewString(),
			DateIssued:      issued,
			DebitAccountID:  feeAccount.AccountID,
			CreditAccountID: credit.AccountID,
			Amount:          req.AdminFee,
			TrxType:         domain.TrxExpense,
			Description:     "Admin fee: " + req.Description,
			WarehouseID:     warehouseID,
			UserID:          userID,
			AuditFields:     s.audit(userID),
		})
	}

	event := domain.PostingEvent{
		InvoiceSpec: &domain.InvoiceSpec{Prefix: domain.InvoicePrefixJournal, UserID: userID, Date: issued},
		Lines:       lines,
	}
	return s.post(ctx, event, domain.TrxMutation)
}

// CreateVoucherSale posts a voucher sale: the journal carries the cost leg
// (cash in, inventory out at weighted-average cost), the fee carries the
// margin, and a negative-quantity inventory transaction moves the stock.
func (s *PostingService) CreateVoucherSale(ctx context.Context, req dto.VoucherSaleRequest, userID string) (*dto.PostingResponse, error) {
	if !req.Quantity.IsPositive() || !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: quantity and price must be positive", apperrors.ErrValidation)
	}

	product, err := s.inventoryRepo.FindProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	_, cash, err := s.warehouseCashAccount(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	inventory, err := s.accountByKind(ctx, domain.KindInventory, req.WarehouseID)
	if err != nil {
		return nil, err
	}

	issued := s.issueDate(req.DateIssued)
	cost := product.Cost.Mul(req.Quantity)
	sale := req.Price.Mul(req.Quantity)
	margin := sale.Sub(cost)
	if margin.IsNegative() {
		return nil, fmt.Errorf("%w: sale price below weighted-average cost", apperrors.ErrValidation)
	}

	event := domain.PostingEvent{
		InvoiceSpec: &domain.InvoiceSpec{Prefix: domain.InvoicePrefixJournal, UserID: userID, Date: issued},
		Lines: []domain.JournalLine{{
			JournalID:       uuid.NewString(),
			DateIssued:      issued,
			DebitAccountID:  cash.AccountID,
			CreditAccountID: inventory.AccountID,
			Amount:          cost,
			FeeAmount:       margin,
			TrxType:         domain.TrxVoucher,
			Description:     req.Description,
			WarehouseID:     req.WarehouseID,
			UserID:          userID,
			AuditFields:     s.audit(userID),
		}},
		InventoryTxns: []domain.InventoryTransaction{{
			DateIssued:  issued,
			ProductID:   product.ProductID,
			Quantity:    req.Quantity.Neg(),
			Price:       req.Price,
			Cost:        product.Cost,
			TrxType:     domain.InventorySale,
			WarehouseID: req.WarehouseID,
			UserID:      userID,
			AuditFields: s.audit(userID),
		}},
		ProductSoldBumps: map[int64]decimal.Decimal{product.ProductID: req.Quantity},
	}
	return s.post(ctx, event, domain.TrxVoucher)
}

// CreateDepositSale posts an airtime deposit sale by value: cash in at cost,
// margin on the fee.
func (s *PostingService) CreateDepositSale(ctx context.Context, req dto.DepositSaleRequest, userID string) (*dto.PostingResponse, error) {
	if !req.Cost.IsPositive() || !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: cost and price must be positive", apperrors.ErrValidation)
	}
	if req.Price.LessThan(req.Cost) {
		return nil, fmt.Errorf("%w: sale price below cost", apperrors.ErrValidation)
	}

	_, cash, err := s.warehouseCashAccount(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	deposit, err := s.accountByKind(ctx, domain.KindInventory, req.WarehouseID)
	if err != nil {
		return nil, err
	}

	issued := s.issueDate(req.DateIssued)
	event := domain.PostingEvent{
		InvoiceSpec: &domain.InvoiceSpec{Prefix: domain.InvoicePrefixJournal, UserID: userID, Date: issued},
		Lines: []domain.JournalLine{{
			JournalID:       uuid.NewString(),
			DateIssued:      issued,
			DebitAccountID:  cash.AccountID,
			CreditAccountID: deposit.AccountID,
			Amount:          req.Cost,
			FeeAmount:       req.Price.Sub(req.Cost),
			TrxType:         domain.TrxDeposit,
			Description:     req.Description,
			WarehouseID:     req.WarehouseID,
			UserID:          userID,
			AuditFields:     s.audit(userID),
		}},
	}
	return s.post(ctx, event, domain.TrxDeposit)
}

// CreateSalesByValue posts an accessories sale by value: a revenue line for
// the sale amount and a cost line moving inventory into cost of goods.
func (s *PostingService) CreateSalesByValue(ctx context.Context, req dto.SalesByValueRequest, userID string) (*dto.PostingResponse, error) {
	if !req.Sale.IsPositive() {
		return nil, fmt.Errorf("%w: sale amount must be positive", apperrors.ErrValidation)
	}
	if req.Cost.IsNegative() || req.Cost.GreaterThan(req.Sale) {
		return nil, fmt.Errorf("%w: cost must be between zero and the sale amount", apperrors.ErrValidation)
	}

	payment, err := s.accountRepo.FindAccountByID(ctx, req.PaymentAccountID)
	if err != nil {
		return nil, err
	}
	warehouseID := warehouseOf(payment)
	revenue, err := s.accountByKind(ctx, domain.KindRevenue, warehouseID)
	if err != nil {
		return nil, err
	}

	issued := s.issueDate(req.DateIssued)
	lines := []domain.JournalLine{{
		JournalID:       uuid.NewString(),
		DateIssued:      issued,
		DebitAccountID:  payment.AccountID,
		CreditAccountID: revenue.AccountID,
		Amount:          req.Sale,
		FeeAmount:       req.CustomerFee,
		TrxType:         domain.TrxAccessories,
		Description:     req.Description,
		WarehouseID:     warehouseID,
		UserID:          userID,
		AuditFields:     s.audit(userID),
	}}

	if req.Cost.IsPositive() {
		cogs, err := s.accountByKind(ctx, domain.KindCost, warehouseID)
		if err != nil {
			return nil, err
		}
		inventory, err := s.accountByKind(ctx, domain.KindInventory, warehouseID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.JournalLine{
			JournalID:       uuid.NewString(),
			DateIssued:      issued,
			DebitAccountID:  cogs.AccountID,
			CreditAccountID: inventory.AccountID,
			Amount:          req.Cost,
			TrxType:         domain.TrxAccessories,
			Description:     "Cost of goods: " + req.Description,
			WarehouseID:     warehouseID,
			UserID:          userID,
			AuditFields:     s.audit(userID),
		})
	}

	event := domain.PostingEvent{
		InvoiceSpec: &domain.InvoiceSpec{Prefix: domain.InvoicePrefixSales, UserID: userID, Date: issued},
		Lines:       lines,
	}
	return s.post(ctx, event, domain.TrxAccessories)
}

// CheckoutCart posts a multi-item goods sale or purchase as one invoice:
// aggregated journal lines plus one inventory transaction per item. Purchases
// feed the weighted-average cost recomputation inside the same transaction.
func (s *PostingService) CheckoutCart(ctx context.Context, req dto.CheckoutCartRequest, userID string) (*dto.PostingResponse, error) {
	_, cash, err := s.warehouseCashAccount(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	inventory, err := s.accountByKind(ctx, domain.KindInventory, req.WarehouseID)
	if err != nil {
		return nil, err
	}

	issued := s.issueDate(req.DateIssued)
	contactID := int64(0)
	if req.ContactID != nil {
		if _, err := s.inventoryRepo.FindContactByID(ctx, *req.ContactID); err != nil {
			return nil, err
		}
		contactID = *req.ContactID
	}

	total := decimal.Zero
	totalCost := decimal.Zero
	txns := make([]domain.InventoryTransaction, 0, len(req.Items))
	soldBumps := make(map[int64]decimal.Decimal)
	for _, item := range req.Items {
		if !item.Quantity.IsPositive() || item.Price.IsNegative() {
			return nil, fmt.Errorf("%w: item quantity must be positive and price non-negative", apperrors.ErrValidation)
		}
		product, err := s.inventoryRepo.FindProductByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}

		lineValue := item.Price.Mul(item.Quantity)
		total = total.Add(lineValue)

		quantity := item.Quantity
		cost := product.Cost
		if req.TrxType == domain.InventorySale {
			quantity = quantity.Neg()
			totalCost = totalCost.Add(product.Cost.Mul(item.Quantity))
			soldBumps[product.ProductID] = soldBumps[product.ProductID].Add(item.Quantity)
		} else {
			// Purchases enter at the quoted price; the listed sale price
			// stays whatever it was.
			cost = item.Price
		}
		txns = append(txns, domain.InventoryTransaction{
			DateIssued:  issued,
			ProductID:   product.ProductID,
			Quantity:    quantity,
			Price:       item.Price,
			Cost:        cost,
			TrxType:     req.TrxType,
			ContactID:   contactID,
			WarehouseID: req.WarehouseID,
			UserID:      userID,
			AuditFields: s.audit(userID),
		})
	}

	var lines []domain.JournalLine
	var spec domain.InvoiceSpec
	var trxType domain.TrxType
	switch req.TrxType {
	case domain.InventorySale:
		trxType = domain.TrxGoodsSale
		spec = domain.InvoiceSpec{Prefix: domain.InvoicePrefixSales, UserID: userID, Date: issued}
		revenue, err := s.accountByKind(ctx, domain.KindRevenue, req.WarehouseID)
		if err != nil {
			return nil, err
		}
		cogs, err := s.accountByKind(ctx, domain.KindCost, req.WarehouseID)
		if err != nil {
			return nil, err
		}
		lines = []domain.JournalLine{
			{
				JournalID:       uuid.NewString(),
				DateIssued:      issued,
				DebitAccountID:  cash.AccountID,
				CreditAccountID: revenue.AccountID,
				Amount:          total,
				FeeAmount:       total.Sub(totalCost),
				TrxType:         trxType,
				Description:     fmt.Sprintf("Goods sale, %d item(s)", len(req.Items)),
				WarehouseID:     req.WarehouseID,
				UserID:          userID,
				AuditFields:     s.audit(userID),
			},
			{
				JournalID:       uuid.NewString(),
				DateIssued:      issued,
				DebitAccountID:  cogs.AccountID,
				CreditAccountID: inventory.AccountID,
				Amount:          totalCost,
				TrxType:         trxType,
				Description:     fmt.Sprintf("Cost of goods, %d item(s)", len(req.Items)),
				WarehouseID:     req.WarehouseID,
				UserID:          userID,
				AuditFields:     s.audit(userID),
			},
		}
	case domain.InventoryPurchase:
		trxType = domain.TrxGeneralJournal
		spec = domain.InvoiceSpec{Prefix: domain.InvoicePrefixPurchase, UserID: userID, Date: issued}
		lines = []domain.JournalLine{{
			JournalID:       uuid.NewString(),
			DateIssued:      issued,
			DebitAccountID:  inventory.AccountID,
			CreditAccountID: cash.AccountID,
			Amount:          total,
			TrxType:         trxType,
			Description:     fmt.Sprintf("Goods purchase, %d item(s)", len(req.Items)),
			WarehouseID:     req.WarehouseID,
			UserID:          userID,
			AuditFields:     s.audit(userID),
		}}
	default:
		return nil, fmt.Errorf("%w: transaction type %q is not checkoutable", apperrors.ErrValidation, req.TrxType)
	}

	event := domain.PostingEvent{
		InvoiceSpec:      &spec,
		Lines:            lines,
		InventoryTxns:    txns,
		ProductSoldBumps: soldBumps,
	}
	return s.post(ctx, event, trxType)
}

// CreateStockAdjustment posts a signed stock correction valued at the
// product's weighted-average cost, with the offsetting journal line against
// the stock adjustment account.
func (s *PostingService) CreateStockAdjustment(ctx context.Context, req dto.StockAdjustmentRequest, userID string) (*dto.PostingResponse, error) {
	if req.Quantity.IsZero() {
		return nil, fmt.Errorf("%w: adjustment quantity must not be zero", apperrors.ErrValidation)
	}

	product, err := s.inventoryRepo.FindProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if _, err := s.inventoryRepo.FindWarehouseByID(ctx, req.WarehouseID); err != nil {
		return nil, err
	}
	inventory, err := s.accountByKind(ctx, domain.KindInventory, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	adjustment, err := s.accountRepo.FindAccountByName(ctx, stockAdjustmentAccountName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: stock adjustment account %q is not configured", apperrors.ErrValidation, stockAdjustmentAccountName)
		}
		return nil, err
	}

	issued := s.issueDate(req.DateIssued)
	value := product.Cost.Mul(req.Quantity.Abs())

	// Gains debit inventory, losses credit it.
	debitID, creditID := inventory.AccountID, adjustment.AccountID
	if req.Quantity.IsNegative() {
		debitID, creditID = adjustment.AccountID, inventory.AccountID
	}

	event := domain.PostingEvent{
		InvoiceSpec: &domain.InvoiceSpec{Prefix: domain.InvoicePrefixAdjustment, UserID: userID, Date: issued},
		Lines: []domain.JournalLine{{
			JournalID:       uuid.NewString(),
			DateIssued:      issued,
			DebitAccountID:  debitID,
			CreditAccountID: creditID,
			Amount:          value,
			TrxType:         domain.TrxStockAdjustment,
			Description:     req.Description,
			WarehouseID:     req.WarehouseID,
			UserID:          userID,
			AuditFields:     s.audit(userID),
		}},
		InventoryTxns: []domain.InventoryTransaction{{
			DateIssued:  issued,
			ProductID:   product.ProductID,
			Quantity:    req.Quantity,
			Price:       product.Price,
			Cost:        product.Cost,
			TrxType:     domain.InventoryAdjustment,
			WarehouseID: req.WarehouseID,
			UserID:      userID,
			AuditFields: s.audit(userID),
		}},
	}
	return s.post(ctx, event, domain.TrxStockAdjustment)
}

// CreateFinanceInvoice opens a payable or receivable: the bill row (ordinal
// zero) plus its journal line under a contact-scoped invoice key.
func (s *PostingService) CreateFinanceInvoice(ctx context.Context, req dto.CreateFinanceRequest, userID string) (*dto.PostingResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	if _, err := s.inventoryRepo.FindContactByID(ctx, req.ContactID); err != nil {
		return nil, err
	}
	debit, err := s.accountRepo.FindAccountByID(ctx, req.DebitAccountID)
	if err != nil {
		return nil, err
	}
	credit, err := s.accountRepo.FindAccountByID(ctx, req.CreditAccountID)
	if err != nil {
		return nil, err
	}

	prefix := domain.InvoicePrefixPayable
	controlAccountID := req.CreditAccountID
	if req.FinanceType == domain.Receivable {
		prefix = domain.InvoicePrefixReceivable
		controlAccountID = req.DebitAccountID
	}

	issued := s.issueDate(req.DateIssued)
	journalID := uuid.NewString()
	event := domain.PostingEvent{
		InvoiceSpec: &domain.InvoiceSpec{Prefix: prefix, UserID: userID, Date: issued, ContactID: &req.ContactID},
		Lines: []domain.JournalLine{{
			JournalID:       journalID,
			DateIssued:      issued,
			DebitAccountID:  debit.AccountID,
			CreditAccountID: credit.AccountID,
			Amount:          req.Amount,
			TrxType:         domain.TrxGeneralJournal,
			Description:     req.Description,
			WarehouseID:     warehouseOf(debit, credit),
			UserID:          userID,
			AuditFields:     s.audit(userID),
		}},
		Finances: []domain.Finance{{
			FinanceID:   uuid.NewString(),
			JournalID:   journalID,
			DateIssued:  issued,
			DueDate:     issued.AddDate(0, 0, financeDueDays),
			Description: req.Description,
			BillAmount:  req.Amount,
			PayAmount:   decimal.Zero,
			Settled:     false,
			PaymentNth:  0,
			FinanceType: req.FinanceType,
			ContactID:   req.ContactID,
			AccountID:   controlAccountID,
			UserID:      userID,
			AuditFields: s.audit(userID),
		}},
	}
	return s.post(ctx, event, domain.TrxGeneralJournal)
}

// PayFinanceInvoice records a partial or final payment against an open
// invoice. The overpayment guard runs before any write: a payment exceeding
// the outstanding balance leaves the database untouched.
func (s *PostingService) PayFinanceInvoice(ctx context.Context, req dto.PayInvoiceRequest, userID string) (*dto.PostingResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	history, err := s.financeRepo.FindFinancesByInvoice(ctx, req.Invoice)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, req.Invoice)
	}
	bill := history[0]

	outstanding := domain.Outstanding(history)
	if req.Amount.GreaterThan(outstanding) {
		metrics.OverpaymentRejections.Inc()
		logger.Warn("Rejected overpayment",
			slog.String("invoice", req.Invoice),
			slog.String("outstanding", outstanding.String()),
			slog.String("amount", req.Amount.String()))
		return nil, fmt.Errorf("%w: outstanding %s, attempted %s", apperrors.ErrOverpayment, outstanding.String(), req.Amount.String())
	}

	nth := 0
	for _, f := range history {
		if f.PaymentNth > nth {
			nth = f.PaymentNth
		}
	}
	nth++
	settled := outstanding.Sub(req.Amount).IsZero()

	cash, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	// Paying a payable debits the control account; collecting a receivable
	// credits it.
	debitID, creditID := bill.AccountID, cash.AccountID
	if bill.FinanceType == domain.Receivable {
		debitID, creditID = cash.AccountID, bill.AccountID
	}

	issued := s.issueDate(req.DateIssued)
	journalID := uuid.NewString()
	event := domain.PostingEvent{
		Invoice: req.Invoice,
		Lines: []domain.JournalLine{{
			JournalID:       journalID,
			DateIssued:      issued,
			DebitAccountID:  debitID,
			CreditAccountID: creditID,
			Amount:          req.Amount,
			TrxType:         domain.TrxGeneralJournal,
			Description:     req.Notes,
			WarehouseID:     warehouseOf(cash),
			UserID:          userID,
			AuditFields:     s.audit(userID),
		}},
		Finances: []domain.Finance{{
			FinanceID:   uuid.NewString(),
			JournalID:   journalID,
			DateIssued:  issued,
			DueDate:     bill.DueDate,
			Description: req.Notes,
			BillAmount:  decimal.Zero,
			PayAmount:   req.Amount,
			Settled:     settled,
			PaymentNth:  nth,
			FinanceType: bill.FinanceType,
			ContactID:   bill.ContactID,
			AccountID:   bill.AccountID,
			UserID:      userID,
			AuditFields: s.audit(userID),
		}},
	}
	return s.post(ctx, event, domain.TrxGeneralJournal)
}

// UpdateJournal corrects one line's amount and fee, then refreshes snapshots
// for its issue date.
func (s *PostingService) UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.JournalLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}

	line, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.UpdateJournalAmounts(ctx, journalID, req.Amount, req.FeeAmount, req.Description, userID, s.clock.Now()); err != nil {
		logger.Error("Failed to update journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, err
	}

	if err := s.ledgerSvc.RefreshFrom(ctx, line.DateIssued); err != nil {
		logger.Error("Snapshot refresh failed after journal update",
			slog.String("error", err.Error()), slog.String("journal_id", journalID))
	}

	return s.journalRepo.FindJournalByID(ctx, journalID)
}

// DeleteJournalInvoice removes every journal line sharing the given line's
// invoice, together with the invoice's inventory transactions, then refreshes
// snapshots. Invoices with finance records attached must be unwound through
// the finance module instead.
func (s *PostingService) DeleteJournalInvoice(ctx context.Context, journalID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	line, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return err
	}

	history, err := s.financeRepo.FindFinancesByInvoice(ctx, line.Invoice)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if len(history) > 0 {
		return fmt.Errorf("%w: invoice %s has finance records", apperrors.ErrInUse, line.Invoice)
	}

	if err := s.journalRepo.DeleteJournalsByInvoice(ctx, line.Invoice); err != nil {
		logger.Error("Failed to delete journal invoice", slog.String("error", err.Error()), slog.String("invoice", line.Invoice))
		return err
	}

	if err := s.ledgerSvc.RefreshFrom(ctx, line.DateIssued); err != nil {
		logger.Error("Snapshot refresh failed after invoice deletion",
			slog.String("error", err.Error()), slog.String("invoice", line.Invoice))
	}

	logger.Info("Deleted journal invoice", slog.String("invoice", line.Invoice))
	return nil
}

func (s *PostingService) GetJournalByID(ctx context.Context, journalID string) (*domain.JournalLine, error) {
	return s.journalRepo.FindJournalByID(ctx, journalID)
}

func (s *PostingService) ListJournals(ctx context.Context, start, end time.Time, warehouseID *int64) ([]domain.JournalLine, error) {
	lines, err := s.journalRepo.ListJournalsByDateRange(ctx, start, end, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	return lines, nil
}
