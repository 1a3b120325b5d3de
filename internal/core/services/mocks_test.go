package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/tokotrack/backoffice/internal/core/domain"
	portsrepo "github.com/tokotrack/backoffice/internal/core/ports/repositories"
	portssvc "github.com/tokotrack/backoffice/internal/core/ports/services"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByKinds(ctx context.Context, kinds ...domain.CategoryKind) ([]domain.Account, error) {
	args := m.Called(ctx, kinds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) HasJournalReferences(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (string, error) {
	args := m.Called(ctx, account)
	return args.String(0), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateStartingBalance(ctx context.Context, accountID string, balance decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, balance, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) FindCategoryByID(ctx context.Context, categoryID int) (*domain.AccountCategory, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountCategory), args.Error(1)
}

func (m *MockAccountRepository) ListCategories(ctx context.Context) ([]domain.AccountCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountCategory), args.Error(1)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) FindJournalsByInvoice(ctx context.Context, invoice string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, invoice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListJournalsByDateRange(ctx context.Context, start, end time.Time, warehouseID *int64) ([]domain.JournalLine, error) {
	args := m.Called(ctx, start, end, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) SumActivityThrough(ctx context.Context, cutoff time.Time) (map[string]domain.AccountActivity, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.AccountActivity), args.Error(1)
}

func (m *MockJournalRepository) SumActivityOn(ctx context.Context, date time.Time) (map[string]domain.AccountActivity, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.AccountActivity), args.Error(1)
}

func (m *MockJournalRepository) SumAccountActivity(ctx context.Context, accountID string, start, end time.Time) (domain.AccountActivity, error) {
	args := m.Called(ctx, accountID, start, end)
	return args.Get(0).(domain.AccountActivity), args.Error(1)
}

func (m *MockJournalRepository) UpdateJournalAmounts(ctx context.Context, journalID string, amount, fee decimal.Decimal, description string, userID string, now time.Time) error {
	args := m.Called(ctx, journalID, amount, fee, description, userID, now)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteJournalsByInvoice(ctx context.Context, invoice string) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockJournalRepository) PostEvent(ctx context.Context, event domain.PostingEvent) (string, error) {
	args := m.Called(ctx, event)
	return args.String(0), args.Error(1)
}

// --- Mock BalanceSnapshotRepository ---

type MockSnapshotRepository struct {
	mock.Mock
}

var _ portsrepo.BalanceSnapshotRepository = (*MockSnapshotRepository)(nil)

func (m *MockSnapshotRepository) GetSnapshot(ctx context.Context, accountID string, date time.Time) (*domain.BalanceSnapshot, error) {
	args := m.Called(ctx, accountID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) GetSnapshotsForDate(ctx context.Context, date time.Time) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockSnapshotRepository) UpsertSnapshots(ctx context.Context, snapshots []domain.BalanceSnapshot) error {
	args := m.Called(ctx, snapshots)
	return args.Error(0)
}

func (m *MockSnapshotRepository) DeleteAfter(ctx context.Context, date time.Time) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

// --- Mock FinanceRepository ---

type MockFinanceRepository struct {
	mock.Mock
}

var _ portsrepo.FinanceRepositoryFacade = (*MockFinanceRepository)(nil)

func (m *MockFinanceRepository) FindFinanceByID(ctx context.Context, financeID string) (*domain.Finance, error) {
	args := m.Called(ctx, financeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Finance), args.Error(1)
}

func (m *MockFinanceRepository) FindFinancesByInvoice(ctx context.Context, invoice string) ([]domain.Finance, error) {
	args := m.Called(ctx, invoice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Finance), args.Error(1)
}

func (m *MockFinanceRepository) ListFinancesByType(ctx context.Context, financeType domain.FinanceType, contactID *int64) ([]domain.Finance, error) {
	args := m.Called(ctx, financeType, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Finance), args.Error(1)
}

func (m *MockFinanceRepository) SummarizeByContact(ctx context.Context, financeType domain.FinanceType) ([]portsrepo.FinanceSummary, error) {
	args := m.Called(ctx, financeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.FinanceSummary), args.Error(1)
}

func (m *MockFinanceRepository) HasInventoryTransactions(ctx context.Context, invoice string) (bool, error) {
	args := m.Called(ctx, invoice)
	return args.Bool(0), args.Error(1)
}

func (m *MockFinanceRepository) DeleteFinanceWithJournals(ctx context.Context, finance domain.Finance) error {
	args := m.Called(ctx, finance)
	return args.Error(0)
}

// --- Mock InventoryRepository ---

type MockInventoryRepository struct {
	mock.Mock
}

var _ portsrepo.InventoryRepositoryFacade = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) FindProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockInventoryRepository) FindWarehouseByID(ctx context.Context, warehouseID int64) (*domain.Warehouse, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Warehouse), args.Error(1)
}

func (m *MockInventoryRepository) FindContactByID(ctx context.Context, contactID int64) (*domain.Contact, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockInventoryRepository) ListWarehouseStock(ctx context.Context, warehouseID int64) ([]domain.WarehouseStock, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WarehouseStock), args.Error(1)
}

func (m *MockInventoryRepository) ListTransactionsByProduct(ctx context.Context, productID int64, start, end time.Time) ([]domain.InventoryTransaction, error) {
	args := m.Called(ctx, productID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryTransaction), args.Error(1)
}

func (m *MockInventoryRepository) ListWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Warehouse), args.Error(1)
}

// --- Mock LedgerService ---

type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) RecomputeAsOf(ctx context.Context, cutoff time.Time) error {
	args := m.Called(ctx, cutoff)
	return args.Error(0)
}

func (m *MockLedgerService) EnsureSnapshot(ctx context.Context, date time.Time) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

func (m *MockLedgerService) BalanceAsOf(ctx context.Context, accountID string, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerService) BalancesAsOf(ctx context.Context, date time.Time) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockLedgerService) RefreshFrom(ctx context.Context, editedDate time.Time) error {
	args := m.Called(ctx, editedDate)
	return args.Error(0)
}

func (m *MockLedgerService) RestateEquity(ctx context.Context, asOf time.Time, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, asOf, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
