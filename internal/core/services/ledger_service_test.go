package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tokotrack/backoffice/internal/apperrors"
	"github.com/tokotrack/backoffice/internal/core/domain"
	"github.com/tokotrack/backoffice/internal/core/services"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockJournalRepo  *MockJournalRepository
	mockSnapshotRepo *MockSnapshotRepository
	service          *services.LedgerService

	today        time.Time
	cashAccount  domain.Account
	cashCategory domain.AccountCategory
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockSnapshotRepo = new(MockSnapshotRepository)

	suite.today = time.Date(2024, 1, 6, 10, 30, 0, 0, time.UTC)
	clock := domain.FixedClock{Instant: suite.today}
	suite.service = services.NewLedgerService(suite.mockAccountRepo, suite.mockJournalRepo, suite.mockSnapshotRepo, clock)

	suite.cashCategory = domain.AccountCategory{
		CategoryID: 1,
		Name:       "Cash on Hand",
		NormalSide: domain.DebitNormal,
		Kind:       domain.KindCash,
		CodePrefix: 10100,
	}
	suite.cashAccount = domain.Account{
		AccountID:       "acc-cash",
		Code:            "10100-001",
		Name:            "Till",
		CategoryID:      1,
		StartingBalance: decimal.NewFromInt(1000),
	}
}

func (suite *LedgerServiceTestSuite) TestRecomputeAsOf_DebitNormal() {
	ctx := context.Background()
	cutoff := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("ListAccounts", ctx).Return([]domain.Account{suite.cashAccount}, nil)
	suite.mockAccountRepo.On("ListCategories", ctx).Return([]domain.AccountCategory{suite.cashCategory}, nil)
	suite.mockJournalRepo.On("SumActivityThrough", ctx, domain.EndOfDay(cutoff)).Return(map[string]domain.AccountActivity{
		"acc-cash": {AccountID: "acc-cash", Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
	}, nil)
	suite.mockSnapshotRepo.On("UpsertSnapshots", ctx, mock.MatchedBy(func(snaps []domain.BalanceSnapshot) bool {
		return len(snaps) == 1 &&
			snaps[0].AccountID == "acc-cash" &&
			snaps[0].BalanceDate.Equal(cutoff) &&
			snaps[0].EndingBalance.Equal(decimal.NewFromInt(1500))
	})).Return(nil).Once()

	err := suite.service.RecomputeAsOf(ctx, cutoff)

	suite.Require().NoError(err)
	suite.mockSnapshotRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecomputeAsOf_Idempotent() {
	ctx := context.Background()
	cutoff := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("ListAccounts", ctx).Return([]domain.Account{suite.cashAccount}, nil)
	suite.mockAccountRepo.On("ListCategories", ctx).Return([]domain.AccountCategory{suite.cashCategory}, nil)
	suite.mockJournalRepo.On("SumActivityThrough", ctx, domain.EndOfDay(cutoff)).Return(map[string]domain.AccountActivity{
		"acc-cash": {AccountID: "acc-cash", Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
	}, nil)

	var runs [][]domain.BalanceSnapshot
	suite.mockSnapshotRepo.On("UpsertSnapshots", ctx, mock.Anything).Run(func(args mock.Arguments) {
		runs = append(runs, args.Get(1).([]domain.BalanceSnapshot))
	}).Return(nil).Times(2)

	suite.Require().NoError(suite.service.RecomputeAsOf(ctx, cutoff))
	suite.Require().NoError(suite.service.RecomputeAsOf(ctx, cutoff))

	suite.Require().Len(runs, 2)
	suite.Require().Len(runs[0], 1)
	suite.True(runs[0][0].EndingBalance.Equal(runs[1][0].EndingBalance))
	suite.True(runs[0][0].BalanceDate.Equal(runs[1][0].BalanceDate))
}

func (suite *LedgerServiceTestSuite) TestBalanceAsOf_SnapshotPlusSameDayDeltas() {
	ctx := context.Background()
	date := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	prior := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-cash").Return(&suite.cashAccount, nil)
	suite.mockAccountRepo.On("FindCategoryByID", ctx, 1).Return(&suite.cashCategory, nil)
	suite.mockAccountRepo.On("ListAccounts", ctx).Return([]domain.Account{suite.cashAccount}, nil)
	suite.mockSnapshotRepo.On("GetSnapshotsForDate", ctx, prior).Return(map[string]decimal.Decimal{
		"acc-cash": decimal.NewFromInt(1500),
	}, nil)
	suite.mockSnapshotRepo.On("GetSnapshot", ctx, "acc-cash", prior).Return(&domain.BalanceSnapshot{
		AccountID:     "acc-cash",
		BalanceDate:   prior,
		EndingBalance: decimal.NewFromInt(1500),
	}, nil)
	suite.mockJournalRepo.On("SumAccountActivity", ctx, "acc-cash", date, date).Return(domain.AccountActivity{
		AccountID: "acc-cash",
		Debit:     decimal.Zero,
		Credit:    decimal.NewFromInt(200),
	}, nil)

	balance, err := suite.service.BalanceAsOf(ctx, "acc-cash", date)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(1300)), "got %s", balance)
}

func (suite *LedgerServiceTestSuite) TestBalanceAsOf_QuietDayKeepsSnapshotValue() {
	ctx := context.Background()
	date := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	prior := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-cash").Return(&suite.cashAccount, nil)
	suite.mockAccountRepo.On("FindCategoryByID", ctx, 1).Return(&suite.cashCategory, nil)
	suite.mockAccountRepo.On("ListAccounts", ctx).Return([]domain.Account{suite.cashAccount}, nil)
	suite.mockSnapshotRepo.On("GetSnapshotsForDate", ctx, prior).Return(map[string]decimal.Decimal{
		"acc-cash": decimal.NewFromInt(1500),
	}, nil)
	suite.mockSnapshotRepo.On("GetSnapshot", ctx, "acc-cash", prior).Return(&domain.BalanceSnapshot{
		AccountID:     "acc-cash",
		BalanceDate:   prior,
		EndingBalance: decimal.NewFromInt(1500),
	}, nil)
	suite.mockJournalRepo.On("SumAccountActivity", ctx, "acc-cash", date, date).Return(domain.AccountActivity{AccountID: "acc-cash"}, nil)

	balance, err := suite.service.BalanceAsOf(ctx, "acc-cash", date)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(1500)), "got %s", balance)
}

func (suite *LedgerServiceTestSuite) TestBalanceAsOf_MissingSnapshotFallsBackToStartingBalance() {
	ctx := context.Background()
	date := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	prior := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-cash").Return(&suite.cashAccount, nil)
	suite.mockAccountRepo.On("FindCategoryByID", ctx, 1).Return(&suite.cashCategory, nil)
	suite.mockAccountRepo.On("ListAccounts", ctx).Return([]domain.Account{}, nil)
	suite.mockSnapshotRepo.On("GetSnapshotsForDate", ctx, prior).Return(map[string]decimal.Decimal{}, nil)
	suite.mockSnapshotRepo.On("GetSnapshot", ctx, "acc-cash", prior).Return(nil, apperrors.ErrNotFound)
	suite.mockJournalRepo.On("SumAccountActivity", ctx, "acc-cash", date, date).Return(domain.AccountActivity{
		AccountID: "acc-cash",
		Debit:     decimal.NewFromInt(50),
		Credit:    decimal.Zero,
	}, nil)

	balance, err := suite.service.BalanceAsOf(ctx, "acc-cash", date)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(1050)), "got %s", balance)
}

func (suite *LedgerServiceTestSuite) TestRefreshFrom_SameDayIsNoOp() {
	ctx := context.Background()

	err := suite.service.RefreshFrom(ctx, suite.today)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SumActivityThrough", mock.Anything, mock.Anything)
	suite.mockSnapshotRepo.AssertNotCalled(suite.T(), "DeleteAfter", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRefreshFrom_HistoricalEditInvalidatesLaterSnapshots() {
	ctx := context.Background()
	edited := time.Date(2024, 1, 5, 14, 45, 0, 0, time.UTC)
	editedDate := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("ListAccounts", ctx).Return([]domain.Account{suite.cashAccount}, nil)
	suite.mockAccountRepo.On("ListCategories", ctx).Return([]domain.AccountCategory{suite.cashCategory}, nil)
	suite.mockJournalRepo.On("SumActivityThrough", ctx, domain.EndOfDay(editedDate)).Return(map[string]domain.AccountActivity{}, nil)
	suite.mockSnapshotRepo.On("UpsertSnapshots", ctx, mock.Anything).Return(nil).Once()
	suite.mockSnapshotRepo.On("DeleteAfter", ctx, editedDate).Return(nil).Once()

	err := suite.service.RefreshFrom(ctx, edited)

	suite.Require().NoError(err)
	suite.mockSnapshotRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRestateEquity_AssetsMinusLiabilities() {
	ctx := context.Background()
	asOf := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	prior := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	payableCategory := domain.AccountCategory{CategoryID: 19, NormalSide: domain.CreditNormal, Kind: domain.KindPayable}
	equityCategory := domain.AccountCategory{CategoryID: 26, NormalSide: domain.CreditNormal, Kind: domain.KindEquity}
	payable := domain.Account{AccountID: "acc-payable", CategoryID: 19}
	equity := domain.Account{AccountID: "acc-equity", CategoryID: 26}
	accounts := []domain.Account{suite.cashAccount, payable, equity}

	suite.mockAccountRepo.On("ListAccountsByKinds", ctx, []domain.CategoryKind{domain.KindEquity}).Return([]domain.Account{equity}, nil)
	suite.mockAccountRepo.On("ListAccounts", ctx).Return(accounts, nil)
	suite.mockAccountRepo.On("ListCategories", ctx).Return([]domain.AccountCategory{suite.cashCategory, payableCategory, equityCategory}, nil)
	suite.mockSnapshotRepo.On("GetSnapshotsForDate", ctx, prior).Return(map[string]decimal.Decimal{
		"acc-cash":    decimal.NewFromInt(100),
		"acc-payable": decimal.NewFromInt(30),
		"acc-equity":  decimal.NewFromInt(50),
	}, nil)
	suite.mockJournalRepo.On("SumActivityOn", ctx, asOf).Return(map[string]domain.AccountActivity{}, nil)
	suite.mockAccountRepo.On("UpdateStartingBalance", ctx, "acc-equity", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(70))
	}), "user-1", suite.today).Return(nil).Once()

	restated, err := suite.service.RestateEquity(ctx, asOf, "user-1")

	suite.Require().NoError(err)
	suite.True(restated.Equal(decimal.NewFromInt(70)), "got %s", restated)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
