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
	"github.com/tokotrack/backoffice/internal/dto"
)

type ChartOfAccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockSnapshotRepo *MockSnapshotRepository
	mockLedgerSvc    *MockLedgerService
	service          *services.ChartOfAccountService

	now    time.Time
	today  time.Time
	userID string
}

func (suite *ChartOfAccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockSnapshotRepo = new(MockSnapshotRepository)
	suite.mockLedgerSvc = new(MockLedgerService)

	suite.now = time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC)
	suite.today = time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	clock := domain.FixedClock{Instant: suite.now}
	suite.service = services.NewChartOfAccountService(suite.mockAccountRepo, suite.mockSnapshotRepo, suite.mockLedgerSvc, clock)
	suite.userID = "user-1"
}

func (suite *ChartOfAccountServiceTestSuite) TestCreateAccount_CarriesCodeAssignedAtPersistTime() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Second Till", CategoryID: 1}
	category := domain.AccountCategory{CategoryID: 1, Name: "Cash on Hand", NormalSide: domain.DebitNormal, CodePrefix: 10100}

	suite.mockAccountRepo.On("FindCategoryByID", ctx, 1).Return(&category, nil)
	suite.mockAccountRepo.On("FindAccountByName", ctx, "Second Till").Return(nil, apperrors.ErrNotFound)
	// The repository mints the code together with the insert; the service
	// hands over an account without one and adopts whatever came back.
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Code == "" &&
			acc.Name == "Second Till" &&
			acc.CategoryID == 1 &&
			acc.StartingBalance.IsZero() &&
			!acc.IsLocked &&
			acc.CreatedBy == suite.userID
	})).Return("10100-002", nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal("10100-002", account.Code)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockSnapshotRepo.AssertNotCalled(suite.T(), "DeleteAfter", mock.Anything, mock.Anything)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "RecomputeAsOf", mock.Anything, mock.Anything)
}

func (suite *ChartOfAccountServiceTestSuite) TestCreateAccount_OpeningBalanceTriggersRebuild() {
	ctx := context.Background()
	opening := decimal.NewFromInt(500)
	req := dto.CreateAccountRequest{Name: "Petty Cash", CategoryID: 1, StartingBalance: &opening}
	category := domain.AccountCategory{CategoryID: 1, Name: "Cash on Hand", NormalSide: domain.DebitNormal, CodePrefix: 10100}

	suite.mockAccountRepo.On("FindCategoryByID", ctx, 1).Return(&category, nil)
	suite.mockAccountRepo.On("FindAccountByName", ctx, "Petty Cash").Return(nil, apperrors.ErrNotFound)
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.Anything).Return("10100-003", nil)
	suite.mockSnapshotRepo.On("DeleteAfter", ctx, time.Time{}).Return(nil).Once()
	suite.mockLedgerSvc.On("RecomputeAsOf", ctx, suite.today).Return(nil).Once()
	suite.mockLedgerSvc.On("RestateEquity", ctx, suite.today, suite.userID).Return(decimal.NewFromInt(500), nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.True(account.StartingBalance.Equal(opening))
	suite.mockSnapshotRepo.AssertExpectations(suite.T())
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *ChartOfAccountServiceTestSuite) TestCreateAccount_RejectsDuplicateName() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Till", CategoryID: 1}
	category := domain.AccountCategory{CategoryID: 1, Name: "Cash on Hand", NormalSide: domain.DebitNormal, CodePrefix: 10100}
	existing := domain.Account{AccountID: "acc-1", Name: "Till"}

	suite.mockAccountRepo.On("FindCategoryByID", ctx, 1).Return(&category, nil)
	suite.mockAccountRepo.On("FindAccountByName", ctx, "Till").Return(&existing, nil)

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(account)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *ChartOfAccountServiceTestSuite) TestCreateAccount_RejectsUnknownCategory() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Mystery", CategoryID: 99}

	suite.mockAccountRepo.On("FindCategoryByID", ctx, 99).Return(nil, apperrors.ErrNotFound)

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(account)
}

func (suite *ChartOfAccountServiceTestSuite) TestUpdateAccount_StartingBalanceEditRebuildsSnapshots() {
	ctx := context.Background()
	newBalance := decimal.NewFromInt(2000)
	req := dto.UpdateAccountRequest{StartingBalance: &newBalance}
	account := domain.Account{
		AccountID:       "acc-1",
		Code:            "10100-001",
		Name:            "Till",
		CategoryID:      1,
		StartingBalance: decimal.NewFromInt(1000),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(&account, nil)
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.AccountID == "acc-1" &&
			acc.StartingBalance.Equal(newBalance) &&
			acc.LastUpdatedBy == suite.userID
	})).Return(nil).Once()
	suite.mockSnapshotRepo.On("DeleteAfter", ctx, time.Time{}).Return(nil).Once()
	suite.mockLedgerSvc.On("RecomputeAsOf", ctx, suite.today).Return(nil).Once()
	suite.mockLedgerSvc.On("RestateEquity", ctx, suite.today, suite.userID).Return(decimal.NewFromInt(2000), nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, "acc-1", req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.True(updated.StartingBalance.Equal(newBalance))
	suite.mockSnapshotRepo.AssertExpectations(suite.T())
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *ChartOfAccountServiceTestSuite) TestUpdateAccount_RenameOnlySkipsRebuild() {
	ctx := context.Background()
	newName := "Front Till"
	req := dto.UpdateAccountRequest{Name: &newName}
	account := domain.Account{AccountID: "acc-1", Code: "10100-001", Name: "Till", CategoryID: 1, StartingBalance: decimal.NewFromInt(1000)}

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(&account, nil)
	suite.mockAccountRepo.On("FindAccountByName", ctx, "Front Till").Return(nil, apperrors.ErrNotFound)
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Name == "Front Till"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, "acc-1", req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Front Till", updated.Name)
	suite.mockSnapshotRepo.AssertNotCalled(suite.T(), "DeleteAfter", mock.Anything, mock.Anything)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "RecomputeAsOf", mock.Anything, mock.Anything)
}

func (suite *ChartOfAccountServiceTestSuite) TestDeleteAccount_RejectsLockedAccount() {
	ctx := context.Background()
	account := domain.Account{AccountID: "acc-sys", Code: "30100-001", Name: "Owner Equity", IsLocked: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-sys").Return(&account, nil)

	err := suite.service.DeleteAccount(ctx, "acc-sys")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLocked)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *ChartOfAccountServiceTestSuite) TestDeleteAccount_RejectsReferencedAccount() {
	ctx := context.Background()
	account := domain.Account{AccountID: "acc-1", Code: "10100-001", Name: "Till"}

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(&account, nil)
	suite.mockAccountRepo.On("HasJournalReferences", ctx, "acc-1").Return(true, nil)

	err := suite.service.DeleteAccount(ctx, "acc-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInUse)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *ChartOfAccountServiceTestSuite) TestDeleteAccount_NonZeroOpeningBalanceRebuilds() {
	ctx := context.Background()
	account := domain.Account{
		AccountID:       "acc-1",
		Code:            "10100-001",
		Name:            "Till",
		StartingBalance: decimal.NewFromInt(300),
		AuditFields:     domain.AuditFields{LastUpdatedBy: "user-2"},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(&account, nil)
	suite.mockAccountRepo.On("HasJournalReferences", ctx, "acc-1").Return(false, nil)
	suite.mockAccountRepo.On("DeleteAccount", ctx, "acc-1").Return(nil).Once()
	suite.mockSnapshotRepo.On("DeleteAfter", ctx, time.Time{}).Return(nil).Once()
	suite.mockLedgerSvc.On("RecomputeAsOf", ctx, suite.today).Return(nil).Once()
	suite.mockLedgerSvc.On("RestateEquity", ctx, suite.today, "user-2").Return(decimal.Zero, nil).Once()

	err := suite.service.DeleteAccount(ctx, "acc-1")

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func TestChartOfAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChartOfAccountServiceTestSuite))
}
