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
	portsrepo "github.com/tokotrack/backoffice/internal/core/ports/repositories"
	"github.com/tokotrack/backoffice/internal/core/services"
)

type FinanceServiceTestSuite struct {
	suite.Suite
	mockFinanceRepo *MockFinanceRepository
	mockLedgerSvc   *MockLedgerService
	service         *services.FinanceService
}

func (suite *FinanceServiceTestSuite) SetupTest() {
	suite.mockFinanceRepo = new(MockFinanceRepository)
	suite.mockLedgerSvc = new(MockLedgerService)
	suite.service = services.NewFinanceService(suite.mockFinanceRepo, suite.mockLedgerSvc)
}

func (suite *FinanceServiceTestSuite) TestOutstandingBalance_SumsBillsMinusPayments() {
	ctx := context.Background()
	invoice := "PY.BK.7.01012024.user-1.0000001"
	history := []domain.Finance{
		{FinanceID: "fin-1", Invoice: invoice, BillAmount: decimal.NewFromInt(100), PayAmount: decimal.Zero, PaymentNth: 0},
		{FinanceID: "fin-2", Invoice: invoice, BillAmount: decimal.Zero, PayAmount: decimal.NewFromInt(60), PaymentNth: 1},
	}

	suite.mockFinanceRepo.On("FindFinancesByInvoice", ctx, invoice).Return(history, nil)

	outstanding, err := suite.service.OutstandingBalance(ctx, invoice)

	suite.Require().NoError(err)
	suite.True(outstanding.Equal(decimal.NewFromInt(40)), "expected 40, got %s", outstanding)
}

func (suite *FinanceServiceTestSuite) TestOutstandingBalance_UnknownInvoice() {
	ctx := context.Background()

	suite.mockFinanceRepo.On("FindFinancesByInvoice", ctx, "PY.BK.missing").Return([]domain.Finance{}, nil)

	_, err := suite.service.OutstandingBalance(ctx, "PY.BK.missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *FinanceServiceTestSuite) TestDeleteFinance_RejectsBillWithPayments() {
	ctx := context.Background()
	invoice := "PY.BK.7.01012024.user-1.0000001"
	bill := domain.Finance{FinanceID: "fin-1", Invoice: invoice, BillAmount: decimal.NewFromInt(100), PaymentNth: 0}
	history := []domain.Finance{
		bill,
		{FinanceID: "fin-2", Invoice: invoice, PayAmount: decimal.NewFromInt(60), PaymentNth: 1},
	}

	suite.mockFinanceRepo.On("FindFinanceByID", ctx, "fin-1").Return(&bill, nil)
	suite.mockFinanceRepo.On("FindFinancesByInvoice", ctx, invoice).Return(history, nil)

	err := suite.service.DeleteFinance(ctx, "fin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockFinanceRepo.AssertNotCalled(suite.T(), "DeleteFinanceWithJournals", mock.Anything, mock.Anything)
}

func (suite *FinanceServiceTestSuite) TestDeleteFinance_RejectsInventoryBackedInvoice() {
	ctx := context.Background()
	invoice := "PO.BK.7.01012024.user-1.0000001"
	bill := domain.Finance{FinanceID: "fin-1", Invoice: invoice, BillAmount: decimal.NewFromInt(100), PaymentNth: 0}

	suite.mockFinanceRepo.On("FindFinanceByID", ctx, "fin-1").Return(&bill, nil)
	suite.mockFinanceRepo.On("FindFinancesByInvoice", ctx, invoice).Return([]domain.Finance{bill}, nil)
	suite.mockFinanceRepo.On("HasInventoryTransactions", ctx, invoice).Return(true, nil)

	err := suite.service.DeleteFinance(ctx, "fin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInUse)
	suite.mockFinanceRepo.AssertNotCalled(suite.T(), "DeleteFinanceWithJournals", mock.Anything, mock.Anything)
}

func (suite *FinanceServiceTestSuite) TestDeleteFinance_RemovesRecordAndRefreshesSnapshots() {
	ctx := context.Background()
	issued := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	invoice := "PY.BK.7.02012024.user-1.0000001"
	payment := domain.Finance{
		FinanceID:  "fin-2",
		Invoice:    invoice,
		JournalID:  "j-pay-2",
		DateIssued: issued,
		PayAmount:  decimal.NewFromInt(60),
		PaymentNth: 1,
	}

	suite.mockFinanceRepo.On("FindFinanceByID", ctx, "fin-2").Return(&payment, nil)
	suite.mockFinanceRepo.On("HasInventoryTransactions", ctx, invoice).Return(false, nil)
	// The record passed down still carries its journal id, so the repository
	// can unwind exactly the line posted with this payment.
	suite.mockFinanceRepo.On("DeleteFinanceWithJournals", ctx, mock.MatchedBy(func(f domain.Finance) bool {
		return f.FinanceID == "fin-2" && f.JournalID == "j-pay-2"
	})).Return(nil).Once()
	suite.mockLedgerSvc.On("RefreshFrom", ctx, issued).Return(nil).Once()

	err := suite.service.DeleteFinance(ctx, "fin-2")

	suite.Require().NoError(err)
	suite.mockFinanceRepo.AssertExpectations(suite.T())
	suite.mockLedgerSvc.AssertExpectations(suite.T())
	suite.mockFinanceRepo.AssertNotCalled(suite.T(), "FindFinancesByInvoice", mock.Anything, mock.Anything)
}

func (suite *FinanceServiceTestSuite) TestListFinances_GroupsByContact() {
	ctx := context.Background()
	records := []domain.Finance{
		{FinanceID: "fin-1", Invoice: "PY.BK.7.01012024.user-1.0000001", BillAmount: decimal.NewFromInt(100), FinanceType: domain.Payable, ContactID: 7},
	}
	summaries := []portsrepo.FinanceSummary{{
		ContactID:   7,
		FinanceType: domain.Payable,
		Billed:      decimal.NewFromInt(100),
		Paid:        decimal.NewFromInt(60),
		Outstanding: decimal.NewFromInt(40),
	}}

	suite.mockFinanceRepo.On("ListFinancesByType", ctx, domain.Payable, (*int64)(nil)).Return(records, nil)
	suite.mockFinanceRepo.On("SummarizeByContact", ctx, domain.Payable).Return(summaries, nil)

	resp, err := suite.service.ListFinances(ctx, domain.Payable, nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Finances, 1)
	suite.Require().Len(resp.ByContact, 1)
	suite.True(resp.ByContact[0].Outstanding.Equal(decimal.NewFromInt(40)))
}

func TestFinanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FinanceServiceTestSuite))
}
