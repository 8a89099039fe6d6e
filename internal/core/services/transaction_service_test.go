package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/arcadehub/ledger_engine/internal/apperrors"
	"github.com/arcadehub/ledger_engine/internal/core/domain"
	portsrepo "github.com/arcadehub/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/arcadehub/ledger_engine/internal/core/ports/services"
	"github.com/arcadehub/ledger_engine/internal/core/services"
	"github.com/arcadehub/ledger_engine/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByIdempotencyKey(ctx context.Context, idempotencyKey string) (*domain.Transaction, error) {
	args := m.Called(ctx, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionEntry), args.Error(1)
}

func (m *MockTransactionRepository) ListEntriesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.TransactionEntry, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.TransactionEntry), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.TransactionEntry, audit domain.AuditLog) error {
	args := m.Called(ctx, txn, entries, audit)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionStatus(ctx context.Context, txn domain.Transaction, expected domain.TransactionStatus, audit domain.AuditLog) error {
	args := m.Called(ctx, txn, expected, audit)
	return args.Error(0)
}

// --- Mock AccountReaderSvc ---
type MockAccountReaderSvc struct {
	mock.Mock
}

var _ portssvc.AccountReaderSvc = (*MockAccountReaderSvc)(nil)

func (m *MockAccountReaderSvc) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReaderSvc) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReaderSvc) ListAccounts(ctx context.Context, limit int, offset int) (*dto.ListAccountsResponse, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAccountsResponse), args.Error(1)
}

func (m *MockAccountReaderSvc) ListChildAccounts(ctx context.Context, parentAccountID string) ([]domain.Account, error) {
	args := m.Called(ctx, parentAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock ExchangeRateReaderSvc ---
type MockExchangeRateReaderSvc struct {
	mock.Mock
}

var _ portssvc.ExchangeRateReaderSvc = (*MockExchangeRateReaderSvc)(nil)

func (m *MockExchangeRateReaderSvc) GetRate(ctx context.Context, fromCode, toCode string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCode, toCode, asOf)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExchangeRateReaderSvc) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, asOf time.Time) (*dto.ConversionResponse, error) {
	args := m.Called(ctx, amount, fromCode, toCode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConversionResponse), args.Error(1)
}

func (m *MockExchangeRateReaderSvc) ToBaseCurrency(ctx context.Context, amount decimal.Decimal, fromCode string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, amount, fromCode, asOf)
	if args.Get(0) == nil {
		return decimal.Zero, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockExchangeRateReaderSvc) ListExchangeRates(ctx context.Context, params dto.ListExchangeRatesParams) (*dto.ListExchangeRatesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListExchangeRatesResponse), args.Error(1)
}

// --- Test Suite Setup ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo    *MockTransactionRepository
	mockAccountSvc *MockAccountReaderSvc
	mockRateSvc    *MockExchangeRateReaderSvc
	service        portssvc.TransactionSvcFacade
	actor          dto.Actor
	txnDate        time.Time
	cashAccount    domain.Account
	revenueAccount domain.Account
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountSvc = new(MockAccountReaderSvc)
	suite.mockRateSvc = new(MockExchangeRateReaderSvc)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountSvc, suite.mockRateSvc, 0)
	suite.actor = dto.Actor{UserID: uuid.NewString()}
	suite.txnDate = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	suite.cashAccount = domain.Account{
		AccountID:     uuid.NewString(),
		Code:          "1000",
		AccountType:   domain.Asset,
		CurrencyCode:  "USD",
		NormalBalance: domain.NormalDebit,
		IsActive:      true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:     uuid.NewString(),
		Code:          "4000",
		AccountType:   domain.Revenue,
		CurrencyCode:  "USD",
		NormalBalance: domain.NormalCredit,
		IsActive:      true,
	}
}

func (suite *TransactionServiceTestSuite) balancedRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		IdempotencyKey:  uuid.NewString(),
		Description:     "Invoice settled",
		TransactionDate: suite.txnDate,
		Entries: []dto.CreateEntryRequest{
			{AccountID: suite.cashAccount.AccountID, EntryType: "DEBIT", Amount: decimal.NewFromInt(100), CurrencyCode: "USD"},
			{AccountID: suite.revenueAccount.AccountID, EntryType: "CREDIT", Amount: decimal.NewFromInt(100), CurrencyCode: "USD"},
		},
	}
}

func (suite *TransactionServiceTestSuite) expectAccounts() {
	suite.mockAccountSvc.On("GetAccountByID", mock.Anything, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil)
	suite.mockAccountSvc.On("GetAccountByID", mock.Anything, suite.revenueAccount.AccountID).Return(&suite.revenueAccount, nil)
}

func (suite *TransactionServiceTestSuite) expectIdentityRate() {
	one := decimal.NewFromInt(1)
	suite.mockRateSvc.On("ToBaseCurrency", mock.Anything, decimal.NewFromInt(100), "USD", suite.txnDate).Return(decimal.NewFromInt(100), one, nil)
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockTxnRepo.On("FindTransactionByIdempotencyKey", ctx, req.IdempotencyKey).Return(nil, nil).Once()
	suite.expectAccounts()
	suite.expectIdentityRate()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.TransactionEntry"), mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.Pending, txn.Status)
	suite.Equal(req.IdempotencyKey, txn.IdempotencyKey)
	suite.Len(txn.Entries, 2)
	suite.True(txn.Entries[0].BaseCurrencyAmount.Equal(decimal.NewFromInt(100)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NoEntriesRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Entries = nil

	_, err := suite.service.CreateTransaction(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SingleEntryIsImbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Entries = req.Entries[:1]

	suite.mockTxnRepo.On("FindTransactionByIdempotencyKey", ctx, req.IdempotencyKey).Return(nil, nil).Once()
	suite.expectAccounts()
	suite.expectIdentityRate()

	_, err := suite.service.CreateTransaction(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrImbalanced)

	var imbalanced *apperrors.ImbalancedError
	suite.Require().ErrorAs(err, &imbalanced)
	suite.True(imbalanced.TotalDebits.Equal(decimal.NewFromInt(100)))
	suite.True(imbalanced.TotalCredits.Equal(decimal.Zero))
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_TooManyEntries() {
	ctx := context.Background()
	svc := services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountSvc, suite.mockRateSvc, 2)
	req := suite.balancedRequest()
	req.Entries = append(req.Entries, dto.CreateEntryRequest{
		AccountID: suite.cashAccount.AccountID, EntryType: "DEBIT", Amount: decimal.NewFromInt(1), CurrencyCode: "USD",
	})

	_, err := svc.CreateTransaction(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Imbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Entries[1].Amount = decimal.NewFromInt(90)

	suite.mockTxnRepo.On("FindTransactionByIdempotencyKey", ctx, req.IdempotencyKey).Return(nil, nil).Once()
	suite.expectAccounts()
	one := decimal.NewFromInt(1)
	suite.mockRateSvc.On("ToBaseCurrency", mock.Anything, decimal.NewFromInt(100), "USD", suite.txnDate).Return(decimal.NewFromInt(100), one, nil)
	suite.mockRateSvc.On("ToBaseCurrency", mock.Anything, decimal.NewFromInt(90), "USD", suite.txnDate).Return(decimal.NewFromInt(90), one, nil)

	_, err := suite.service.CreateTransaction(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrImbalanced)

	var imbalanced *apperrors.ImbalancedError
	suite.Require().ErrorAs(err, &imbalanced)
	suite.True(imbalanced.TotalDebits.Equal(decimal.NewFromInt(100)))
	suite.True(imbalanced.TotalCredits.Equal(decimal.NewFromInt(90)))
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_IdempotentReturnsExisting() {
	ctx := context.Background()
	req := suite.balancedRequest()
	existing := &domain.Transaction{TransactionID: uuid.NewString(), IdempotencyKey: req.IdempotencyKey, Status: domain.Posted}

	suite.mockTxnRepo.On("FindTransactionByIdempotencyKey", ctx, req.IdempotencyKey).Return(existing, nil).Once()
	suite.mockTxnRepo.On("FindEntriesByTransactionID", ctx, existing.TransactionID).Return([]domain.TransactionEntry{}, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(existing.TransactionID, txn.TransactionID)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ConcurrentDuplicateResolvesToWinner() {
	ctx := context.Background()
	req := suite.balancedRequest()
	winner := &domain.Transaction{TransactionID: uuid.NewString(), IdempotencyKey: req.IdempotencyKey, Status: domain.Pending}

	// Pre-check sees nothing; the insert then loses the race on the unique key.
	suite.mockTxnRepo.On("FindTransactionByIdempotencyKey", ctx, req.IdempotencyKey).Return(nil, nil).Once()
	suite.expectAccounts()
	suite.expectIdentityRate()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()
	suite.mockTxnRepo.On("FindTransactionByIdempotencyKey", ctx, req.IdempotencyKey).Return(winner, nil).Once()
	suite.mockTxnRepo.On("FindEntriesByTransactionID", ctx, winner.TransactionID).Return([]domain.TransactionEntry{}, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(winner.TransactionID, txn.TransactionID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()
	inactive := suite.cashAccount
	inactive.IsActive = false

	suite.mockTxnRepo.On("FindTransactionByIdempotencyKey", ctx, req.IdempotencyKey).Return(nil, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", mock.Anything, suite.cashAccount.AccountID).Return(&inactive, nil)

	_, err := suite.service.CreateTransaction(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockTxnRepo.On("FindTransactionByIdempotencyKey", ctx, req.IdempotencyKey).Return(nil, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", mock.Anything, suite.cashAccount.AccountID).Return(nil, apperrors.NewNotFoundError("account")).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CurrencyMismatch() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Entries[0].CurrencyCode = "EUR"

	suite.mockTxnRepo.On("FindTransactionByIdempotencyKey", ctx, req.IdempotencyKey).Return(nil, nil).Once()
	suite.expectAccounts()

	_, err := suite.service.CreateTransaction(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RateNotFound() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockTxnRepo.On("FindTransactionByIdempotencyKey", ctx, req.IdempotencyKey).Return(nil, nil).Once()
	suite.expectAccounts()
	suite.mockRateSvc.On("ToBaseCurrency", mock.Anything, decimal.NewFromInt(100), "USD", suite.txnDate).Return(nil, nil, apperrors.ErrRateNotFound)

	_, err := suite.service.CreateTransaction(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateNotFound)
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_Success() {
	ctx := context.Background()
	pending := &domain.Transaction{TransactionID: uuid.NewString(), Status: domain.Pending}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, pending.TransactionID).Return(pending, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Status == domain.Posted && txn.PostedAt != nil
	}), domain.Pending, mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()
	suite.mockTxnRepo.On("FindEntriesByTransactionID", ctx, pending.TransactionID).Return([]domain.TransactionEntry{}, nil).Once()

	txn, err := suite.service.PostTransaction(ctx, pending.TransactionID, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, txn.Status)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_AlreadyPosted() {
	ctx := context.Background()
	posted := &domain.Transaction{TransactionID: uuid.NewString(), Status: domain.Posted}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, posted.TransactionID).Return(posted, nil).Once()

	_, err := suite.service.PostTransaction(ctx, posted.TransactionID, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransactionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_NotFound() {
	ctx := context.Background()
	id := uuid.NewString()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, id).Return(nil, nil).Once()

	_, err := suite.service.PostTransaction(ctx, id, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_PostedSucceeds() {
	ctx := context.Background()
	posted := &domain.Transaction{TransactionID: uuid.NewString(), Status: domain.Posted}
	req := dto.VoidTransactionRequest{Reason: "entered twice"}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, posted.TransactionID).Return(posted, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Status == domain.Voided && txn.VoidReason == "entered twice" && txn.VoidedAt != nil
	}), domain.Posted, mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()
	suite.mockTxnRepo.On("FindEntriesByTransactionID", ctx, posted.TransactionID).Return([]domain.TransactionEntry{}, nil).Once()

	txn, err := suite.service.VoidTransaction(ctx, posted.TransactionID, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.Voided, txn.Status)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_AlreadyVoided() {
	ctx := context.Background()
	voided := &domain.Transaction{TransactionID: uuid.NewString(), Status: domain.Voided}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, voided.TransactionID).Return(voided, nil).Once()

	_, err := suite.service.VoidTransaction(ctx, voided.TransactionID, dto.VoidTransactionRequest{Reason: "again"}, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_LostRace() {
	ctx := context.Background()
	pending := &domain.Transaction{TransactionID: uuid.NewString(), Status: domain.Pending}

	// Another caller posted the row between the read and the guarded update.
	suite.mockTxnRepo.On("FindTransactionByID", ctx, pending.TransactionID).Return(pending, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, mock.Anything, domain.Pending, mock.Anything).Return(apperrors.ErrInvalidState).Once()

	_, err := suite.service.VoidTransaction(ctx, pending.TransactionID, dto.VoidTransactionRequest{Reason: "mistake"}, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_DeadlineSurfacesAsTimeout() {
	ctx := context.Background()
	pending := &domain.Transaction{TransactionID: uuid.NewString(), Status: domain.Pending}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, pending.TransactionID).Return(pending, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, mock.Anything, domain.Pending, mock.Anything).
		Return(fmt.Errorf("update transaction: %w", context.DeadlineExceeded)).Once()

	_, err := suite.service.PostTransaction(ctx, pending.TransactionID, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrTimeout)
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_DeadlineSurfacesAsTimeout() {
	ctx := context.Background()
	posted := &domain.Transaction{TransactionID: uuid.NewString(), Status: domain.Posted}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, posted.TransactionID).Return(posted, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, mock.Anything, domain.Posted, mock.Anything).
		Return(fmt.Errorf("update transaction: %w", context.Canceled)).Once()

	_, err := suite.service.VoidTransaction(ctx, posted.TransactionID, dto.VoidTransactionRequest{Reason: "late"}, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrTimeout)
}

func (suite *TransactionServiceTestSuite) TestListEntriesByAccount_ClampsLimit() {
	ctx := context.Background()

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockTxnRepo.On("ListEntriesByAccountID", ctx, suite.cashAccount.AccountID, 20, (*string)(nil)).Return([]domain.TransactionEntry{}, nil, nil).Once()

	resp, err := suite.service.ListEntriesByAccount(ctx, suite.cashAccount.AccountID, dto.ListEntriesParams{Limit: 0})

	suite.Require().NoError(err)
	suite.Empty(resp.Entries)
	suite.Nil(resp.NextToken)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
