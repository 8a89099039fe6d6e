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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
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

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
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

func (m *MockAccountRepository) FindChildAccounts(ctx context.Context, parentAccountID string) ([]domain.Account, error) {
	args := m.Called(ctx, parentAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account, audit domain.AuditLog) error {
	args := m.Called(ctx, account, audit)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account, audit domain.AuditLog) error {
	args := m.Called(ctx, account, audit)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time, audit domain.AuditLog) error {
	args := m.Called(ctx, accountID, userID, now, audit)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockAccountRepository
	mockCurrencySvc *MockCurrencyReaderSvc
	service         portssvc.AccountSvcFacade
	actor           dto.Actor
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.mockCurrencySvc = new(MockCurrencyReaderSvc)
	suite.service = services.NewAccountService(suite.mockRepo, suite.mockCurrencySvc)
	suite.actor = dto.Actor{UserID: uuid.NewString()}
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_DerivesNormalBalance() {
	ctx := context.Background()

	cases := []struct {
		accountType string
		expected    domain.NormalBalance
	}{
		{"ASSET", domain.NormalDebit},
		{"EXPENSE", domain.NormalDebit},
		{"LIABILITY", domain.NormalCredit},
		{"EQUITY", domain.NormalCredit},
		{"REVENUE", domain.NormalCredit},
	}

	for _, tc := range cases {
		req := dto.CreateAccountRequest{
			Code:         "ACC-" + tc.accountType,
			Name:         tc.accountType + " account",
			AccountType:  tc.accountType,
			CurrencyCode: "USD",
		}
		suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
		suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account"), mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()

		account, err := suite.service.CreateAccount(ctx, req, suite.actor)

		suite.Require().NoError(err)
		suite.Equal(tc.expected, account.NormalBalance, "type %s", tc.accountType)
		suite.True(account.IsActive)
	}
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:         "1000",
		Name:         "Weird",
		AccountType:  "CONTRA",
		CurrencyCode: "USD",
	}

	_, err := suite.service.CreateAccount(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	ctx := context.Background()
	parent := &domain.Account{
		AccountID:   uuid.NewString(),
		AccountType: domain.Liability,
	}
	req := dto.CreateAccountRequest{
		Code:            "1001",
		Name:            "Cash",
		AccountType:     "ASSET",
		CurrencyCode:    "USD",
		ParentAccountID: parent.AccountID,
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, parent.AccountID).Return(parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentMissing() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:            "1001",
		Name:            "Cash",
		AccountType:     "ASSET",
		CurrencyCode:    "USD",
		ParentAccountID: uuid.NewString(),
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, req.ParentAccountID).Return(nil, nil).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_CachesSecondRead() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), Code: "1000", IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	first, err := suite.service.GetAccountByID(ctx, account.AccountID)
	suite.Require().NoError(err)

	// Second read must be served from cache; the single .Once() expectation
	// would fail if the repository were hit again.
	second, err := suite.service.GetAccountByID(ctx, account.AccountID)
	suite.Require().NoError(err)

	suite.Equal(first.AccountID, second.AccountID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_PrimesCodeCache() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), Code: "1000", IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	_, err := suite.service.GetAccountByID(ctx, account.AccountID)
	suite.Require().NoError(err)

	byCode, err := suite.service.GetAccountByCode(ctx, "1000")
	suite.Require().NoError(err)
	suite.Equal(account.AccountID, byCode.AccountID)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindAccountByCode", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_InvalidatesCache() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), Code: "1000", Name: "Old name", IsActive: true}
	newName := "New name"

	// Prime the cache.
	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil)
	_, err := suite.service.GetAccountByID(ctx, account.AccountID)
	suite.Require().NoError(err)

	suite.mockRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account"), mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, account.AccountID, dto.UpdateAccountRequest{Name: &newName}, suite.actor)
	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)

	// The stale cached copy must be gone; the next read goes back to the repo.
	_, err = suite.service.GetAccountByID(ctx, account.AccountID)
	suite.Require().NoError(err)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "FindAccountByID", 3) // prime + update lookup + post-invalidation read
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_AlreadyInactive() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), Code: "1000", IsActive: false}

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	err := suite.service.DeactivateAccount(ctx, account.AccountID, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), Code: "1000", IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockRepo.On("DeactivateAccount", ctx, account.AccountID, suite.actor.UserID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, account.AccountID, suite.actor)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_DeadlineSurfacesAsTimeout() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), Code: "1000", IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockRepo.On("DeactivateAccount", ctx, account.AccountID, suite.actor.UserID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("domain.AuditLog")).
		Return(fmt.Errorf("deactivate account: %w", context.DeadlineExceeded)).Once()

	err := suite.service.DeactivateAccount(ctx, account.AccountID, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrTimeout)
}

func (suite *AccountServiceTestSuite) TestListChildAccounts_ParentNotFound() {
	ctx := context.Background()
	parentID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, parentID).Return(nil, nil).Once()

	_, err := suite.service.ListChildAccounts(ctx, parentID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Test Suite ---
func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
