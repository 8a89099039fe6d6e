package services_test

import (
	"context"
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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReconciliationRepository ---
type MockReconciliationRepository struct {
	mock.Mock
}

var _ portsrepo.ReconciliationRepositoryFacade = (*MockReconciliationRepository)(nil)

func (m *MockReconciliationRepository) FindRunByID(ctx context.Context, runID string) (*domain.ReconciliationRun, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationRun), args.Error(1)
}

func (m *MockReconciliationRepository) ListRuns(ctx context.Context, limit int, nextToken *string) ([]domain.ReconciliationRun, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.ReconciliationRun), returnedNextToken, args.Error(2)
}

func (m *MockReconciliationRepository) SaveRun(ctx context.Context, run domain.ReconciliationRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockReconciliationRepository) UpdateRun(ctx context.Context, run domain.ReconciliationRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

// --- Test Suite Setup ---
type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockReconRepo    *MockReconciliationRepository
	mockSummaryRepo  *MockSummaryRepository
	mockSnapshotRepo *MockSnapshotRepository
	mockAccountRepo  *MockAccountRepository
	service          portssvc.ReconciliationSvcFacade
	actor            dto.Actor
	cashAccount      domain.Account
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockReconRepo = new(MockReconciliationRepository)
	suite.mockSummaryRepo = new(MockSummaryRepository)
	suite.mockSnapshotRepo = new(MockSnapshotRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewReconciliationService(suite.mockReconRepo, suite.mockSummaryRepo, suite.mockSnapshotRepo, suite.mockAccountRepo)
	suite.actor = dto.Actor{UserID: uuid.NewString()}

	suite.cashAccount = domain.Account{
		AccountID:     uuid.NewString(),
		Code:          "1000",
		Name:          "Cash",
		AccountType:   domain.Asset,
		CurrencyCode:  "USD",
		NormalBalance: domain.NormalDebit,
		IsActive:      true,
	}
}

func (suite *ReconciliationServiceTestSuite) expectRunLifecycle() {
	suite.mockReconRepo.On("SaveRun", mock.Anything, mock.MatchedBy(func(run domain.ReconciliationRun) bool {
		return run.Status == domain.ReconciliationPending
	})).Return(nil).Once()
}

// --- Test Cases ---

func (suite *ReconciliationServiceTestSuite) TestRunReconciliation_Balanced() {
	ctx := context.Background()

	suite.expectRunLifecycle()
	suite.mockSummaryRepo.On("SumBaseCurrencyTotals", mock.Anything).
		Return(decimal.NewFromInt(1000), decimal.NewFromInt(1000), nil).Once()
	suite.mockAccountRepo.On("FindActiveAccounts", mock.Anything).Return([]domain.Account{suite.cashAccount}, nil).Once()
	suite.mockSummaryRepo.On("SumEntriesForAccount", mock.Anything, suite.cashAccount.AccountID, (*time.Time)(nil)).
		Return(decimal.NewFromInt(600), decimal.NewFromInt(100), nil).Once()
	snapshotDay := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	snapshot := &domain.BalanceSnapshot{
		AccountID:    suite.cashAccount.AccountID,
		Balance:      decimal.NewFromInt(400),
		SnapshotDate: snapshotDay,
	}
	suite.mockSnapshotRepo.On("FindLatestSnapshot", mock.Anything, suite.cashAccount.AccountID).Return(snapshot, nil).Once()
	suite.mockSummaryRepo.On("SumEntriesForAccountSince", mock.Anything, suite.cashAccount.AccountID, snapshotDay.Add(24*time.Hour-time.Nanosecond), (*time.Time)(nil)).
		Return(decimal.NewFromInt(150), decimal.NewFromInt(50), nil).Once()
	suite.mockReconRepo.On("UpdateRun", mock.Anything, mock.MatchedBy(func(run domain.ReconciliationRun) bool {
		return run.Status == domain.ReconciliationBalanced &&
			run.TotalAccounts == 1 &&
			run.BalancedAccounts == 1 &&
			run.ImbalancedAccounts == 0 &&
			len(run.Discrepancies) == 0 &&
			run.CompletedAt != nil
	})).Return(nil).Once()

	run, err := suite.service.RunReconciliation(ctx, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.ReconciliationBalanced, run.Status)
	suite.mockReconRepo.AssertExpectations(suite.T())
	suite.mockSummaryRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestRunReconciliation_GlobalImbalance() {
	ctx := context.Background()

	suite.expectRunLifecycle()
	suite.mockSummaryRepo.On("SumBaseCurrencyTotals", mock.Anything).
		Return(decimal.NewFromInt(1000), decimal.NewFromInt(990), nil).Once()
	suite.mockAccountRepo.On("FindActiveAccounts", mock.Anything).Return([]domain.Account{}, nil).Once()
	suite.mockReconRepo.On("UpdateRun", mock.Anything, mock.MatchedBy(func(run domain.ReconciliationRun) bool {
		if run.Status != domain.ReconciliationImbalanced || len(run.Discrepancies) != 1 {
			return false
		}
		d := run.Discrepancies[0]
		// The ledger-wide check is not an account, so it must not inflate
		// the imbalanced account counter.
		return d.AccountID == domain.GlobalDiscrepancyID &&
			d.Difference.Equal(decimal.NewFromInt(10)) &&
			run.ImbalancedAccounts == 0 &&
			run.TotalAccounts == 0
	})).Return(nil).Once()

	run, err := suite.service.RunReconciliation(ctx, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.ReconciliationImbalanced, run.Status)
	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestRunReconciliation_AccountDrift() {
	ctx := context.Background()

	suite.expectRunLifecycle()
	suite.mockSummaryRepo.On("SumBaseCurrencyTotals", mock.Anything).
		Return(decimal.NewFromInt(500), decimal.NewFromInt(500), nil).Once()
	suite.mockAccountRepo.On("FindActiveAccounts", mock.Anything).Return([]domain.Account{suite.cashAccount}, nil).Once()
	// Full recomputation says 500, snapshot plus delta says 520.
	suite.mockSummaryRepo.On("SumEntriesForAccount", mock.Anything, suite.cashAccount.AccountID, (*time.Time)(nil)).
		Return(decimal.NewFromInt(500), decimal.Zero, nil).Once()
	snapshotDay := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	snapshot := &domain.BalanceSnapshot{
		AccountID:    suite.cashAccount.AccountID,
		Balance:      decimal.NewFromInt(420),
		SnapshotDate: snapshotDay,
	}
	suite.mockSnapshotRepo.On("FindLatestSnapshot", mock.Anything, suite.cashAccount.AccountID).Return(snapshot, nil).Once()
	suite.mockSummaryRepo.On("SumEntriesForAccountSince", mock.Anything, suite.cashAccount.AccountID, snapshotDay.Add(24*time.Hour-time.Nanosecond), (*time.Time)(nil)).
		Return(decimal.NewFromInt(100), decimal.Zero, nil).Once()
	suite.mockReconRepo.On("UpdateRun", mock.Anything, mock.MatchedBy(func(run domain.ReconciliationRun) bool {
		if len(run.Discrepancies) != 1 {
			return false
		}
		d := run.Discrepancies[0]
		return d.AccountID == suite.cashAccount.AccountID &&
			d.AccountCode == "1000" &&
			d.ExpectedBalance.Equal(decimal.NewFromInt(520)) &&
			d.ActualBalance.Equal(decimal.NewFromInt(500)) &&
			d.Difference.Equal(decimal.NewFromInt(20)) &&
			run.ImbalancedAccounts == 1 &&
			run.BalancedAccounts == 0
	})).Return(nil).Once()

	run, err := suite.service.RunReconciliation(ctx, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.ReconciliationImbalanced, run.Status)
	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestRunReconciliation_NoSnapshotNeverFlags() {
	ctx := context.Background()

	suite.expectRunLifecycle()
	suite.mockSummaryRepo.On("SumBaseCurrencyTotals", mock.Anything).
		Return(decimal.NewFromInt(77), decimal.NewFromInt(77), nil).Once()
	suite.mockAccountRepo.On("FindActiveAccounts", mock.Anything).Return([]domain.Account{suite.cashAccount}, nil).Once()
	suite.mockSummaryRepo.On("SumEntriesForAccount", mock.Anything, suite.cashAccount.AccountID, (*time.Time)(nil)).
		Return(decimal.NewFromInt(77), decimal.Zero, nil).Once()
	suite.mockSnapshotRepo.On("FindLatestSnapshot", mock.Anything, suite.cashAccount.AccountID).Return(nil, nil).Once()
	suite.mockReconRepo.On("UpdateRun", mock.Anything, mock.MatchedBy(func(run domain.ReconciliationRun) bool {
		return run.Status == domain.ReconciliationBalanced && len(run.Discrepancies) == 0
	})).Return(nil).Once()

	run, err := suite.service.RunReconciliation(ctx, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.ReconciliationBalanced, run.Status)
	suite.mockSummaryRepo.AssertNotCalled(suite.T(), "SumEntriesForAccountSince", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestRunReconciliation_FailurePersistedAsImbalanced() {
	ctx := context.Background()

	suite.expectRunLifecycle()
	suite.mockSummaryRepo.On("SumBaseCurrencyTotals", mock.Anything).
		Return(decimal.Zero, decimal.Zero, assert.AnError).Once()
	suite.mockReconRepo.On("UpdateRun", mock.Anything, mock.MatchedBy(func(run domain.ReconciliationRun) bool {
		return run.Status == domain.ReconciliationImbalanced &&
			len(run.Discrepancies) == 1 &&
			run.Discrepancies[0].AccountID == domain.GlobalDiscrepancyID &&
			run.CompletedAt != nil
	})).Return(nil).Once()

	_, err := suite.service.RunReconciliation(ctx, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestRunReconciliation_SecondCallerConflicts() {
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	suite.mockReconRepo.On("SaveRun", mock.Anything, mock.Anything).Return(nil).Once().Run(func(args mock.Arguments) {
		close(started)
		<-release
	})
	suite.mockSummaryRepo.On("SumBaseCurrencyTotals", mock.Anything).
		Return(decimal.Zero, decimal.Zero, nil).Once()
	suite.mockAccountRepo.On("FindActiveAccounts", mock.Anything).Return([]domain.Account{}, nil).Once()
	suite.mockReconRepo.On("UpdateRun", mock.Anything, mock.Anything).Return(nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := suite.service.RunReconciliation(ctx, suite.actor)
		done <- err
	}()

	<-started
	_, err := suite.service.RunReconciliation(ctx, suite.actor)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)

	close(release)
	suite.Require().NoError(<-done)
}

func (suite *ReconciliationServiceTestSuite) TestGetRunByID_NotFound() {
	ctx := context.Background()
	id := uuid.NewString()

	suite.mockReconRepo.On("FindRunByID", ctx, id).Return(nil, nil).Once()

	_, err := suite.service.GetRunByID(ctx, id)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReconciliationServiceTestSuite) TestListRuns_ClampsLimit() {
	ctx := context.Background()

	suite.mockReconRepo.On("ListRuns", ctx, 20, (*string)(nil)).Return([]domain.ReconciliationRun{}, nil, nil).Once()

	resp, err := suite.service.ListRuns(ctx, 0, nil)

	suite.Require().NoError(err)
	suite.Empty(resp.Runs)
	suite.mockReconRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestReconciliationService(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
