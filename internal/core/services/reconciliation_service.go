package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arcadehub/ledger_engine/internal/apperrors"
	"github.com/arcadehub/ledger_engine/internal/core/domain"
	portsrepo "github.com/arcadehub/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/arcadehub/ledger_engine/internal/core/ports/services"
	"github.com/arcadehub/ledger_engine/internal/dto"
	"github.com/arcadehub/ledger_engine/internal/middleware"
	"github.com/arcadehub/ledger_engine/internal/utils/accounting"
)

// reconciliationService verifies ledger integrity: the global debit/credit
// equality over all posted entries, and each active account's recomputed
// balance against its latest snapshot. At most one run executes at a time in
// a process; a second caller gets ErrConflict instead of queueing.
//
// A run that fails mid-flight is still persisted, as Imbalanced with a
// synthetic discrepancy carrying the failure, before the error is returned.
type reconciliationService struct {
	reconRepo    portsrepo.ReconciliationRepositoryFacade
	summaryRepo  portsrepo.EntrySummaryReader
	snapshotRepo portsrepo.SnapshotReader
	accountRepo  portsrepo.AccountReader

	mu sync.Mutex
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(reconRepo portsrepo.ReconciliationRepositoryFacade, summaryRepo portsrepo.EntrySummaryReader, snapshotRepo portsrepo.SnapshotReader, accountRepo portsrepo.AccountReader) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		reconRepo:    reconRepo,
		summaryRepo:  summaryRepo,
		snapshotRepo: snapshotRepo,
		accountRepo:  accountRepo,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

func (s *reconciliationService) RunReconciliation(ctx context.Context, actor dto.Actor) (*domain.ReconciliationRun, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !s.mu.TryLock() {
		return nil, fmt.Errorf("%w: reconciliation already in progress", apperrors.ErrConflict)
	}
	defer s.mu.Unlock()

	now := time.Now()
	run := domain.ReconciliationRun{
		RunID:   uuid.NewString(),
		RunDate: now,
		Status:  domain.ReconciliationPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if err := s.reconRepo.SaveRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create reconciliation run: %w", err)
	}

	logger.Info("Reconciliation started", slog.String("run_id", run.RunID))

	discrepancies, totalAccounts, err := s.check(ctx, logger)
	if err != nil {
		s.persistFailure(ctx, logger, &run, err)
		return nil, fmt.Errorf("reconciliation run %s failed: %w", run.RunID, apperrors.FromContextErr(err))
	}

	completed := time.Now()
	run.TotalAccounts = totalAccounts
	run.ImbalancedAccounts = countAccountDiscrepancies(discrepancies)
	run.BalancedAccounts = totalAccounts - run.ImbalancedAccounts
	run.Discrepancies = discrepancies
	run.CompletedAt = &completed
	run.LastUpdatedAt = completed
	if len(discrepancies) == 0 {
		run.Status = domain.ReconciliationBalanced
	} else {
		run.Status = domain.ReconciliationImbalanced
	}

	if err := s.reconRepo.UpdateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to persist reconciliation run %s: %w", run.RunID, err)
	}

	logger.Info("Reconciliation completed",
		slog.String("run_id", run.RunID),
		slog.String("status", string(run.Status)),
		slog.Int("total_accounts", run.TotalAccounts),
		slog.Int("discrepancies", len(run.Discrepancies)),
	)
	return &run, nil
}

// check performs the global and per-account verifications and returns every
// discrepancy found plus the number of accounts examined.
func (s *reconciliationService) check(ctx context.Context, logger *slog.Logger) ([]domain.Discrepancy, int, error) {
	discrepancies := []domain.Discrepancy{}

	// Ledger-wide double entry: posted base-currency debits must equal credits.
	globalDebits, globalCredits, err := s.summaryRepo.SumBaseCurrencyTotals(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to sum global totals: %w", err)
	}
	if !globalDebits.Equal(globalCredits) {
		logger.Warn("Global debit/credit mismatch",
			slog.String("total_debits", globalDebits.String()),
			slog.String("total_credits", globalCredits.String()),
		)
		discrepancies = append(discrepancies, domain.Discrepancy{
			AccountID:       domain.GlobalDiscrepancyID,
			ExpectedBalance: globalDebits,
			ActualBalance:   globalCredits,
			Difference:      globalDebits.Sub(globalCredits),
		})
	}

	accounts, err := s.accountRepo.FindActiveAccounts(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list active accounts: %w", err)
	}

	for _, account := range accounts {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		expected, actual, err := s.checkAccount(ctx, account)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to reconcile account %s: %w", account.AccountID, err)
		}
		if !expected.Equal(actual) {
			discrepancies = append(discrepancies, domain.Discrepancy{
				AccountID:       account.AccountID,
				AccountCode:     account.Code,
				AccountName:     account.Name,
				ExpectedBalance: expected,
				ActualBalance:   actual,
				Difference:      expected.Sub(actual),
			})
		}
	}

	return discrepancies, len(accounts), nil
}

// checkAccount recomputes the account's balance from scratch and derives the
// expected value from its latest snapshot plus the entries recorded since.
// An account with no snapshot is expected to equal its recomputation by
// construction, so only the full recomputation is reported for both sides.
func (s *reconciliationService) checkAccount(ctx context.Context, account domain.Account) (expected, actual decimal.Decimal, err error) {
	totalDebits, totalCredits, err := s.summaryRepo.SumEntriesForAccount(ctx, account.AccountID, nil)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	actual = accounting.SignedBalance(account.NormalBalance, totalDebits, totalCredits)

	snapshot, err := s.snapshotRepo.FindLatestSnapshot(ctx, account.AccountID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if snapshot == nil {
		return actual, actual, nil
	}

	sinceDebits, sinceCredits, err := s.summaryRepo.SumEntriesForAccountSince(ctx, account.AccountID, endOfDay(snapshot.SnapshotDate), nil)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	expected = snapshot.Balance.Add(accounting.SignedBalance(account.NormalBalance, sinceDebits, sinceCredits))
	return expected, actual, nil
}

// persistFailure records the failed run as Imbalanced with a synthetic
// discrepancy naming the error. Persistence failures here are logged, not
// raised; the original error wins.
func (s *reconciliationService) persistFailure(ctx context.Context, logger *slog.Logger, run *domain.ReconciliationRun, cause error) {
	completed := time.Now()
	run.Status = domain.ReconciliationImbalanced
	run.Discrepancies = []domain.Discrepancy{{
		AccountID:   domain.GlobalDiscrepancyID,
		AccountName: fmt.Sprintf("run failed: %v", cause),
	}}
	run.CompletedAt = &completed
	run.LastUpdatedAt = completed

	if err := s.reconRepo.UpdateRun(context.WithoutCancel(ctx), *run); err != nil {
		logger.Error("Failed to persist failed reconciliation run",
			slog.String("run_id", run.RunID),
			slog.String("cause", cause.Error()),
			slog.String("error", err.Error()),
		)
	}
}

func (s *reconciliationService) GetRunByID(ctx context.Context, runID string) (*domain.ReconciliationRun, error) {
	run, err := s.reconRepo.FindRunByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reconciliation run %s: %w", runID, err)
	}
	if run == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("reconciliation run %s", runID))
	}
	return run, nil
}

func (s *reconciliationService) ListRuns(ctx context.Context, limit int, nextToken *string) (*dto.ListReconciliationRunsResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	runs, next, err := s.reconRepo.ListRuns(ctx, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliation runs: %w", err)
	}

	resp := dto.ToListReconciliationRunsResponse(runs, next)
	return &resp, nil
}

func countAccountDiscrepancies(discrepancies []domain.Discrepancy) int {
	count := 0
	for _, d := range discrepancies {
		if d.AccountID != domain.GlobalDiscrepancyID {
			count++
		}
	}
	return count
}
