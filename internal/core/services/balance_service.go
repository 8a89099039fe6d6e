package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
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

// balanceService computes signed account balances from posted entries and
// manages balance snapshots. Balances derive from single-statement SQL
// aggregates, so each read observes a consistent point-in-time view.
type balanceService struct {
	summaryRepo  portsrepo.EntrySummaryReader
	snapshotRepo portsrepo.SnapshotRepositoryFacade
	accountRepo  portsrepo.AccountReader
	accountSvc   portssvc.AccountReaderSvc
}

// NewBalanceService creates a new balance service.
func NewBalanceService(summaryRepo portsrepo.EntrySummaryReader, snapshotRepo portsrepo.SnapshotRepositoryFacade, accountRepo portsrepo.AccountReader, accountSvc portssvc.AccountReaderSvc) portssvc.BalanceSvcFacade {
	return &balanceService{
		summaryRepo:  summaryRepo,
		snapshotRepo: snapshotRepo,
		accountRepo:  accountRepo,
		accountSvc:   accountSvc,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

func (s *balanceService) GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (*dto.BalanceResponse, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	totalDebits, totalCredits, err := s.summaryRepo.SumEntriesForAccount(ctx, accountID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to sum entries for account %s: %w", accountID, apperrors.FromContextErr(err))
	}

	at := time.Now()
	if asOf != nil {
		at = *asOf
	}
	return &dto.BalanceResponse{
		AccountID:    accountID,
		Balance:      accounting.SignedBalance(account.NormalBalance, totalDebits, totalCredits),
		CurrencyCode: account.CurrencyCode,
		AsOf:         at,
	}, nil
}

func (s *balanceService) GetBalanceAtDate(ctx context.Context, accountID string, date time.Time) (*dto.BalanceResponse, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	day := truncateToDay(date)

	// A snapshot for the exact requested day is authoritative. Anything
	// older is not a valid starting point: a transaction voided after the
	// snapshot was taken would stay baked into it, so the fallback is a
	// full recomputation from the posted entries, never snapshot plus delta.
	snapshot, err := s.snapshotRepo.FindSnapshotByDate(ctx, accountID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to find snapshot for account %s: %w", accountID, err)
	}

	var balance decimal.Decimal
	if snapshot != nil {
		balance = snapshot.Balance
	} else {
		asOf := endOfDay(day)
		totalDebits, totalCredits, err := s.summaryRepo.SumEntriesForAccount(ctx, accountID, &asOf)
		if err != nil {
			return nil, fmt.Errorf("failed to sum entries for account %s: %w", accountID, err)
		}
		balance = accounting.SignedBalance(account.NormalBalance, totalDebits, totalCredits)
	}

	return &dto.BalanceResponse{
		AccountID:    accountID,
		Balance:      balance,
		CurrencyCode: account.CurrencyCode,
		AsOf:         day,
	}, nil
}

func (s *balanceService) CreateSnapshot(ctx context.Context, accountID string, snapshotDate time.Time, actor dto.Actor) (*domain.BalanceSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	day := truncateToDay(snapshotDate)
	asOf := endOfDay(day)
	totalDebits, totalCredits, err := s.summaryRepo.SumEntriesForAccount(ctx, accountID, &asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to sum entries for account %s: %w", accountID, err)
	}

	now := time.Now()
	snapshot := domain.BalanceSnapshot{
		SnapshotID:   uuid.NewString(),
		AccountID:    accountID,
		Balance:      accounting.SignedBalance(account.NormalBalance, totalDebits, totalCredits),
		CurrencyCode: account.CurrencyCode,
		SnapshotDate: day,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.snapshotRepo.UpsertSnapshot(ctx, snapshot); err != nil {
		logger.Error("Failed to upsert snapshot", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	logger.Info("Snapshot created", slog.String("account_id", accountID), slog.String("balance", snapshot.Balance.String()), slog.Time("snapshot_date", day))
	return &snapshot, nil
}

func (s *balanceService) SnapshotAll(ctx context.Context, snapshotDate time.Time, actor dto.Actor) ([]domain.BalanceSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.FindActiveAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active accounts: %w", err)
	}

	snapshots := make([]domain.BalanceSnapshot, 0, len(accounts))
	for _, account := range accounts {
		snapshot, err := s.CreateSnapshot(ctx, account.AccountID, snapshotDate, actor)
		if err != nil {
			// A concurrently deactivated account is skipped, anything else aborts.
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to snapshot account %s: %w", account.AccountID, err)
		}
		snapshots = append(snapshots, *snapshot)
	}

	logger.Info("Snapshot pass completed", slog.Int("account_count", len(snapshots)))
	return snapshots, nil
}

func (s *balanceService) ListSnapshots(ctx context.Context, accountID string, limit int) (*dto.ListSnapshotsResponse, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	snapshots, err := s.snapshotRepo.ListSnapshotsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots for account %s: %w", accountID, err)
	}
	if limit > 0 && len(snapshots) > limit {
		snapshots = snapshots[:limit]
	}

	resp := dto.ToListSnapshotsResponse(snapshots)
	return &resp, nil
}

// endOfDay is the inclusive upper bound when summing entries dated within a day.
func endOfDay(day time.Time) time.Time {
	return day.Add(24*time.Hour - time.Nanosecond)
}
