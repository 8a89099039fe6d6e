package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/arcadehub/ledger_engine/internal/apperrors"
	"github.com/arcadehub/ledger_engine/internal/core/domain"
	portsrepo "github.com/arcadehub/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/arcadehub/ledger_engine/internal/core/ports/services"
	"github.com/arcadehub/ledger_engine/internal/dto"
	"github.com/arcadehub/ledger_engine/internal/middleware"
	"github.com/arcadehub/ledger_engine/internal/utils/accounting"
)

// DefaultMaxEntriesPerTransaction bounds entry count when no limit is configured.
const DefaultMaxEntriesPerTransaction = 100

// transactionService validates, converts, and persists balanced transactions
// and drives their status transitions. The idempotency key makes creation
// safe to retry: the database's unique constraint is the final authority, so
// two concurrent creates with the same key converge on a single stored
// transaction.
type transactionService struct {
	txnRepo    portsrepo.TransactionRepositoryFacade
	accountSvc portssvc.AccountReaderSvc
	rateSvc    portssvc.ExchangeRateReaderSvc
	maxEntries int
}

// NewTransactionService creates a new transaction service. A maxEntries of
// zero or less falls back to DefaultMaxEntriesPerTransaction.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, accountSvc portssvc.AccountReaderSvc, rateSvc portssvc.ExchangeRateReaderSvc, maxEntries int) portssvc.TransactionSvcFacade {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntriesPerTransaction
	}
	return &transactionService{
		txnRepo:    txnRepo,
		accountSvc: accountSvc,
		rateSvc:    rateSvc,
		maxEntries: maxEntries,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor dto.Actor) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Entries) == 0 {
		return nil, apperrors.NewValidationError("transaction must have at least one entry")
	}
	if len(req.Entries) > s.maxEntries {
		return nil, apperrors.NewValidationError(fmt.Sprintf("transaction exceeds the maximum of %d entries", s.maxEntries))
	}

	// Fast path for retries: return the transaction already stored under
	// this key. The unique constraint below still covers the race where two
	// creates pass this check simultaneously.
	existing, err := s.txnRepo.FindTransactionByIdempotencyKey(ctx, req.IdempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	if existing != nil {
		logger.Info("Idempotent create returned existing transaction", slog.String("transaction_id", existing.TransactionID), slog.String("idempotency_key", req.IdempotencyKey))
		return s.withEntries(ctx, existing)
	}

	now := time.Now()
	txnID := uuid.NewString()
	entries, err := s.buildEntries(ctx, txnID, req, actor, now)
	if err != nil {
		return nil, err
	}

	totalDebits, totalCredits := accounting.SumBaseCurrencyTotals(entries)
	if !totalDebits.Equal(totalCredits) {
		return nil, apperrors.NewImbalancedError(totalDebits, totalCredits)
	}

	txn := domain.Transaction{
		TransactionID:   txnID,
		IdempotencyKey:  req.IdempotencyKey,
		Reference:       req.Reference,
		Description:     req.Description,
		Status:          domain.Pending,
		TransactionDate: req.TransactionDate,
		Metadata:        req.Metadata,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	newValue, err := json.Marshal(txn)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction for audit: %w", err)
	}
	audit := newAuditLog("transaction", txn.TransactionID, domain.AuditCreate, nil, newValue, actor, now)

	if err := s.txnRepo.SaveTransaction(ctx, txn, entries, audit); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost the race on the idempotency key: the other create won,
			// nothing from this attempt was persisted. Return the winner.
			winner, ferr := s.txnRepo.FindTransactionByIdempotencyKey(ctx, req.IdempotencyKey)
			if ferr != nil {
				return nil, fmt.Errorf("failed to fetch winning transaction after duplicate key: %w", ferr)
			}
			if winner == nil {
				return nil, fmt.Errorf("%w: idempotency key conflict but winning transaction not found", apperrors.ErrInternal)
			}
			logger.Info("Concurrent create resolved to existing transaction", slog.String("transaction_id", winner.TransactionID), slog.String("idempotency_key", req.IdempotencyKey))
			return s.withEntries(ctx, winner)
		}
		logger.Error("Failed to save transaction", slog.String("idempotency_key", req.IdempotencyKey), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create transaction: %w", apperrors.FromContextErr(err))
	}

	txn.Entries = entries
	logger.Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.Int("entry_count", len(entries)),
		slog.String("total_debits", totalDebits.String()),
	)
	return &txn, nil
}

// buildEntries validates each requested entry against the chart of accounts
// and converts its amount into base currency as of the transaction date.
func (s *transactionService) buildEntries(ctx context.Context, txnID string, req dto.CreateTransactionRequest, actor dto.Actor, now time.Time) ([]domain.TransactionEntry, error) {
	entries := make([]domain.TransactionEntry, 0, len(req.Entries))
	for i, line := range req.Entries {
		account, err := s.accountSvc.GetAccountByID(ctx, line.AccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNotFoundError(fmt.Sprintf("entry %d references unknown account %s", i, line.AccountID))
			}
			return nil, err
		}
		if !account.IsActive {
			return nil, apperrors.NewValidationError(fmt.Sprintf("entry %d references inactive account %s", i, line.AccountID))
		}
		if line.CurrencyCode != account.CurrencyCode {
			return nil, apperrors.NewValidationError(fmt.Sprintf("entry %d currency %s does not match account currency %s", i, line.CurrencyCode, account.CurrencyCode))
		}

		entry := domain.TransactionEntry{
			EntryID:       uuid.NewString(),
			TransactionID: txnID,
			AccountID:     line.AccountID,
			EntryType:     domain.EntryType(line.EntryType),
			Amount:        line.Amount,
			CurrencyCode:  line.CurrencyCode,
			Description:   line.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.UserID,
			},
		}
		if err := entry.Validate(); err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("entry %d: %v", i, err))
		}

		baseAmount, rate, err := s.rateSvc.ToBaseCurrency(ctx, line.Amount, line.CurrencyCode, req.TransactionDate)
		if err != nil {
			return nil, err
		}
		entry.BaseCurrencyAmount = baseAmount
		entry.ExchangeRateUsed = rate

		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *transactionService) PostTransaction(ctx context.Context, transactionID string, actor dto.Actor) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.findTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.CanPost() {
		return nil, fmt.Errorf("%w: cannot post transaction in status %s", apperrors.ErrInvalidState, txn.Status)
	}

	oldValue, err := json.Marshal(txn)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction for audit: %w", err)
	}

	now := time.Now()
	updated := *txn
	updated.Status = domain.Posted
	updated.PostedAt = &now
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actor.UserID

	newValue, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction for audit: %w", err)
	}
	audit := newAuditLog("transaction", transactionID, domain.AuditPost, oldValue, newValue, actor, now)

	if err := s.txnRepo.UpdateTransactionStatus(ctx, updated, domain.Pending, audit); err != nil {
		logger.Warn("Failed to post transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, apperrors.FromContextErr(err)
	}

	logger.Info("Transaction posted", slog.String("transaction_id", transactionID))
	return s.withEntries(ctx, &updated)
}

func (s *transactionService) VoidTransaction(ctx context.Context, transactionID string, req dto.VoidTransactionRequest, actor dto.Actor) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.findTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.CanVoid() {
		return nil, fmt.Errorf("%w: cannot void transaction in status %s", apperrors.ErrInvalidState, txn.Status)
	}

	oldValue, err := json.Marshal(txn)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction for audit: %w", err)
	}

	now := time.Now()
	updated := *txn
	updated.Status = domain.Voided
	updated.VoidedAt = &now
	updated.VoidReason = req.Reason
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actor.UserID

	newValue, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction for audit: %w", err)
	}
	audit := newAuditLog("transaction", transactionID, domain.AuditVoid, oldValue, newValue, actor, now)

	// The guard on the expected current status makes concurrent post/void
	// attempts on the same row resolve to exactly one winner.
	if err := s.txnRepo.UpdateTransactionStatus(ctx, updated, txn.Status, audit); err != nil {
		logger.Warn("Failed to void transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, apperrors.FromContextErr(err)
	}

	logger.Info("Transaction voided", slog.String("transaction_id", transactionID), slog.String("reason", req.Reason))
	return s.withEntries(ctx, &updated)
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.findTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return s.withEntries(ctx, txn)
}

func (s *transactionService) ListEntriesByAccount(ctx context.Context, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	entries, nextToken, err := s.txnRepo.ListEntriesByAccountID(ctx, accountID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for account %s: %w", accountID, err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

func (s *transactionService) findTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	if txn == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s", transactionID))
	}
	return txn, nil
}

func (s *transactionService) withEntries(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	entries, err := s.txnRepo.FindEntriesByTransactionID(ctx, txn.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for transaction %s: %w", txn.TransactionID, err)
	}
	result := *txn
	result.Entries = entries
	return &result, nil
}
