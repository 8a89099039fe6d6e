package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/arcadehub/ledger_engine/internal/apperrors"
	"github.com/arcadehub/ledger_engine/internal/core/domain"
	portsrepo "github.com/arcadehub/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/arcadehub/ledger_engine/internal/core/ports/services"
	"github.com/arcadehub/ledger_engine/internal/dto"
	"github.com/arcadehub/ledger_engine/internal/middleware"
)

const accountCacheSize = 1024

// accountService manages the chart of accounts. Lookups by id and code go
// through small LRU caches; every write invalidates the affected entries
// before returning, so a subsequent read observes the new state.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	currencySvc portssvc.CurrencyReaderSvc
	cacheByID   *lru.Cache[string, domain.Account]
	cacheByCode *lru.Cache[string, domain.Account]
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, currencySvc portssvc.CurrencyReaderSvc) portssvc.AccountSvcFacade {
	cacheByID, _ := lru.New[string, domain.Account](accountCacheSize)
	cacheByCode, _ := lru.New[string, domain.Account](accountCacheSize)
	return &accountService{
		accountRepo: accountRepo,
		currencySvc: currencySvc,
		cacheByID:   cacheByID,
		cacheByCode: cacheByCode,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor dto.Actor) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountType := domain.AccountType(req.AccountType)
	normalBalance, err := domain.NormalBalanceForType(accountType)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if _, err := s.currencySvc.GetCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		return nil, err
	}

	if req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, req.ParentAccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up parent account: %w", err)
		}
		if parent == nil {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("parent account %s", req.ParentAccountID))
		}
		if parent.AccountType != accountType {
			return nil, apperrors.NewValidationError("child account type must match its parent")
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     accountType,
		CurrencyCode:    req.CurrencyCode,
		ParentAccountID: req.ParentAccountID,
		NormalBalance:   normalBalance,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	newValue, err := json.Marshal(account)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account for audit: %w", err)
	}
	audit := newAuditLog("account", account.AccountID, domain.AuditCreate, nil, newValue, actor, now)

	if err := s.accountRepo.SaveAccount(ctx, account, audit); err != nil {
		logger.Error("Failed to save account", slog.String("code", account.Code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create account: %w", apperrors.FromContextErr(err))
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code), slog.String("type", string(account.AccountType)))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	if cached, ok := s.cacheByID.Get(accountID); ok {
		return &cached, nil
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	if account == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s", accountID))
	}

	s.cacheByID.Add(account.AccountID, *account)
	s.cacheByCode.Add(account.Code, *account)
	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	if cached, ok := s.cacheByCode.Get(code); ok {
		return &cached, nil
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get account by code %s: %w", code, err)
	}
	if account == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account with code %s", code))
	}

	s.cacheByID.Add(account.AccountID, *account)
	s.cacheByCode.Add(account.Code, *account)
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) (*dto.ListAccountsResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	resp := dto.ToListAccountsResponse(accounts)
	return &resp, nil
}

func (s *accountService) ListChildAccounts(ctx context.Context, parentAccountID string) ([]domain.Account, error) {
	if _, err := s.GetAccountByID(ctx, parentAccountID); err != nil {
		return nil, err
	}

	children, err := s.accountRepo.FindChildAccounts(ctx, parentAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list child accounts of %s: %w", parentAccountID, err)
	}
	if children == nil {
		return []domain.Account{}, nil
	}
	return children, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actor dto.Actor) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	if existing == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s", accountID))
	}

	oldValue, err := json.Marshal(existing)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account for audit: %w", err)
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	now := time.Now()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actor.UserID

	newValue, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account for audit: %w", err)
	}
	audit := newAuditLog("account", accountID, domain.AuditUpdate, oldValue, newValue, actor, now)

	if err := s.accountRepo.UpdateAccount(ctx, updated, audit); err != nil {
		logger.Error("Failed to update account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update account: %w", apperrors.FromContextErr(err))
	}

	s.invalidate(existing)
	return &updated, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, actor dto.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	if existing == nil {
		return apperrors.NewNotFoundError(fmt.Sprintf("account %s", accountID))
	}
	if !existing.IsActive {
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrInvalidState, accountID)
	}

	oldValue, err := json.Marshal(existing)
	if err != nil {
		return fmt.Errorf("failed to marshal account for audit: %w", err)
	}

	now := time.Now()
	audit := newAuditLog("account", accountID, domain.AuditDeactivate, oldValue, nil, actor, now)

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, actor.UserID, now, audit); err != nil {
		logger.Error("Failed to deactivate account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to deactivate account: %w", apperrors.FromContextErr(err))
	}

	s.invalidate(existing)
	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// invalidate drops the account from both caches before the write returns.
func (s *accountService) invalidate(account *domain.Account) {
	s.cacheByID.Remove(account.AccountID)
	s.cacheByCode.Remove(account.Code)
}
