package services

import (
	"context"
	"encoding/json"
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
)

// currencyService manages the set of registered currencies. Exactly one
// currency may be flagged as base; the database enforces that with a partial
// unique index, so concurrent attempts resolve to a single winner.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) RegisterCurrency(ctx context.Context, req dto.RegisterCurrencyRequest, actor dto.Actor) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	currency := domain.Currency{
		CurrencyCode:   req.CurrencyCode,
		Name:           req.Name,
		Symbol:         req.Symbol,
		DecimalPlaces:  req.DecimalPlaces,
		IsBaseCurrency: req.IsBaseCurrency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if currency.IsBaseCurrency {
		existing, err := s.currencyRepo.FindBaseCurrency(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing base currency: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: base currency %s already registered", apperrors.ErrDuplicate, existing.CurrencyCode)
		}
	}

	newValue, err := json.Marshal(currency)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal currency for audit: %w", err)
	}
	audit := newAuditLog("currency", currency.CurrencyCode, domain.AuditCreate, nil, newValue, actor, now)

	if err := s.currencyRepo.SaveCurrency(ctx, currency, audit); err != nil {
		logger.Error("Failed to save currency", slog.String("currency_code", currency.CurrencyCode), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to register currency: %w", err)
	}

	logger.Info("Currency registered", slog.String("currency_code", currency.CurrencyCode), slog.Bool("is_base", currency.IsBaseCurrency))
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency %s: %w", currencyCode, err)
	}
	if currency == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("currency %s", currencyCode))
	}
	return currency, nil
}

func (s *currencyService) GetBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindBaseCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get base currency: %w", err)
	}
	if currency == nil {
		return nil, apperrors.NewNotFoundError("base currency not configured")
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

// newAuditLog builds the audit row every mutating service writes alongside
// its primary change.
func newAuditLog(entityType, entityID string, action domain.AuditAction, oldValue, newValue json.RawMessage, actor dto.Actor, now time.Time) domain.AuditLog {
	return domain.AuditLog{
		AuditLogID: uuid.NewString(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		OldValue:   oldValue,
		NewValue:   newValue,
		UserID:     actor.UserID,
		IPAddress:  actor.IPAddress,
		UserAgent:  actor.UserAgent,
		CreatedAt:  now,
	}
}
