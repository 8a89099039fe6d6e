package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arcadehub/ledger_engine/internal/apperrors"
	"github.com/arcadehub/ledger_engine/internal/core/domain"
	portsrepo "github.com/arcadehub/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/arcadehub/ledger_engine/internal/core/ports/services"
	"github.com/arcadehub/ledger_engine/internal/dto"
	"github.com/arcadehub/ledger_engine/internal/middleware"
)

// exchangeRateService resolves conversion rates with day granularity.
// A direct (from, to) rate wins; failing that the reciprocal of the inverse
// pair is applied; failing both, ErrRateNotFound.
type exchangeRateService struct {
	rateRepo    portsrepo.ExchangeRateRepositoryFacade
	currencySvc portssvc.CurrencyReaderSvc
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencySvc portssvc.CurrencyReaderSvc) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{rateRepo: rateRepo, currencySvc: currencySvc}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

func (s *exchangeRateService) SetExchangeRate(ctx context.Context, req dto.SetExchangeRateRequest, actor dto.Actor) (*domain.ExchangeRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	from := strings.ToUpper(req.FromCurrencyCode)
	to := strings.ToUpper(req.ToCurrencyCode)
	if from == to {
		return nil, apperrors.NewValidationError("from and to currency must differ")
	}
	if !req.Rate.IsPositive() {
		return nil, apperrors.NewValidationError("rate must be positive")
	}

	// Both sides must be registered currencies.
	if _, err := s.currencySvc.GetCurrencyByCode(ctx, from); err != nil {
		return nil, err
	}
	if _, err := s.currencySvc.GetCurrencyByCode(ctx, to); err != nil {
		return nil, err
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             req.Rate,
		DateEffective:    truncateToDay(req.DateEffective),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	newValue, err := json.Marshal(rate)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal exchange rate for audit: %w", err)
	}
	audit := newAuditLog("exchange_rate", rate.ExchangeRateID, domain.AuditCreate, nil, newValue, actor, now)

	if err := s.rateRepo.UpsertExchangeRate(ctx, rate, audit); err != nil {
		logger.Error("Failed to upsert exchange rate", slog.String("from", from), slog.String("to", to), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to set exchange rate: %w", err)
	}

	logger.Info("Exchange rate set", slog.String("from", from), slog.String("to", to), slog.String("rate", rate.Rate.String()))
	return &rate, nil
}

func (s *exchangeRateService) GetRate(ctx context.Context, fromCode, toCode string, asOf time.Time) (decimal.Decimal, error) {
	from := strings.ToUpper(fromCode)
	to := strings.ToUpper(toCode)

	if from == to {
		return decimal.NewFromInt(1), nil
	}

	asOfDay := truncateToDay(asOf)

	direct, err := s.rateRepo.FindLatestRate(ctx, from, to, asOfDay)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to look up rate %s->%s: %w", from, to, err)
	}
	if direct != nil {
		return direct.Rate, nil
	}

	inverse, err := s.rateRepo.FindLatestRate(ctx, to, from, asOfDay)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to look up inverse rate %s->%s: %w", to, from, err)
	}
	if inverse != nil {
		return decimal.NewFromInt(1).Div(inverse.Rate), nil
	}

	return decimal.Zero, fmt.Errorf("%w: %s->%s as of %s", apperrors.ErrRateNotFound, from, to, asOfDay.Format("2006-01-02"))
}

func (s *exchangeRateService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, asOf time.Time) (*dto.ConversionResponse, error) {
	rate, err := s.GetRate(ctx, fromCode, toCode, asOf)
	if err != nil {
		return nil, err
	}
	return &dto.ConversionResponse{
		Amount:           amount,
		FromCurrencyCode: strings.ToUpper(fromCode),
		ToCurrencyCode:   strings.ToUpper(toCode),
		Converted:        amount.Mul(rate),
		Rate:             rate,
		AsOf:             truncateToDay(asOf),
	}, nil
}

func (s *exchangeRateService) ToBaseCurrency(ctx context.Context, amount decimal.Decimal, fromCode string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	base, err := s.currencySvc.GetBaseCurrency(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	rate, err := s.GetRate(ctx, fromCode, base.CurrencyCode, asOf)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return amount.Mul(rate), rate, nil
}

func (s *exchangeRateService) ListExchangeRates(ctx context.Context, params dto.ListExchangeRatesParams) (*dto.ListExchangeRatesResponse, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var effectiveDate *time.Time
	if params.AsOf != nil {
		day := truncateToDay(*params.AsOf)
		effectiveDate = &day
	}

	rates, total, err := s.rateRepo.ListExchangeRates(ctx, params.FromCurrency, params.ToCurrency, effectiveDate, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}

	resp := &dto.ListExchangeRatesResponse{
		Rates: make([]dto.ExchangeRateResponse, len(rates)),
		Total: total,
	}
	for i := range rates {
		resp.Rates[i] = dto.ToExchangeRateResponse(&rates[i])
	}
	return resp, nil
}

// truncateToDay normalizes a timestamp to midnight UTC. Rates and snapshots
// are stored with day granularity.
func truncateToDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
