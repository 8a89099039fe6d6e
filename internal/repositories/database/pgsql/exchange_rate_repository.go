package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
	portsrepo "github.com/arcadehub/ledger_engine/internal/core/ports/repositories"
	"github.com/arcadehub/ledger_engine/internal/models"
	"github.com/arcadehub/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryWithTx {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateRepositoryWithTx = (*PgxExchangeRateRepository)(nil)

const exchangeRateSelect = `
	SELECT exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective, created_at, created_by, last_updated_at, last_updated_by
	FROM exchange_rates`

// UpsertExchangeRate inserts a rate or replaces the value stored for the same
// (from, to, effective date), writing the audit row in the same transaction.
func (r *PgxExchangeRateRepository) UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate, audit domain.AuditLog) error {
	modelRate := mapping.ToModelExchangeRate(rate)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO exchange_rates (exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (from_currency_code, to_currency_code, date_effective) DO UPDATE SET
			rate = EXCLUDED.rate,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = tx.Exec(ctx, query,
		modelRate.ExchangeRateID,
		modelRate.FromCurrencyCode,
		modelRate.ToCurrencyCode,
		modelRate.Rate,
		modelRate.DateEffective,
		modelRate.CreatedAt,
		modelRate.CreatedBy,
		modelRate.LastUpdatedAt,
		modelRate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate %s->%s: %w", modelRate.FromCurrencyCode, modelRate.ToCurrencyCode, err)
	}

	if err := appendAuditInTx(ctx, tx, audit); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindLatestRate retrieves the most recent rate for the exact pair with an
// effective date on or before asOf, or nil when none exists.
func (r *PgxExchangeRateRepository) FindLatestRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	query := exchangeRateSelect + `
		WHERE from_currency_code = $1 AND to_currency_code = $2 AND date_effective <= $3
		ORDER BY date_effective DESC
		LIMIT 1;
	`
	rows, err := r.Pool.Query(ctx, query, fromCurrencyCode, toCurrencyCode, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rate %s->%s: %w", fromCurrencyCode, toCurrencyCode, err)
	}
	defer rows.Close()

	modelRate, err := pgx.CollectOneRow(rows, scanExchangeRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan exchange rate: %w", err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// ListExchangeRates retrieves rates with optional pair and date filters plus
// offset pagination, newest effective date first.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, fromCurrency, toCurrency *string, effectiveDate *time.Time, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	filter := `
		WHERE ($1::text IS NULL OR from_currency_code = $1)
		  AND ($2::text IS NULL OR to_currency_code = $2)
		  AND ($3::timestamptz IS NULL OR date_effective <= $3)
	`

	var total int
	countQuery := `SELECT COUNT(*) FROM exchange_rates` + filter
	if err := r.Pool.QueryRow(ctx, countQuery, fromCurrency, toCurrency, effectiveDate).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count exchange rates: %w", err)
	}

	query := exchangeRateSelect + filter + `
		ORDER BY date_effective DESC, from_currency_code, to_currency_code
		LIMIT $4 OFFSET $5;
	`
	rows, err := r.Pool.Query(ctx, query, fromCurrency, toCurrency, effectiveDate, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, scanExchangeRate)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan exchange rates: %w", err)
	}

	return mapping.ToDomainExchangeRateSlice(modelRates), total, nil
}

func scanExchangeRate(row pgx.CollectableRow) (models.ExchangeRate, error) {
	var rate models.ExchangeRate
	err := row.Scan(
		&rate.ExchangeRateID,
		&rate.FromCurrencyCode,
		&rate.ToCurrencyCode,
		&rate.Rate,
		&rate.DateEffective,
		&rate.CreatedAt,
		&rate.CreatedBy,
		&rate.LastUpdatedAt,
		&rate.LastUpdatedBy,
	)
	return rate, err
}
