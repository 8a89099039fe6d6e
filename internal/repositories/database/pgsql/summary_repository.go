package pgsql

import (
	"context"
	"fmt"
	"time"

	portsrepo "github.com/arcadehub/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxSummaryRepository struct {
	BaseRepository
}

// newPgxSummaryRepository creates the aggregate reader backing balance
// calculation and reconciliation. Each method is a single SQL statement, so
// the sums reflect one consistent snapshot of committed data.
func newPgxSummaryRepository(pool *pgxpool.Pool) portsrepo.EntrySummaryReader {
	return &PgxSummaryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.EntrySummaryReader = (*PgxSummaryRepository)(nil)

// SumEntriesForAccount sums native-currency debit and credit amounts over
// posted transactions dated on or before asOf (nil means no bound).
func (r *PgxSummaryRepository) SumEntriesForAccount(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(e.amount) FILTER (WHERE e.entry_type = 'DEBIT'), 0),
			COALESCE(SUM(e.amount) FILTER (WHERE e.entry_type = 'CREDIT'), 0)
		FROM transaction_entries e
		JOIN transactions t ON t.transaction_id = e.transaction_id
		WHERE e.account_id = $1
		  AND t.status = 'POSTED'
		  AND ($2::timestamptz IS NULL OR t.transaction_date <= $2);
	`
	var totalDebits, totalCredits decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, asOf).Scan(&totalDebits, &totalCredits); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum entries for account %s: %w", accountID, err)
	}
	return totalDebits, totalCredits, nil
}

// SumEntriesForAccountSince sums native-currency debit and credit amounts
// over posted transactions dated strictly after the given time, optionally
// bounded above (inclusive) by until.
func (r *PgxSummaryRepository) SumEntriesForAccountSince(ctx context.Context, accountID string, after time.Time, until *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(e.amount) FILTER (WHERE e.entry_type = 'DEBIT'), 0),
			COALESCE(SUM(e.amount) FILTER (WHERE e.entry_type = 'CREDIT'), 0)
		FROM transaction_entries e
		JOIN transactions t ON t.transaction_id = e.transaction_id
		WHERE e.account_id = $1
		  AND t.status = 'POSTED'
		  AND t.transaction_date > $2
		  AND ($3::timestamptz IS NULL OR t.transaction_date <= $3);
	`
	var totalDebits, totalCredits decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, after, until).Scan(&totalDebits, &totalCredits); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum entries since %s for account %s: %w", after.Format(time.RFC3339), accountID, err)
	}
	return totalDebits, totalCredits, nil
}

// SumBaseCurrencyTotals sums base-currency debit and credit amounts across
// every posted entry in the ledger.
func (r *PgxSummaryRepository) SumBaseCurrencyTotals(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(e.base_currency_amount) FILTER (WHERE e.entry_type = 'DEBIT'), 0),
			COALESCE(SUM(e.base_currency_amount) FILTER (WHERE e.entry_type = 'CREDIT'), 0)
		FROM transaction_entries e
		JOIN transactions t ON t.transaction_id = e.transaction_id
		WHERE t.status = 'POSTED';
	`
	var totalDebits, totalCredits decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query).Scan(&totalDebits, &totalCredits); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum global base currency totals: %w", err)
	}
	return totalDebits, totalCredits, nil
}
