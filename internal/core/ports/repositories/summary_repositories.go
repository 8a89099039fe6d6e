package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// EntrySummaryReader provides the aggregate queries backing the balance
// calculator and the reconciliation engine. Every method considers only
// entries of Posted transactions; each runs as a single SQL statement so the
// read is a consistent statement-level snapshot.
type EntrySummaryReader interface {
	// SumEntriesForAccount sums the account's debit and credit entry amounts
	// (native currency) over posted transactions dated on or before asOf.
	// A nil asOf means no upper bound.
	SumEntriesForAccount(ctx context.Context, accountID string, asOf *time.Time) (totalDebits, totalCredits decimal.Decimal, err error)

	// SumEntriesForAccountSince sums the account's debit and credit entry
	// amounts over posted transactions dated strictly after the given date.
	// A non-nil until bounds the window inclusively from above.
	SumEntriesForAccountSince(ctx context.Context, accountID string, after time.Time, until *time.Time) (totalDebits, totalCredits decimal.Decimal, err error)

	// SumBaseCurrencyTotals sums base-currency debit and credit amounts across
	// every posted entry in the whole ledger (global double-entry check).
	SumBaseCurrencyTotals(ctx context.Context) (totalDebits, totalCredits decimal.Decimal, err error)
}
