package accounting

import (
	"github.com/arcadehub/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedBalance folds debit and credit totals into a single balance using
// the account's normal balance convention: a debit-normal account grows with
// debits, a credit-normal account grows with credits.
func SignedBalance(normal domain.NormalBalance, totalDebits, totalCredits decimal.Decimal) decimal.Decimal {
	if normal == domain.NormalDebit {
		return totalDebits.Sub(totalCredits)
	}
	return totalCredits.Sub(totalDebits)
}

// SignedAmount returns the contribution of a single entry to an account's
// balance under the account's normal balance convention.
func SignedAmount(entryType domain.EntryType, normal domain.NormalBalance, amount decimal.Decimal) decimal.Decimal {
	sameSide := (entryType == domain.Debit && normal == domain.NormalDebit) ||
		(entryType == domain.Credit && normal == domain.NormalCredit)
	if sameSide {
		return amount
	}
	return amount.Neg()
}

// SumBaseCurrencyTotals sums the base-currency amounts of a set of entries
// into separate debit and credit totals. The double-entry invariant requires
// the two totals to be exactly equal for every posted transaction.
func SumBaseCurrencyTotals(entries []domain.TransactionEntry) (totalDebits, totalCredits decimal.Decimal) {
	totalDebits = decimal.Zero
	totalCredits = decimal.Zero
	for _, entry := range entries {
		if entry.EntryType == domain.Debit {
			totalDebits = totalDebits.Add(entry.BaseCurrencyAmount)
		} else {
			totalCredits = totalCredits.Add(entry.BaseCurrencyAmount)
		}
	}
	return totalDebits, totalCredits
}
