package accounting_test

import (
	"testing"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
	"github.com/arcadehub/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSignedBalance(t *testing.T) {
	debits := decimal.NewFromInt(150)
	credits := decimal.NewFromInt(40)

	assert.True(t, decimal.NewFromInt(110).Equal(accounting.SignedBalance(domain.NormalDebit, debits, credits)))
	assert.True(t, decimal.NewFromInt(-110).Equal(accounting.SignedBalance(domain.NormalCredit, debits, credits)))
}

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(25)

	tests := []struct {
		name      string
		entryType domain.EntryType
		normal    domain.NormalBalance
		want      decimal.Decimal
	}{
		{name: "debit to debit-normal grows", entryType: domain.Debit, normal: domain.NormalDebit, want: amount},
		{name: "credit to debit-normal shrinks", entryType: domain.Credit, normal: domain.NormalDebit, want: amount.Neg()},
		{name: "credit to credit-normal grows", entryType: domain.Credit, normal: domain.NormalCredit, want: amount},
		{name: "debit to credit-normal shrinks", entryType: domain.Debit, normal: domain.NormalCredit, want: amount.Neg()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.SignedAmount(tt.entryType, tt.normal, amount)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestSumBaseCurrencyTotals(t *testing.T) {
	entries := []domain.TransactionEntry{
		{EntryType: domain.Debit, BaseCurrencyAmount: decimal.NewFromInt(100)},
		{EntryType: domain.Debit, BaseCurrencyAmount: decimal.NewFromInt(10)},
		{EntryType: domain.Credit, BaseCurrencyAmount: decimal.NewFromInt(110)},
	}

	totalDebits, totalCredits := accounting.SumBaseCurrencyTotals(entries)
	assert.True(t, decimal.NewFromInt(110).Equal(totalDebits))
	assert.True(t, decimal.NewFromInt(110).Equal(totalCredits))
	assert.True(t, totalDebits.Equal(totalCredits))
}
