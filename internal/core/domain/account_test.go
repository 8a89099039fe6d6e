package domain_test

import (
	"testing"

	"github.com/arcadehub/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalBalanceForType(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		want        domain.NormalBalance
		wantErr     bool
	}{
		{name: "asset accounts are debit-normal", accountType: domain.Asset, want: domain.NormalDebit},
		{name: "expense accounts are debit-normal", accountType: domain.Expense, want: domain.NormalDebit},
		{name: "liability accounts are credit-normal", accountType: domain.Liability, want: domain.NormalCredit},
		{name: "equity accounts are credit-normal", accountType: domain.Equity, want: domain.NormalCredit},
		{name: "revenue accounts are credit-normal", accountType: domain.Revenue, want: domain.NormalCredit},
		{name: "unknown account type", accountType: domain.AccountType("GOODWILL"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.NormalBalanceForType(tt.accountType)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransaction_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.TransactionStatus
		canPost bool
		canVoid bool
	}{
		{name: "pending can post and void", status: domain.Pending, canPost: true, canVoid: true},
		{name: "posted can only void", status: domain.Posted, canPost: false, canVoid: true},
		{name: "voided is terminal", status: domain.Voided, canPost: false, canVoid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := domain.Transaction{Status: tt.status}
			assert.Equal(t, tt.canPost, txn.CanPost())
			assert.Equal(t, tt.canVoid, txn.CanVoid())
		})
	}
}

func TestTransactionEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   domain.TransactionEntry
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid debit entry",
			entry: domain.TransactionEntry{
				AccountID:    "acc_123",
				EntryType:    domain.Debit,
				Amount:       decimal.NewFromInt(100),
				CurrencyCode: "USD",
			},
			wantErr: false,
		},
		{
			name: "missing account",
			entry: domain.TransactionEntry{
				EntryType: domain.Credit,
				Amount:    decimal.NewFromInt(100),
			},
			wantErr: true,
			errMsg:  "account ID is required",
		},
		{
			name: "zero amount",
			entry: domain.TransactionEntry{
				AccountID: "acc_123",
				EntryType: domain.Debit,
				Amount:    decimal.Zero,
			},
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name: "negative amount",
			entry: domain.TransactionEntry{
				AccountID: "acc_123",
				EntryType: domain.Credit,
				Amount:    decimal.NewFromInt(-5),
			},
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name: "bad entry type",
			entry: domain.TransactionEntry{
				AccountID: "acc_123",
				EntryType: domain.EntryType("TRANSFER"),
				Amount:    decimal.NewFromInt(100),
			},
			wantErr: true,
			errMsg:  "must be DEBIT or CREDIT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
