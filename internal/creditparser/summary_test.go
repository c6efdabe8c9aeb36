package creditparser_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditscan/internal/creditparser"
	"creditscan/internal/domain"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestSummarize(t *testing.T) {
	accounts := []domain.CreditAccount{
		{CreditorName: "A", CurrentBalance: dec(2500), CreditLimit: dec(5000), AccountStatus: "Open"},
		{CreditorName: "B", CurrentBalance: dec(500), CreditLimit: dec(5000), AccountStatus: "Closed"},
		{CreditorName: "C", CurrentBalance: dec(1250), AccountStatus: "Collection", IsNegative: true},
		{CreditorName: "D", DateClosed: "01/2020"},
	}

	s := creditparser.Summarize(accounts)
	assert.Equal(t, 4, s.TotalAccounts)
	assert.Equal(t, 2, s.OpenAccounts)
	assert.Equal(t, 2, s.ClosedAccounts)
	assert.Equal(t, 1, s.NegativeAccounts)
	assert.True(t, decimal.NewFromInt(10000).Equal(s.TotalCreditLimit))
	assert.True(t, decimal.NewFromInt(4250).Equal(s.TotalBalance))
	assert.True(t, decimal.NewFromInt(7000).Equal(s.AvailableCredit))
	assert.Equal(t, 30, s.OverallUtilization)
}

func TestSummarize_NoLimits(t *testing.T) {
	s := creditparser.Summarize([]domain.CreditAccount{{CreditorName: "A", CurrentBalance: dec(100)}})
	assert.Equal(t, 0, s.OverallUtilization)
	assert.True(t, s.AvailableCredit.IsZero())
	assert.True(t, s.TotalCreditLimit.IsZero())

	empty := creditparser.Summarize(nil)
	assert.Equal(t, 0, empty.TotalAccounts)
	assert.True(t, empty.TotalBalance.IsZero())
}

func TestSummarize_OverLimit(t *testing.T) {
	s := creditparser.Summarize([]domain.CreditAccount{{CreditorName: "A", CurrentBalance: dec(1200), CreditLimit: dec(1000)}})
	assert.Equal(t, 120, s.OverallUtilization)
	assert.True(t, s.AvailableCredit.IsZero())
}

func TestUtilization(t *testing.T) {
	tests := []struct {
		name           string
		balance, limit *decimal.Decimal
		want           *int
	}{
		{"half", dec(5000), dec(10000), intPtr(50)},
		{"rounds", dec(1), dec(3), intPtr(33)},
		{"zero limit", dec(10), dec(0), nil},
		{"missing balance", nil, dec(100), nil},
		{"missing limit", dec(100), nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := creditparser.Utilization(tt.balance, tt.limit)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func intPtr(v int) *int { return &v }
