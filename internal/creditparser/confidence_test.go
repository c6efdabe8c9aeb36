package creditparser_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"creditscan/internal/creditparser"
	"creditscan/internal/domain"
)

func TestConfidence(t *testing.T) {
	balance := decimal.NewFromInt(10)
	full := &domain.PersonalInfo{
		FullName:       "JOHN SMITH",
		DateOfBirth:    "01/01/1980",
		CurrentAddress: &domain.Address{FullAddress: "1 MAIN ST"},
		SSNLast4:       "1234",
		PhoneNumbers:   []string{"(555) 111-2222"},
	}
	account := domain.CreditAccount{CreditorName: "ABC BANK", CurrentBalance: &balance, DateOpened: "01/2020", AccountStatus: "Open"}

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0, creditparser.Confidence(nil, nil, nil, nil))
	})

	t.Run("everything", func(t *testing.T) {
		got := creditparser.Confidence(full, []domain.CreditAccount{account},
			[]domain.NegativeItem{{CreditorName: "X"}}, []domain.CreditScore{{Score: 700}})
		assert.Equal(t, 100, got)
	})

	t.Run("account without details", func(t *testing.T) {
		assert.Equal(t, 10, creditparser.Confidence(nil, []domain.CreditAccount{{CreditorName: "ABC BANK"}}, nil, nil))
	})

	t.Run("account fields counted once across accounts", func(t *testing.T) {
		accounts := []domain.CreditAccount{{CreditorName: "A", CurrentBalance: &balance}, {CreditorName: "B", CurrentBalance: &balance, AccountStatus: "Open"}}
		assert.Equal(t, 35, creditparser.Confidence(nil, accounts, nil, nil))
	})

	t.Run("personal fields", func(t *testing.T) {
		assert.Equal(t, 25, creditparser.Confidence(full, nil, nil, nil))
		assert.Equal(t, 5, creditparser.Confidence(&domain.PersonalInfo{SSNLast4: "1234"}, nil, nil, nil))
	})
}
