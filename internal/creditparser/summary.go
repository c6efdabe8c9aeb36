package creditparser

import (
	"strings"

	"github.com/shopspring/decimal"

	"creditscan/internal/domain"
)

// Summarize recomputes the account summary. Overall utilization divides the
// balances of accounts that carry a positive limit by the sum of those limits;
// with no limits it is 0.
func Summarize(accounts []domain.CreditAccount) domain.AccountSummary {
	s := domain.AccountSummary{
		TotalAccounts:    len(accounts),
		TotalCreditLimit: decimal.Zero,
		TotalBalance:     decimal.Zero,
		AvailableCredit:  decimal.Zero,
	}
	limitedBalance := decimal.Zero
	for i := range accounts {
		a := &accounts[i]
		if isClosed(a) {
			s.ClosedAccounts++
		} else {
			s.OpenAccounts++
		}
		if a.IsNegative {
			s.NegativeAccounts++
		}
		if a.CurrentBalance != nil {
			s.TotalBalance = s.TotalBalance.Add(*a.CurrentBalance)
		}
		if a.CreditLimit != nil && a.CreditLimit.IsPositive() {
			s.TotalCreditLimit = s.TotalCreditLimit.Add(*a.CreditLimit)
			if a.CurrentBalance != nil {
				limitedBalance = limitedBalance.Add(*a.CurrentBalance)
			}
		}
	}

	if s.TotalCreditLimit.IsPositive() {
		s.OverallUtilization = int(limitedBalance.Div(s.TotalCreditLimit).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
		if avail := s.TotalCreditLimit.Sub(limitedBalance); avail.IsPositive() {
			s.AvailableCredit = avail
		}
	}
	return s
}

func isClosed(a *domain.CreditAccount) bool {
	return a.DateClosed != "" || strings.Contains(strings.ToLower(a.AccountStatus), "closed")
}
