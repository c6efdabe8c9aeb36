package creditparser

import "creditscan/internal/domain"

const (
	personalFieldPoints = 5
	anyAccountPoints    = 10
	balancePoints       = 10
	openDatePoints      = 15
	statusPoints        = 15
	negativeItemsPoints = 15
	scoresPoints        = 10
	maxConfidence       = 100
)

// Confidence scores extraction coverage from 0 to 100. It measures which
// categories were populated, not whether the values are correct.
func Confidence(info *domain.PersonalInfo, accounts []domain.CreditAccount, negatives []domain.NegativeItem, scores []domain.CreditScore) int {
	total := 0
	if info != nil {
		for _, present := range []bool{
			info.FullName != "",
			info.DateOfBirth != "",
			info.CurrentAddress != nil,
			info.SSNLast4 != "",
			len(info.PhoneNumbers) > 0,
		} {
			if present {
				total += personalFieldPoints
			}
		}
	}

	if len(accounts) > 0 {
		total += anyAccountPoints
		var balance, opened, status bool
		for i := range accounts {
			balance = balance || accounts[i].CurrentBalance != nil
			opened = opened || accounts[i].DateOpened != ""
			status = status || accounts[i].AccountStatus != ""
		}
		if balance {
			total += balancePoints
		}
		if opened {
			total += openDatePoints
		}
		if status {
			total += statusPoints
		}
	}

	if len(negatives) > 0 {
		total += negativeItemsPoints
	}
	if len(scores) > 0 {
		total += scoresPoints
	}
	return clamp(total, 0, maxConfidence)
}
