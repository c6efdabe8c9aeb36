package creditparser_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditscan/internal/creditparser"
	"creditscan/internal/domain"
)

var ruleStrategies = []creditparser.Strategy{
	creditparser.StrategyStrict,
	creditparser.StrategyFuzzy,
	creditparser.StrategyAggressive,
}

func TestRuleExtractor_OpenRevolvingAccount(t *testing.T) {
	block := "ABC BANK\nAccount Type: Revolving\nDate Opened: 01/15/2015\nBalance: $5,000\nCredit Limit: $10,000\nStatus: Open"

	for _, s := range ruleStrategies {
		t.Run(s.String(), func(t *testing.T) {
			ex := creditparser.NewRuleExtractor(s, creditparser.DefaultOptions())
			accounts := ex.Accounts(block, domain.BureauUnknown)
			require.Len(t, accounts, 1)

			a := accounts[0]
			assert.Equal(t, "ABC BANK", a.CreditorName)
			require.NotNil(t, a.CurrentBalance)
			assert.True(t, decimal.NewFromInt(5000).Equal(*a.CurrentBalance))
			require.NotNil(t, a.CreditLimit)
			assert.True(t, decimal.NewFromInt(10000).Equal(*a.CreditLimit))
			require.NotNil(t, a.UtilizationPercentage)
			assert.Equal(t, 50, *a.UtilizationPercentage)
			assert.False(t, a.IsNegative)
			assert.Empty(t, a.Bureaus)
		})
	}
}

func TestRuleExtractor_CollectionAccount(t *testing.T) {
	block := "MIDLAND FUNDING LLC\nAccount Type: Open Account\nStatus: Collection\nBalance: $1,250\nDate Opened: 06/01/2020"

	for _, s := range ruleStrategies {
		t.Run(s.String(), func(t *testing.T) {
			ex := creditparser.NewRuleExtractor(s, creditparser.DefaultOptions())
			accounts := ex.Accounts(block, domain.BureauEquifax)
			require.Len(t, accounts, 1)
			assert.True(t, accounts[0].IsNegative)

			items := ex.NegativeItems("", accounts)
			require.Len(t, items, 1)
			assert.Equal(t, domain.NegativeCollection, items[0].ItemType)
			assert.GreaterOrEqual(t, items[0].SeverityScore, 8)
			assert.Equal(t, "MIDLAND FUNDING LLC", items[0].CreditorName)
		})
	}
}

func TestRuleExtractor_BlockWithoutCreditorRejected(t *testing.T) {
	block := "Account Type: Revolving\nDate Opened: 01/15/2015\nBalance: $5,000\nCredit Limit: $10,000\nStatus: Open, never late"
	ex := creditparser.NewRuleExtractor(creditparser.StrategyStrict, creditparser.DefaultOptions())
	assert.Empty(t, ex.Accounts(block, domain.BureauExperian))
}

func TestRuleExtractor_Scores(t *testing.T) {
	text := "FICO Score: 720\nVantageScore: 680\nScore: 999\nCredit Score: 910"
	ex := creditparser.NewRuleExtractor(creditparser.StrategyStrict, creditparser.DefaultOptions())

	scores := ex.Scores(text, domain.BureauTransUnion)
	require.Len(t, scores, 2)
	assert.Equal(t, 720, scores[0].Score)
	assert.Equal(t, domain.ScoreFICO, scores[0].ScoreType)
	assert.Equal(t, 680, scores[1].Score)
	assert.Equal(t, domain.ScoreVantage, scores[1].ScoreType)
	for _, s := range scores {
		assert.GreaterOrEqual(t, s.Score, 300)
		assert.LessOrEqual(t, s.Score, 850)
		assert.Equal(t, 300, s.ScaleMin)
		assert.Equal(t, 850, s.ScaleMax)
		assert.Equal(t, domain.BureauTransUnion, s.Bureau)
		assert.NotNil(t, s.Factors)
	}
}

func TestRuleExtractor_Inquiries(t *testing.T) {
	text := "CREDIT KARMA 01/01/2023\nCHASE BANK 01/01/2023\nCHASE BANK 01/01/2023"

	for _, s := range ruleStrategies {
		t.Run(s.String(), func(t *testing.T) {
			ex := creditparser.NewRuleExtractor(s, creditparser.DefaultOptions())
			inquiries := ex.Inquiries(text, domain.BureauUnknown)
			require.Len(t, inquiries, 2)
			assert.Equal(t, "CREDIT KARMA", inquiries[0].InquirerName)
			assert.Equal(t, domain.InquirySoft, inquiries[0].InquiryType)
			assert.Equal(t, "CHASE BANK", inquiries[1].InquirerName)
			assert.Equal(t, domain.InquiryHard, inquiries[1].InquiryType)
		})
	}
}

func TestRuleExtractor_InquiryLabelsRejected(t *testing.T) {
	text := "Date Opened 01/15/2015\nLast Reported 02/01/2024\nCAPITAL ONE 03/03/2023"
	ex := creditparser.NewRuleExtractor(creditparser.StrategyAggressive, creditparser.DefaultOptions())

	inquiries := ex.Inquiries(text, domain.BureauUnknown)
	require.Len(t, inquiries, 1)
	assert.Equal(t, "CAPITAL ONE", inquiries[0].InquirerName)
}

func TestRuleExtractor_InquiryNamesContainingLabelWords(t *testing.T) {
	text := "CONSOLIDATED CREDIT 01/05/2023\nELASTIC 02/01/2023\nUPDATE FINANCIAL 03/01/2023\n" +
		"PAGEANT MOTORS 04/01/2023\nDate Opened 01/15/2015\nScore as of 05/01/2023\nCHASE BANK 01/01/2023"

	for _, level := range []creditparser.Strategy{creditparser.StrategyStrict, creditparser.StrategyAggressive} {
		ex := creditparser.NewRuleExtractor(level, creditparser.DefaultOptions())

		var names []string
		for _, inq := range ex.Inquiries(text, domain.BureauUnknown) {
			names = append(names, inq.InquirerName)
		}
		assert.Contains(t, names, "CONSOLIDATED CREDIT")
		assert.Contains(t, names, "ELASTIC")
		assert.Contains(t, names, "UPDATE FINANCIAL")
		assert.Contains(t, names, "PAGEANT MOTORS")
		assert.Contains(t, names, "CHASE BANK")
		for _, n := range names {
			assert.NotContains(t, n, "Date Opened")
			assert.NotContains(t, n, "Score")
		}
	}
}

func TestRuleExtractor_SoftInquirersConfigurable(t *testing.T) {
	opts := creditparser.DefaultOptions()
	opts.SoftInquirers = []string{"Chase Bank"}
	ex := creditparser.NewRuleExtractor(creditparser.StrategyStrict, opts)

	inquiries := ex.Inquiries("CHASE BANK 01/01/2023\nCREDIT KARMA 01/01/2023", domain.BureauUnknown)
	require.Len(t, inquiries, 2)
	assert.Equal(t, domain.InquirySoft, inquiries[0].InquiryType)
	assert.Equal(t, domain.InquiryHard, inquiries[1].InquiryType)
}

func TestRuleExtractor_SoftInquiryFuzzyMatch(t *testing.T) {
	ex := creditparser.NewRuleExtractor(creditparser.StrategyStrict, creditparser.DefaultOptions())

	inquiries := ex.Inquiries("CREDT KARMA 01/01/2023\nCREDIT KARMA INC 02/02/2023", domain.BureauUnknown)
	require.Len(t, inquiries, 2)
	assert.Equal(t, domain.InquirySoft, inquiries[0].InquiryType)
	assert.Equal(t, domain.InquirySoft, inquiries[1].InquiryType)
}

func TestRuleExtractor_PersonalInfoFuzzy(t *testing.T) {
	text := "Consumer: Jane Q Public\nborn on 02/03/1975\nSSN on file XXX-XX-9876\n" +
		"Lives at 77 ELM STREET, SPRINGFIELD, IL 62704\nCall 555.222.3333 or (555) 222-3333\nPrevious Employer: GLOBEX\nCreditor Name: ACME BANK"

	t.Run("strict_finds_only_labeled", func(t *testing.T) {
		info := creditparser.NewRuleExtractor(creditparser.StrategyStrict, creditparser.DefaultOptions()).PersonalInfo(text)
		require.NotNil(t, info)
		assert.Empty(t, info.FullName)
		assert.Empty(t, info.SSNLast4)
		assert.Empty(t, info.PhoneNumbers)
		assert.Equal(t, []string{"GLOBEX"}, info.PreviousEmployers)
		assert.Empty(t, info.CurrentEmployer)
	})

	t.Run("fuzzy", func(t *testing.T) {
		info := creditparser.NewRuleExtractor(creditparser.StrategyFuzzy, creditparser.DefaultOptions()).PersonalInfo(text)
		require.NotNil(t, info)
		assert.Empty(t, info.FullName)
		assert.Equal(t, "9876", info.SSNLast4)
		assert.Equal(t, "02/03/1975", info.DateOfBirth)
		require.NotNil(t, info.CurrentAddress)
		assert.Equal(t, "77 ELM STREET", info.CurrentAddress.Street)
		assert.Equal(t, "SPRINGFIELD", info.CurrentAddress.City)
		assert.Equal(t, "IL", info.CurrentAddress.State)
		assert.Equal(t, "62704", info.CurrentAddress.ZipCode)
		assert.Equal(t, []string{"(555) 222-3333"}, info.PhoneNumbers)
		assert.Empty(t, info.CurrentEmployer)
	})
}

func TestRuleExtractor_PersonalInfoNothingFound(t *testing.T) {
	ex := creditparser.NewRuleExtractor(creditparser.StrategyAggressive, creditparser.DefaultOptions())
	assert.Nil(t, ex.PersonalInfo("lowercase words only here"))
}

func TestRecoveryExtractor(t *testing.T) {
	ex := creditparser.NewRecoveryExtractor()
	assert.Equal(t, creditparser.StrategyRecovery, ex.Strategy())

	text := "noise\nCAPITAL ONE\nnoise line\nacct # 4111-2222\nssn xxx-xx-4321"
	info := ex.PersonalInfo(text)
	require.NotNil(t, info)
	assert.Equal(t, "4321", info.SSNLast4)

	accounts := ex.Accounts(text, domain.BureauUnknown)
	require.Len(t, accounts, 1)
	assert.Equal(t, "CAPITAL ONE", accounts[0].CreditorName)
	assert.Equal(t, "4111-2222", accounts[0].AccountNumber)

	assert.Empty(t, ex.Inquiries(text, domain.BureauUnknown))
	assert.Empty(t, ex.Scores("FICO Score: 720", domain.BureauUnknown))
	assert.Empty(t, ex.NegativeItems("", accounts))
}

func TestRecoveryExtractor_TokenWithoutCreditor(t *testing.T) {
	ex := creditparser.NewRecoveryExtractor()
	assert.Empty(t, ex.Accounts("account 12345678", domain.BureauUnknown))
	assert.Nil(t, ex.PersonalInfo("no tokens"))
}

func TestDefaultRegistry(t *testing.T) {
	r := creditparser.DefaultRegistry(creditparser.DefaultOptions())
	tests := []struct {
		tier domain.QualityTier
		want creditparser.Strategy
	}{
		{domain.TierHigh, creditparser.StrategyStrict},
		{domain.TierMedium, creditparser.StrategyFuzzy},
		{domain.TierLow, creditparser.StrategyAggressive},
		{domain.TierRecovery, creditparser.StrategyRecovery},
	}
	for _, tt := range tests {
		ex := r.Get(tt.tier)
		require.NotNil(t, ex)
		assert.Equal(t, tt.want, ex.Strategy())
	}
	assert.Nil(t, creditparser.NewRegistry().Get(domain.TierHigh))
}
