package creditparser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"creditscan/internal/creditparser"
	"creditscan/internal/domain"
)

func TestSplitAccountBlocks(t *testing.T) {
	tests := []struct {
		name   string
		bureau domain.Bureau
		text   string
		want   []string
	}{
		{
			name:   "experian splits on blank lines",
			bureau: domain.BureauExperian,
			text:   "ABC BANK\nAccount Number: 1234\n\n  \nXYZ CARD\nAccount Number: 5678",
			want:   []string{"ABC BANK\nAccount Number: 1234", "XYZ CARD\nAccount Number: 5678"},
		},
		{
			name:   "equifax splits before creditor header lines",
			bureau: domain.BureauEquifax,
			text:   "CAPITAL ONE BANK\nBalance: $100\nDISCOVER CARD\nBalance: $200",
			want:   []string{"CAPITAL ONE BANK\nBalance: $100", "DISCOVER CARD\nBalance: $200"},
		},
		{
			name:   "transunion also splits before account number labels",
			bureau: domain.BureauTransUnion,
			text:   "ABC BANK\nAccount Number: 1234\nBalance: $1\n\nXYZ CARD\nAcct #: 5678",
			want:   []string{"ABC BANK", "Account Number: 1234\nBalance: $1", "XYZ CARD", "Acct #: 5678"},
		},
		{
			name:   "unknown bureau uses the default rule",
			bureau: domain.BureauUnknown,
			text:   "ABC BANK\nBalance: $1\n\nXYZ CARD\nBalance: $2",
			want:   []string{"ABC BANK\nBalance: $1", "XYZ CARD\nBalance: $2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, creditparser.SplitAccountBlocks(tt.text, tt.bureau, 5))
		})
	}
}

func TestSplitAccountBlocks_DropsShortBlocks(t *testing.T) {
	text := "ABC BANK\nBalance: $1\n\nXYZ CARD\nBalance: $2"

	assert.Empty(t, creditparser.SplitAccountBlocks(text, domain.BureauExperian, 100))
	// zero falls back to the default minimum
	assert.Empty(t, creditparser.SplitAccountBlocks(text, domain.BureauExperian, 0))
	assert.Equal(t, []string{"ABC BANK\nBalance: $1", "XYZ CARD\nBalance: $2"},
		creditparser.SplitAccountBlocks(text+"\n\nx", domain.BureauExperian, 20))
}

func TestSplitAccountBlocks_DefaultRuleDetachesCreditorHeader(t *testing.T) {
	fields := "Account Number: 1234XXXX\nAccount Type: Revolving\nBalance: $5,000\n" +
		"Credit Limit: $10,000\nStatus: Open\nDate Opened: 01/15/2015"
	text := "ABC BANK\n" + fields

	blocks := creditparser.SplitAccountBlocks(text, domain.BureauUnknown, 0)

	assert.Equal(t, []string{fields}, blocks)
	for _, b := range blocks {
		assert.NotContains(t, b, "ABC BANK")
	}
	// blank-line bureaus keep the header with its fields
	assert.Equal(t, []string{text}, creditparser.SplitAccountBlocks(text, domain.BureauExperian, 0))
}
