package creditparser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"creditscan/internal/domain"
)

// negativeKeywordOrder is checked in order; the first contained keyword wins.
var negativeKeywordOrder = []struct {
	keywords []string
	itemType domain.NegativeItemType
}{
	{[]string{"collection"}, domain.NegativeCollection},
	{[]string{"charge"}, domain.NegativeChargeOff},
	{[]string{"late", "delinquent", "past due"}, domain.NegativeLatePayment},
	{[]string{"bankrupt"}, domain.NegativeBankruptcy},
	{[]string{"foreclos"}, domain.NegativeForeclosure},
	{[]string{"tax lien", "lien"}, domain.NegativeTaxLien},
	{[]string{"judgment", "judgement"}, domain.NegativeJudgment},
}

const (
	baseSeverity          = 5
	sectionItemSeverity   = 7
	collectionSeverityAdd = 3
	chargeOffSeverityAdd  = 4
	pastDueSeverityAdd    = 2
)

var pastDueSeverityThreshold = decimal.NewFromInt(1000)

// ClassifyNegative maps a status onto the negative item taxonomy, defaulting to collection.
func ClassifyNegative(status string) domain.NegativeItemType {
	s := strings.ToLower(status)
	for _, entry := range negativeKeywordOrder {
		for _, k := range entry.keywords {
			if strings.Contains(s, k) {
				return entry.itemType
			}
		}
	}
	return domain.NegativeCollection
}

// SeverityScore scores a negative status from 1 to 10.
func SeverityScore(status string, pastDue *decimal.Decimal) int {
	s := strings.ToLower(status)
	score := baseSeverity
	if strings.Contains(s, "collection") {
		score += collectionSeverityAdd
	}
	if strings.Contains(s, "charge") {
		score += chargeOffSeverityAdd
	}
	if pastDue != nil && pastDue.GreaterThan(pastDueSeverityThreshold) {
		score += pastDueSeverityAdd
	}
	return clamp(score, 1, 10)
}

func negativeItemFromAccount(a domain.CreditAccount) domain.NegativeItem {
	item := domain.NegativeItem{
		ItemType:         ClassifyNegative(a.AccountStatus),
		CreditorName:     a.CreditorName,
		OriginalCreditor: a.OriginalCreditor,
		Amount:           a.CurrentBalance,
		DateOccurred:     a.DateOpened,
		DateReported:     a.LastActivity,
		Status:           a.AccountStatus,
		SeverityScore:    SeverityScore(a.AccountStatus, a.PastDueAmount),
		Description:      fmt.Sprintf("%s reported as %s", a.CreditorName, a.AccountStatus),
	}
	if item.Amount == nil {
		item.Amount = a.PastDueAmount
	}
	if a.DateClosed != "" {
		item.DateOccurred = a.DateClosed
	}
	if a.OriginalCreditor != "" && item.ItemType == domain.NegativeCollection {
		item.CollectionAgency = a.CreditorName
	}
	return item
}

// negativeItems derives items from negative accounts, then adds one item per
// collections-section block whose creditor is not already covered.
func negativeItems(section string, accounts []domain.CreditAccount, level Strategy) []domain.NegativeItem {
	out := []domain.NegativeItem{}
	seen := map[string]bool{}
	for i := range accounts {
		if !accounts[i].IsNegative {
			continue
		}
		item := negativeItemFromAccount(accounts[i])
		seen[strings.ToUpper(item.CreditorName)] = true
		out = append(out, item)
	}
	if section == "" {
		return out
	}

	for _, block := range splitBlankBlocks(section, negativeBlockMinimum) {
		vals := applyRules(accountRules, level, block)
		creditor := vals.first(fieldCreditor)
		if creditor == "" {
			creditor = applyRules(accountRules, StrategyAggressive, block).first(fieldCreditor)
		}
		if len(creditor) <= 2 || seen[strings.ToUpper(creditor)] {
			continue
		}
		seen[strings.ToUpper(creditor)] = true

		status := vals.first(fieldStatus)
		item := domain.NegativeItem{
			ItemType:         domain.NegativeCollection,
			CreditorName:     creditor,
			OriginalCreditor: vals.first(fieldOriginalCreditor),
			Amount:           decimalPtr(vals.first(fieldBalance)),
			DateOccurred:     vals.first(fieldDateOpened),
			DateReported:     vals.first(fieldLastActivity),
			Status:           status,
			SeverityScore:    sectionItemSeverity,
			Description:      "listed in negative items section",
		}
		if status != "" {
			item.ItemType = ClassifyNegative(status)
		}
		if item.Amount == nil {
			item.Amount = decimalPtr(vals.first(fieldPastDue))
		}
		if item.OriginalCreditor != "" {
			item.CollectionAgency = creditor
		}
		out = append(out, item)
	}
	return out
}
