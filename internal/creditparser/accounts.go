package creditparser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"creditscan/internal/domain"
)

const (
	fieldCreditor         = "creditor"
	fieldAccountNumber    = "account_number"
	fieldAccountType      = "account_type"
	fieldStatus           = "status"
	fieldOriginalCreditor = "original_creditor"
	fieldDateOpened       = "date_opened"
	fieldDateClosed       = "date_closed"
	fieldLastActivity     = "last_activity"
	fieldBalance          = "balance"
	fieldCreditLimit      = "credit_limit"
	fieldHighCredit       = "high_credit"
	fieldMonthlyPayment   = "monthly_payment"
	fieldPastDue          = "past_due"
)

const (
	accountDatePattern = `\d{1,2}/\d{1,2}/\d{2,4}|\d{1,2}/\d{4}|\d{4}-\d{2}(?:-\d{2})?`
	amountPattern      = `[\d,]+(?:\.\d{1,2})?`
)

// dateLabels and moneyLabels disambiguate by the label text; order matters.
var dateLabels = []labelKeyword{
	{"open", fieldDateOpened},
	{"closed", fieldDateClosed},
}

var moneyLabels = []labelKeyword{
	{"past due", fieldPastDue},
	{"high", fieldHighCredit},
	{"limit", fieldCreditLimit},
	{"payment", fieldMonthlyPayment},
	{"balance", fieldBalance},
	{"owed", fieldBalance},
	{"amount", fieldBalance},
}

var accountRules = []fieldRule{
	// strict
	{field: fieldCreditor, level: StrategyStrict, group: 1, normalize: normalizeCreditor,
		pattern: regexp.MustCompile(`(?im)^[ \t]*(?:creditor|creditor name|company|company name|subscriber|subscriber name|lender)[ \t]*:[ \t]*(.+)$`)},
	{field: fieldCreditor, level: StrategyStrict, group: 1, normalize: normalizeCreditor,
		pattern: regexp.MustCompile(`\A[ \t]*([A-Z0-9][A-Z0-9&.,'/\- ]{2,60}?)[ \t]*(?:\n|\z)`)},
	{field: fieldAccountNumber, level: StrategyStrict, group: 1, normalize: normalizeAccountNumber,
		pattern: regexp.MustCompile(`(?im)\b(?:account|acct)\.?[ \t]*(?:number|num|no\.?|#)[ \t]*[:#]?[ \t]*([A-Z0-9*][A-Z0-9*\-]{3,24})`)},
	{field: fieldAccountType, level: StrategyStrict, group: 1,
		pattern: regexp.MustCompile(`(?im)^[ \t]*(?:account type|type of account|loan type|type)[ \t]*:[ \t]*(.+)$`)},
	{field: fieldStatus, level: StrategyStrict, group: 1,
		pattern: regexp.MustCompile(`(?im)^[ \t]*(?:account status|pay status|payment status|status|condition)[ \t]*:[ \t]*(.+)$`)},
	{field: fieldOriginalCreditor, level: StrategyStrict, group: 1,
		pattern: regexp.MustCompile(`(?im)^[ \t]*original creditor[ \t]*:[ \t]*(.+)$`)},
	{level: StrategyStrict, group: 2, disambiguate: labelDisambiguator(1, dateLabels, fieldLastActivity),
		pattern: regexp.MustCompile(`(?im)\b(date opened|open date|opened|date closed|closed date|closed|date of last activity|last activity|last reported|date reported|last payment(?: date)?|date of last payment)[ \t]*:[ \t]*(` + accountDatePattern + `)`)},
	{level: StrategyStrict, group: 2, normalize: normalizeMoney, disambiguate: labelDisambiguator(1, moneyLabels, ""),
		pattern: regexp.MustCompile(`(?im)\b(amount past due|past due amount|past due|highest balance|high balance|high credit|credit limit|limit|monthly payment|scheduled payment|current balance|balance owed|balance|amount owed|amount)[ \t]*:[ \t]*\$?[ \t]*(` + amountPattern + `)`)},

	// fuzzy
	{field: fieldCreditor, level: StrategyFuzzy, group: 1, normalize: normalizeCreditor,
		pattern: regexp.MustCompile(`\A[ \t]*([A-Z][A-Za-z0-9&.,'/\- ]{2,60}?)[ \t]*(?:\n|\z)`)},
	{field: fieldAccountType, level: StrategyFuzzy, group: 1,
		pattern: regexp.MustCompile(`(?i)\b(revolving|installment|mortgage|auto loan|student loan|credit card|charge card|open account|line of credit)\b`)},
	{field: fieldStatus, level: StrategyFuzzy, group: 1,
		pattern: regexp.MustCompile(`(?i)\b(?:status|condition)\b[^\n:]{0,10}[:\-]?[ \t]*([A-Za-z][A-Za-z0-9 ,/\-]{2,40})`)},
	{level: StrategyFuzzy, group: 2, disambiguate: labelDisambiguator(1, dateLabels, fieldLastActivity),
		pattern: regexp.MustCompile(`(?i)\b(opened|open|closed|activity|reported|last payment)\b[^\n\d]{0,20}?(` + accountDatePattern + `)`)},
	{level: StrategyFuzzy, group: 2, normalize: normalizeMoney, disambiguate: labelDisambiguator(1, moneyLabels, ""),
		pattern: regexp.MustCompile(`(?i)\b(past due|high credit|high balance|limit|payment|balance|owed)\b[^\n$\d]{0,20}\$?[ \t]*(` + amountPattern + `)`)},

	// aggressive
	{field: fieldCreditor, level: StrategyAggressive, group: 1, normalize: normalizeCreditor,
		pattern: regexp.MustCompile(`(?m)^[ \t]*([A-Z][A-Z0-9&.'/\- ]{2,60}?)[ \t]*$`)},
	{field: fieldAccountNumber, level: StrategyAggressive, group: 1, normalize: normalizeAccountNumber,
		pattern: regexp.MustCompile(`(?i)\b(?:acct|account)\b[^\n\d*]{0,12}?([X*\d][X*\d\-]{3,24})`)},
	{field: fieldStatus, level: StrategyAggressive, group: 1,
		pattern: regexp.MustCompile(`(?i)\b(collection|charged? off|charge-off|delinquent|past due|late|bankruptcy|repossession|foreclosure|closed|paid|current|open)\b`)},
	{level: StrategyAggressive, group: 2, normalize: normalizeMoney, disambiguate: labelDisambiguator(1, moneyLabels, ""),
		pattern: regexp.MustCompile(`(?i)(past due|high|limit|payment|balance|owed)[^\n$]{0,40}\$[ \t]*(` + amountPattern + `)`)},
}

// creditorStopWords rejects section headings and field labels posing as creditor names.
var creditorStopWords = map[string]bool{
	"ACCOUNT": true, "ACCOUNTS": true, "INFORMATION": true, "SUMMARY": true, "REPORT": true,
	"HISTORY": true, "INQUIRIES": true, "INQUIRY": true, "SCORE": true, "SCORES": true,
	"PERSONAL": true, "TRADELINES": true, "TRADELINE": true, "NEGATIVE": true, "ITEMS": true,
	"PAGE": true, "DETAILS": true, "ADVERSE": true, "RECORDS": true, "POTENTIALLY": true,
	"SATISFACTORY": true, "REVOLVING": true, "INSTALLMENT": true, "OPEN": true, "CLOSED": true,
	"STATUS": true, "BALANCE": true, "DATE": true, "PAYMENT": true, "COLLECTIONS": true,
}

func normalizeCreditor(s string) string {
	s = strings.Trim(s, " .,-")
	if strings.Contains(s, ":") {
		return ""
	}
	letters := 0
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			letters++
		}
	}
	if letters < 3 {
		return ""
	}
	for _, w := range strings.Fields(strings.ToUpper(s)) {
		if creditorStopWords[strings.Trim(w, ".,")] {
			return ""
		}
	}
	return s
}

func normalizeAccountNumber(s string) string {
	s = strings.Trim(s, "-")
	if !strings.ContainsAny(strings.ToUpper(s), "0123456789X*") {
		return ""
	}
	return strings.ToUpper(s)
}

var negativeStatusKeywords = []string{
	"collection", "charge", "late", "delinquent", "past due", "bankrupt",
	"foreclos", "reposs", "judgment", "judgement", "lien", "default", "derogatory",
}

var positiveStatusPhrases = []string{"never late", "no late", "not late"}

// IsNegativeStatus reports whether an account status carries a derogatory keyword.
func IsNegativeStatus(status string) bool {
	s := strings.ToLower(status)
	for _, p := range positiveStatusPhrases {
		s = strings.ReplaceAll(s, p, "")
	}
	for _, k := range negativeStatusKeywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// Utilization returns round(balance / limit * 100), or nil unless both are set and limit > 0.
func Utilization(balance, limit *decimal.Decimal) *int {
	if balance == nil || limit == nil || !limit.IsPositive() {
		return nil
	}
	u := int(balance.Div(*limit).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
	return &u
}

var (
	monthGridPattern = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?[ \t]*'?(\d{2}|\d{4})[ \t]*[:\-=][ \t]*(ok|col|chg|co|c|30|60|90|120|150|180|x|nd)\b`)
	numGridPattern   = regexp.MustCompile(`(?i)(?:^|[^/\d])(\d{1,2})/(\d{4})[ \t]*[:\-=]?[ \t]*(ok|col|chg|co|c|30|60|90|120|150|180|x|nd)\b`)
)

var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04", "may": "05", "jun": "06",
	"jul": "07", "aug": "08", "sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

func paymentCode(code string) domain.PaymentStatus {
	switch strings.ToLower(code) {
	case "ok", "c":
		return domain.PaymentOK
	case "30":
		return domain.PaymentLate30
	case "60":
		return domain.PaymentLate60
	case "90":
		return domain.PaymentLate90
	case "120", "150", "180":
		return domain.PaymentLate120
	case "col":
		return domain.PaymentCollection
	case "co", "chg":
		return domain.PaymentChargeOff
	default:
		return domain.PaymentUnknown
	}
}

// parsePaymentHistory reads "MON 'YY: code" and "MM/YYYY code" grids into a map keyed "YYYY-MM".
func parsePaymentHistory(block string) map[string]domain.PaymentStatus {
	history := map[string]domain.PaymentStatus{}
	for _, m := range monthGridPattern.FindAllStringSubmatch(block, -1) {
		year := m[2]
		if len(year) == 2 {
			year = "20" + year
		}
		history[year+"-"+monthNumbers[strings.ToLower(m[1])]] = paymentCode(m[3])
	}
	for _, m := range numGridPattern.FindAllStringSubmatch(block, -1) {
		month := m[1]
		if len(month) == 1 {
			month = "0" + month
		}
		if month < "01" || month > "12" {
			continue
		}
		history[m[2]+"-"+month] = paymentCode(m[3])
	}
	return history
}

func decimalPtr(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// buildAccount assembles one tradeline from a block. ok is false when no creditor
// name longer than two characters was found.
func buildAccount(block string, vals extracted, bureau domain.Bureau) (domain.CreditAccount, bool) {
	creditor := vals.first(fieldCreditor)
	if len(creditor) <= 2 {
		return domain.CreditAccount{}, false
	}
	acct := domain.CreditAccount{
		CreditorName:     creditor,
		AccountNumber:    vals.first(fieldAccountNumber),
		AccountType:      vals.first(fieldAccountType),
		AccountStatus:    vals.first(fieldStatus),
		OriginalCreditor: vals.first(fieldOriginalCreditor),
		CurrentBalance:   decimalPtr(vals.first(fieldBalance)),
		CreditLimit:      decimalPtr(vals.first(fieldCreditLimit)),
		HighCredit:       decimalPtr(vals.first(fieldHighCredit)),
		MonthlyPayment:   decimalPtr(vals.first(fieldMonthlyPayment)),
		PastDueAmount:    decimalPtr(vals.first(fieldPastDue)),
		DateOpened:       vals.first(fieldDateOpened),
		DateClosed:       vals.first(fieldDateClosed),
		LastActivity:     vals.first(fieldLastActivity),
		PaymentHistory:   parsePaymentHistory(block),
		Bureaus:          bureauList(bureau),
	}
	acct.IsNegative = IsNegativeStatus(acct.AccountStatus)
	acct.UtilizationPercentage = Utilization(acct.CurrentBalance, acct.CreditLimit)
	return acct, true
}

func bureauList(b domain.Bureau) []domain.Bureau {
	if b == "" || b == domain.BureauUnknown {
		return []domain.Bureau{}
	}
	return []domain.Bureau{b}
}
