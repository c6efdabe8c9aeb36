package creditparser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"creditscan/internal/domain"
)

const (
	fieldName         = "name"
	fieldSSN          = "ssn"
	fieldDOB          = "dob"
	fieldAddress      = "address"
	fieldPrevAddress  = "previous_address"
	fieldPhone        = "phone"
	fieldEmployer     = "employer"
	fieldPrevEmployer = "previous_employer"
	fieldIncome       = "income"
)

const (
	datePattern      = `\d{1,2}/\d{1,2}/\d{2,4}|\d{4}-\d{2}-\d{2}|\d{1,2}/\d{4}`
	longDatePattern  = `[A-Za-z]{3,9}\.? \d{1,2},? \d{4}`
	phonePattern     = `\(?\d{3}\)?[ .\-]?\d{3}[ .\-]\d{4}`
	cityStateZipLine = `(?:\n[ \t]*[A-Za-z][A-Za-z .'\-]*,?[ \t]+[A-Za-z]{2}[ \t]+\d{5}(?:-\d{4})?)?`
)

var personalRules = []fieldRule{
	// strict: label-colon-value on its own line
	{field: fieldName, level: StrategyStrict, group: 1, normalize: normalizeName,
		pattern: regexp.MustCompile(`(?im)^[ \t]*(?:consumer |full )?name[ \t]*:[ \t]*([A-Za-z][A-Za-z.,'\- ]{1,60}?)[ \t]*$`)},
	{field: fieldSSN, level: StrategyStrict, group: 1,
		pattern: regexp.MustCompile(`(?im)\b(?:ssn|social security(?: number| no\.?| #)?)[ \t]*[:#]?[ \t]*(?:\d{3}|[X*]{3})[ \-]?(?:\d{2}|[X*]{2})[ \-]?(\d{4})\b`)},
	{field: fieldDOB, level: StrategyStrict, group: 1,
		pattern: regexp.MustCompile(`(?im)\b(?:date of birth|birth ?date|dob)[ \t]*:[ \t]*(` + datePattern + `|` + longDatePattern + `)`)},
	{field: fieldAddress, level: StrategyStrict, group: 1,
		pattern: regexp.MustCompile(`(?im)^[ \t]*(?:current |present |mailing )?address[ \t]*:[ \t]*(.+` + cityStateZipLine + `)`)},
	{field: fieldPrevAddress, level: StrategyStrict, group: 1, multi: true,
		pattern: regexp.MustCompile(`(?im)^[ \t]*(?:previous|former|prior) address(?:es)?[ \t]*:[ \t]*(.+` + cityStateZipLine + `)`)},
	{field: fieldPhone, level: StrategyStrict, group: 1, multi: true, normalize: normalizePhone,
		pattern: regexp.MustCompile(`(?im)\b(?:phone|telephone|tel)(?: number| #)?[ \t]*:[ \t]*(` + phonePattern + `)`)},
	{field: fieldEmployer, level: StrategyStrict, group: 1,
		pattern: regexp.MustCompile(`(?im)^[ \t]*(?:current )?employer(?: name)?[ \t]*:[ \t]*(.+)$`)},
	{field: fieldPrevEmployer, level: StrategyStrict, group: 1, multi: true,
		pattern: regexp.MustCompile(`(?im)^[ \t]*(?:previous|former|prior) employer(?: name)?[ \t]*:[ \t]*(.+)$`)},
	{field: fieldIncome, level: StrategyStrict, group: 1, normalize: normalizeMoney,
		pattern: regexp.MustCompile(`(?im)\b(?:annual |monthly |reported )?income[ \t]*:[ \t]*\$?[ \t]*([\d,]+(?:\.\d{1,2})?)`)},

	// fuzzy: keyword windows, unlabeled masked SSNs, phones and street addresses
	{level: StrategyFuzzy, group: 2, normalize: normalizeName, disambiguate: fuzzyNameField,
		pattern: regexp.MustCompile(`(?m)^[ \t]*([A-Za-z ]{0,20}?)\b(?i:name)s?\b[ \t]*[:\-]?[ \t]*([A-Z][A-Za-z.'\-]*(?:[ \t]+[A-Z][A-Za-z.'\-]*){1,3})`)},
	{field: fieldSSN, level: StrategyFuzzy, group: 1,
		pattern: regexp.MustCompile(`(?i)(?:\bX{3}|\*{3})[ \-]?(?:X{2}|\*{2})[ \-]?(\d{4})\b`)},
	{field: fieldDOB, level: StrategyFuzzy, group: 1,
		pattern: regexp.MustCompile(`(?i)\b(?:birth|dob|born)\b[^\n\d]{0,20}(` + datePattern + `)`)},
	{field: fieldAddress, level: StrategyFuzzy, group: 1,
		pattern: regexp.MustCompile(`(?m)(\d{1,6}[ \t]+[A-Za-z0-9 .'#]{3,40}?(?:,[ \t]*|\n[ \t]*)[A-Za-z][A-Za-z .'\-]{1,30},[ \t]*[A-Z]{2}[ \t]+\d{5}(?:-\d{4})?)`)},
	{field: fieldPhone, level: StrategyFuzzy, group: 1, multi: true, normalize: normalizePhone,
		pattern: regexp.MustCompile(`(?:^|[^\d\-/])(` + phonePattern + `)\b`)},
	{level: StrategyFuzzy, group: 2, disambiguate: currentEmployerField,
		pattern: regexp.MustCompile(`(?i)(previous |former |prior )?(?:\bemployed by[ \t]+|\bemployer\b[^\n:]{0,15}:[ \t]*)([A-Za-z0-9][^\n]{1,60})`)},

	// aggressive: a standalone all-caps line, any bare SSN
	{field: fieldName, level: StrategyAggressive, group: 1, normalize: normalizeStandaloneName,
		pattern: regexp.MustCompile(`(?m)^[ \t]*([A-Z][A-Z'\-]+(?:[ \t]+[A-Z][A-Z.'\-]*){1,3})[ \t]*$`)},
	{field: fieldSSN, level: StrategyAggressive, group: 1,
		pattern: regexp.MustCompile(`\b\d{3}-\d{2}-(\d{4})\b`)},
}

func currentEmployerField(m []string) string {
	if m[1] != "" {
		return ""
	}
	return fieldEmployer
}

var nameLabelPrefixes = []string{"creditor", "company", "employer", "subscriber", "business", "file", "user", "account", "inquir"}

func fuzzyNameField(m []string) string {
	prefix := strings.ToLower(m[1])
	for _, p := range nameLabelPrefixes {
		if strings.Contains(prefix, p) {
			return ""
		}
	}
	return fieldName
}

// nameStopWords rejects headings and institution lines posing as names.
var nameStopWords = map[string]bool{
	"CREDIT": true, "REPORT": true, "ACCOUNT": true, "ACCOUNTS": true, "BANK": true,
	"INFORMATION": true, "PERSONAL": true, "SUMMARY": true, "INQUIRIES": true, "INQUIRY": true,
	"SCORE": true, "SCORES": true, "TRANSUNION": true, "EXPERIAN": true, "EQUIFAX": true,
	"HISTORY": true, "PAYMENT": true, "NEGATIVE": true, "ITEMS": true, "COLLECTION": true,
	"COLLECTIONS": true, "PUBLIC": true, "RECORDS": true, "CONSUMER": true, "STATEMENT": true,
	"EMPLOYMENT": true, "ADDRESS": true, "ADDRESSES": true, "CARD": true, "LOAN": true,
	"MORTGAGE": true, "SERVICES": true, "FINANCIAL": true, "INC": true, "LLC": true, "CORP": true,
	"NA": true, "N.A.": true, "PAGE": true, "DATE": true, "BALANCE": true, "STATUS": true,
	"OPEN": true, "CLOSED": true, "TOTAL": true, "DISPUTE": true, "FILE": true, "NUMBER": true,
}

func normalizeName(s string) string {
	s = strings.Trim(s, " .,")
	if len(s) < 3 || strings.ContainsAny(s, ":0123456789") {
		return ""
	}
	for _, w := range strings.Fields(strings.ToUpper(s)) {
		if nameStopWords[strings.Trim(w, ",")] {
			return ""
		}
	}
	return s
}

func normalizeStandaloneName(s string) string {
	if len(strings.Fields(s)) < 2 {
		return ""
	}
	return normalizeName(s)
}

func normalizePhone(s string) string {
	digits := onlyDigits(s)
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return ""
	}
	return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
}

func normalizeMoney(s string) string {
	v := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if v == "" {
		return ""
	}
	if _, err := decimal.NewFromString(v); err != nil {
		return ""
	}
	return v
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var nameSuffixes = map[string]string{
	"JR": "JR", "SR": "SR", "II": "II", "III": "III", "IV": "IV",
}

// splitName separates a full name into parts. It accepts "FIRST MIDDLE LAST SUFFIX"
// and "LAST, FIRST MIDDLE" forms.
func splitName(full string) (first, middle, last, suffix string) {
	var tokens []string
	if i := strings.Index(full, ","); i >= 0 {
		lastPart := strings.Fields(full[:i])
		rest := strings.Fields(full[i+1:])
		lastPart, suffix = popSuffix(lastPart)
		if suffix == "" {
			rest, suffix = popSuffix(rest)
		}
		if len(rest) == 0 && len(lastPart) > 0 {
			return "", "", strings.Join(lastPart, " "), suffix
		}
		tokens = append(rest, lastPart...)
	} else {
		tokens, suffix = popSuffix(strings.Fields(full))
	}

	switch len(tokens) {
	case 0:
		return "", "", "", suffix
	case 1:
		return tokens[0], "", "", suffix
	default:
		return tokens[0], strings.Join(tokens[1:len(tokens)-1], " "), tokens[len(tokens)-1], suffix
	}
}

func popSuffix(tokens []string) ([]string, string) {
	if len(tokens) < 2 {
		return tokens, ""
	}
	lastTok := strings.ToUpper(strings.Trim(tokens[len(tokens)-1], ".,"))
	if s, ok := nameSuffixes[lastTok]; ok {
		return tokens[:len(tokens)-1], s
	}
	return tokens, ""
}

var stateZipPattern = regexp.MustCompile(`\b([A-Za-z]{2})[ \t]+(\d{5}(?:-\d{4})?)$`)

// parseAddress decomposes an address by its trailing state and ZIP and then by commas.
func parseAddress(raw string) domain.Address {
	lines := strings.Split(raw, "\n")
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = cleanValue(l); l != "" {
			parts = append(parts, l)
		}
	}
	full := strings.Join(parts, ", ")
	addr := domain.Address{FullAddress: full}

	rest := full
	if m := stateZipPattern.FindStringSubmatchIndex(full); m != nil {
		addr.State = strings.ToUpper(full[m[2]:m[3]])
		addr.ZipCode = full[m[4]:m[5]]
		rest = strings.TrimRight(full[:m[0]], " ,")
	}

	var segs []string
	for _, s := range strings.Split(rest, ",") {
		if s = strings.TrimSpace(s); s != "" {
			segs = append(segs, s)
		}
	}
	switch {
	case len(segs) >= 2:
		addr.City = segs[len(segs)-1]
		addr.Street = strings.Join(segs[:len(segs)-1], ", ")
	case len(segs) == 1:
		addr.Street = segs[0]
	}
	return addr
}

// buildPersonalInfo assembles the extracted fields. It returns nil when nothing was found.
func buildPersonalInfo(vals extracted) *domain.PersonalInfo {
	info := &domain.PersonalInfo{
		PreviousAddresses: []domain.Address{},
		PhoneNumbers:      []string{},
		PreviousEmployers: []string{},
	}

	if name := vals.first(fieldName); name != "" {
		info.FullName = name
		info.FirstName, info.MiddleName, info.LastName, info.Suffix = splitName(name)
	}
	info.SSNLast4 = vals.first(fieldSSN)
	info.DateOfBirth = vals.first(fieldDOB)
	if raw := vals.first(fieldAddress); raw != "" {
		addr := parseAddress(raw)
		info.CurrentAddress = &addr
	}
	for _, raw := range vals.all(fieldPrevAddress) {
		info.PreviousAddresses = append(info.PreviousAddresses, parseAddress(raw))
	}
	info.PhoneNumbers = append(info.PhoneNumbers, vals.all(fieldPhone)...)
	info.CurrentEmployer = vals.first(fieldEmployer)
	info.PreviousEmployers = append(info.PreviousEmployers, vals.all(fieldPrevEmployer)...)
	if inc := vals.first(fieldIncome); inc != "" {
		d := decimal.RequireFromString(inc)
		info.Income = &d
	}

	if info.IsEmpty() {
		return nil
	}
	return info
}
