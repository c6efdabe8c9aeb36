package creditparser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"creditscan/internal/domain"
)

const inquiryDatePattern = `(\d{1,2}/\d{1,2}/\d{2,4}|\d{1,2}/\d{4})`

type inquiryRule struct {
	level   Strategy
	pattern *regexp.Regexp
	// purposeGroup is the submatch holding the purpose, or 0.
	purposeGroup int
}

var inquiryRules = []inquiryRule{
	{level: StrategyStrict,
		pattern: regexp.MustCompile(`(?m)^[ \t]*([A-Z][A-Z0-9&.,'/\- ]{2,50}?)[ \t]+` + inquiryDatePattern + `[ \t]*$`)},
	{level: StrategyFuzzy, purposeGroup: 3,
		pattern: regexp.MustCompile(`(?m)^[ \t]*([A-Za-z][A-Za-z0-9&.,'/\- ]{2,50}?)[ \t]+(?:(?i:inquiry date|date|on)[ \t]*:?[ \t]*)?` + inquiryDatePattern + `(?:[ \t]+([^\n]{1,60}?))?[ \t]*$`)},
	{level: StrategyAggressive,
		pattern: regexp.MustCompile(`([A-Z][A-Za-z0-9&.'\- ]{2,50}?)[ \t]*[:\-]?[ \t]+` + inquiryDatePattern)},
}

// inquiryLabelWords rejects field labels that pair with a date, like "Date Opened 01/2020".
var inquiryLabelWords = []string{
	"date", "opened", "closed", "balance", "birth", "reported", "activity", "payment",
	"account", "status", "limit", "since", "phone", "ssn", "updated", "page", "dob",
	"generated", "printed", "as of", "score", "last", "name",
}

// Label words match whole tokens only, so CONSOLIDATED or ELASTIC are kept.
func acceptInquirer(name string) bool {
	tokens := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range inquiryLabelWords {
		if containsTokenRun(tokens, strings.Fields(w)) {
			return false
		}
	}
	letters := 0
	for _, r := range name {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters >= 3
}

// containsTokenRun reports whether run appears as consecutive tokens.
func containsTokenRun(tokens, run []string) bool {
	for i := 0; i+len(run) <= len(tokens); i++ {
		match := true
		for j, w := range run {
			if tokens[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// extractInquiries pairs inquirer names with dates using every rule at or below level.
func extractInquiries(text string, level Strategy, bureau domain.Bureau, soft []string) []domain.CreditInquiry {
	out := []domain.CreditInquiry{}
	seen := map[string]bool{}
	for _, rule := range inquiryRules {
		if rule.level > level {
			continue
		}
		for _, m := range rule.pattern.FindAllStringSubmatch(text, -1) {
			name := cleanValue(m[1])
			date := m[2]
			if !acceptInquirer(name) {
				continue
			}
			key := strings.ToUpper(name) + "|" + date
			if seen[key] {
				continue
			}
			seen[key] = true

			inq := domain.CreditInquiry{
				InquirerName: name,
				InquiryDate:  date,
				InquiryType:  classifyInquiry(name, soft),
			}
			if rule.purposeGroup > 0 {
				inq.Purpose = cleanValue(m[rule.purposeGroup])
			}
			if bureau != domain.BureauUnknown {
				inq.Bureau = bureau
			}
			out = append(out, inq)
		}
	}
	return out
}

// classifyInquiry returns soft when the inquirer matches an allow-list entry,
// either by substring after squashing or by a fuzzy match within two edits.
// soft entries must already be squashed.
func classifyInquiry(name string, soft []string) domain.InquiryType {
	n := squash(name)
	if n == "" {
		return domain.InquiryHard
	}
	for _, s := range soft {
		if strings.Contains(n, s) {
			return domain.InquirySoft
		}
		if len(n) >= 5 && fuzzy.MatchNormalizedFold(n, s) && fuzzy.RankMatchNormalizedFold(n, s) <= 2 {
			return domain.InquirySoft
		}
	}
	return domain.InquiryHard
}

// squash uppercases and drops everything but letters and digits.
func squash(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func squashAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if q := squash(s); q != "" {
			out = append(out, q)
		}
	}
	return out
}
