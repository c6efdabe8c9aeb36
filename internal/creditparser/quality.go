package creditparser

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cloudflare/ahocorasick"
)

var qualityKeywords = []string{
	"credit",
	"report",
	"account",
	"balance",
	"transunion",
	"experian",
	"equifax",
	"inquiry",
	"tradeline",
	"payment",
	"history",
}

var qualityKeywordMatcher = ahocorasick.NewStringMatcher(qualityKeywords)

var (
	ssnShapePattern     = regexp.MustCompile(`(?i)(?:\b\d{3}|\bX{3}|\*{3})-(?:\d{2}|X{2}|\*{2})-\d{4}\b`)
	accountTokenPattern = regexp.MustCompile(`(?i)\b(?:account|acct)\b`)
	dateShapePattern    = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b|\b\d{1,2}/\d{4}\b|\b\d{4}-\d{2}-\d{2}\b`)
	dollarShapePattern  = regexp.MustCompile(`\$[ \t]?\d[\d,]*(?:\.\d{2})?`)
)

const (
	readableWeight  = 40.0
	keywordWeight   = 30.0
	indicatorWeight = 7.5
)

// QualityScore rates preprocessed text from 0 to 100. Text shorter than
// minLength runes scores 0.
func QualityScore(text string, minLength int) int {
	if minLength <= 0 {
		minLength = DefaultOptions().MinTextLength
	}
	total := utf8.RuneCountInString(text)
	if total < minLength {
		return 0
	}

	readable := 0
	for _, r := range text {
		if isReadableRune(r) {
			readable++
		}
	}
	score := readableWeight * float64(readable) / float64(total)

	hits := qualityKeywordMatcher.MatchThreadSafe([]byte(strings.ToLower(text)))
	seen := make(map[int]struct{}, len(hits))
	for _, h := range hits {
		seen[h] = struct{}{}
	}
	score += keywordWeight * float64(len(seen)) / float64(len(qualityKeywords))

	for _, p := range []*regexp.Regexp{ssnShapePattern, accountTokenPattern, dateShapePattern, dollarShapePattern} {
		if p.MatchString(text) {
			score += indicatorWeight
		}
	}

	return clamp(int(math.Round(score)), 0, 100)
}

func isReadableRune(r rune) bool {
	if r > unicode.MaxASCII {
		return false
	}
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
		return true
	}
	return strings.ContainsRune(`.,:;'"-/()$#&%*@!?+`, r)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
