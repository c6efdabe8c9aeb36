package creditparser

import (
	"regexp"
	"strings"

	"creditscan/internal/domain"
)

var (
	blankLineSplit     = regexp.MustCompile(`\n[ \t]*\n`)
	equifaxHeaderLine  = regexp.MustCompile(`^[ \t]*[A-Z][A-Z0-9&.,'/\- ]*\b(?:BANK|CARD|CREDIT|LOAN|MORTGAGE)\b[A-Z0-9&.,'/\- ]*$`)
	accountNumberLabel = regexp.MustCompile(`(?i)^[ \t]*(?:account|acct)\.?[ \t]*(?:number|no\.?|#)`)
)

// negativeBlockMinimum filters noise lines out of collections sections.
const negativeBlockMinimum = 20

// SplitAccountBlocks splits accounts text into candidate per-account blocks
// using a bureau-specific rule. Blocks shorter than minLength after trimming
// are dropped.
//
// Equifax splits before all-caps creditor lines carrying a type keyword,
// Experian splits on blank lines, and every other bureau splits on blank
// lines or before an "Account Number" label line. The split count is never
// cross-checked against a reported total. On that default path a creditor
// line directly above its Account Number label becomes its own fragment and
// is usually dropped as too short, leaving the field block without a creditor.
func SplitAccountBlocks(text string, bureau domain.Bureau, minLength int) []string {
	if minLength <= 0 {
		minLength = DefaultOptions().MinBlockLength
	}
	var raw []string
	switch bureau {
	case domain.BureauEquifax:
		raw = splitBeforeLines(text, equifaxHeaderLine)
	case domain.BureauExperian:
		raw = blankLineSplit.Split(text, -1)
	default:
		for _, chunk := range blankLineSplit.Split(text, -1) {
			raw = append(raw, splitBeforeLines(chunk, accountNumberLabel)...)
		}
	}
	return keepBlocks(raw, minLength)
}

// splitBlankBlocks splits on blank lines only; used for collections sections.
func splitBlankBlocks(text string, minLength int) []string {
	return keepBlocks(blankLineSplit.Split(text, -1), minLength)
}

func splitBeforeLines(text string, boundary *regexp.Regexp) []string {
	lines := strings.Split(text, "\n")
	var blocks []string
	var cur []string
	for _, line := range lines {
		if boundary.MatchString(line) && len(cur) > 0 {
			blocks = append(blocks, strings.Join(cur, "\n"))
			cur = nil
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		blocks = append(blocks, strings.Join(cur, "\n"))
	}
	return blocks
}

func keepBlocks(raw []string, minLength int) []string {
	out := make([]string, 0, len(raw))
	for _, b := range raw {
		b = strings.TrimSpace(b)
		if len(b) >= minLength {
			out = append(out, b)
		}
	}
	return out
}
