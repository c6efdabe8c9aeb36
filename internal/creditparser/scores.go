package creditparser

import (
	"regexp"
	"strconv"
	"strings"

	"creditscan/internal/domain"
)

var (
	scorePattern        = regexp.MustCompile(`(?i)\b(fico(?: ?score)?(?: \d{1,2})?|vantage ?score(?: \d\.\d)?|vantage|credit score)\b[^\d\n]{0,20}(\d{3})\b`)
	factorHeaderPattern = regexp.MustCompile(`(?im)^[ \t]*(?:key |score |top )?factors(?: affecting (?:your )?score)?[ \t]*:?[ \t]*$`)
	bulletPrefix        = regexp.MustCompile(`^(?:[-*\x{2022}]|\d{1,2}[.)])[ \t]*`)
)

const maxScoreFactors = 5

// extractScores returns every in-range score adjacent to a scoring keyword.
func extractScores(text string, bureau domain.Bureau) []domain.CreditScore {
	out := []domain.CreditScore{}
	factors := extractFactors(text)
	seen := map[string]bool{}
	for _, m := range scorePattern.FindAllStringSubmatch(text, -1) {
		value, err := strconv.Atoi(m[2])
		if err != nil || value < domain.ScoreMinValue || value > domain.ScoreMaxValue {
			continue
		}
		scoreType := scoreTypeFor(m[1])
		key := string(scoreType) + "|" + m[2]
		if seen[key] {
			continue
		}
		seen[key] = true

		score := domain.CreditScore{
			ScoreType: scoreType,
			Score:     value,
			Factors:   append([]string{}, factors...),
			ScaleMin:  domain.ScoreMinValue,
			ScaleMax:  domain.ScoreMaxValue,
		}
		if bureau != domain.BureauUnknown {
			score.Bureau = bureau
		}
		out = append(out, score)
	}
	return out
}

func scoreTypeFor(keyword string) domain.ScoreType {
	k := strings.ToLower(keyword)
	switch {
	case strings.HasPrefix(k, "fico"):
		return domain.ScoreFICO
	case strings.HasPrefix(k, "vantage"):
		return domain.ScoreVantage
	default:
		return domain.ScoreGeneric
	}
}

// extractFactors reads the bullet lines under the first factors heading.
func extractFactors(text string) []string {
	loc := factorHeaderPattern.FindStringIndex(text)
	if loc == nil {
		return []string{}
	}
	out := []string{}
	for _, line := range strings.Split(text[loc[1]:], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(out) > 0 {
				break
			}
			continue
		}
		factor := cleanValue(bulletPrefix.ReplaceAllString(line, ""))
		if factor == "" || !strings.ContainsAny(strings.ToLower(factor), "abcdefghijklmnopqrstuvwxyz") {
			break
		}
		out = append(out, factor)
		if len(out) == maxScoreFactors {
			break
		}
	}
	return out
}
