package creditparser

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"creditscan/internal/domain"
)

// sectionAnchors lists anchor phrases per section in match precedence order.
// Phrases are lowercase.
var sectionAnchors = map[domain.SectionName][]string{
	domain.SectionPersonalInfo: {
		"personal information",
		"consumer information",
		"identification information",
		"identifying information",
		"personal data",
		"personal info",
	},
	domain.SectionAccounts: {
		"account information",
		"credit accounts",
		"account history",
		"account details",
		"tradelines",
		"trade lines",
		"accounts",
	},
	domain.SectionInquiries: {
		"credit inquiries",
		"hard inquiries",
		"regular inquiries",
		"requests for your credit history",
		"inquiries",
	},
	domain.SectionScores: {
		"credit score",
		"fico score",
		"vantagescore",
		"score factors",
	},
	domain.SectionNegativeItems: {
		"potentially negative items",
		"negative items",
		"negative information",
		"adverse accounts",
		"adverse information",
		"collection accounts",
		"collections",
		"public records",
	},
}

var (
	anchorPhrases []string
	anchorMatcher *ahocorasick.Matcher
)

func init() {
	for _, name := range domain.AllSections {
		anchorPhrases = append(anchorPhrases, sectionAnchors[name]...)
	}
	anchorMatcher = ahocorasick.NewStringMatcher(anchorPhrases)
}

// SectionMap maps located sections to their text. Absent sections have no key.
type SectionMap map[domain.SectionName]string

// Get returns the section text, or fallback when the section is absent.
func (m SectionMap) Get(name domain.SectionName, fallback string) string {
	if s, ok := m[name]; ok {
		return s
	}
	return fallback
}

// Found lists the located sections in segmentation order.
func (m SectionMap) Found() []domain.SectionName {
	out := make([]domain.SectionName, 0, len(m))
	for _, name := range domain.AllSections {
		if _, ok := m[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// Segment locates the named sections of a report by anchor phrase search.
//
// A section starts SectionLookbehind characters before its first matching
// anchor and ends at the next anchor of any section found at least
// SectionMinSpan characters later, or at the end of text. Windows shorter than
// MinSectionLength are dropped.
func Segment(text string, opts Options) SectionMap {
	opts = opts.withDefaults()
	sections := SectionMap{}
	if text == "" {
		return sections
	}

	lower := asciiLower(text)
	present := make(map[string]bool)
	for _, idx := range anchorMatcher.MatchThreadSafe([]byte(lower)) {
		present[anchorPhrases[idx]] = true
	}
	if len(present) == 0 {
		return sections
	}

	for _, name := range domain.AllSections {
		for _, phrase := range sectionAnchors[name] {
			if !present[phrase] {
				continue
			}
			pos := strings.Index(lower, phrase)
			start := pos - opts.SectionLookbehind
			if start < 0 {
				start = 0
			}
			end := nextAnchor(lower, pos+opts.SectionMinSpan, present)
			if end-start >= opts.MinSectionLength {
				sections[name] = text[start:end]
			}
			break
		}
	}
	return sections
}

// nextAnchor returns the position of the earliest present anchor at or after from, or len(lower).
func nextAnchor(lower string, from int, present map[string]bool) int {
	if from >= len(lower) {
		return len(lower)
	}
	end := len(lower)
	for phrase := range present {
		if i := strings.Index(lower[from:], phrase); i >= 0 && from+i < end {
			end = from + i
		}
	}
	return end
}

// asciiLower lowercases ASCII letters only so byte offsets line up with the input.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
