package creditparser

import (
	"strings"

	"creditscan/internal/domain"
)

var bureauMentions = map[domain.Bureau][]string{
	domain.BureauTransUnion: {"transunion", "trans union"},
	domain.BureauExperian:   {"experian"},
	domain.BureauEquifax:    {"equifax"},
}

// DetectBureau returns the bureau mentioned most often in text. Ties go to the
// earlier bureau in domain.KnownBureaus; no mentions yield BureauUnknown.
func DetectBureau(text string) domain.Bureau {
	lower := strings.ToLower(text)
	best, bestCount := domain.BureauUnknown, 0
	for _, b := range domain.KnownBureaus {
		n := 0
		for _, m := range bureauMentions[b] {
			n += strings.Count(lower, m)
		}
		if n > bestCount {
			best, bestCount = b, n
		}
	}
	return best
}

func resolveBureau(hint, text string) domain.Bureau {
	if b := domain.ParseBureau(hint); b != domain.BureauUnknown {
		return b
	}
	return DetectBureau(text)
}
