package creditparser

import "creditscan/internal/domain"

// Options tunes the heuristics of the parsing pipeline. Zero values fall back to defaults.
type Options struct {
	HighThreshold     int
	MediumThreshold   int
	LowThreshold      int
	MinTextLength     int
	MinSectionLength  int
	SectionLookbehind int
	SectionMinSpan    int
	MinBlockLength    int
	// SoftInquirers lists inquirer names whose pulls are classified as soft.
	SoftInquirers []string
}

// DefaultSoftInquirers is the built-in allow-list of bureau and monitoring-service names.
var DefaultSoftInquirers = []string{
	"CREDIT KARMA",
	"CREDIT SESAME",
	"EXPERIAN",
	"TRANSUNION",
	"EQUIFAX",
	"MYFICO",
	"IDENTITY GUARD",
	"LIFELOCK",
	"CREDITWISE",
	"ANNUAL CREDIT REPORT",
	"NERDWALLET",
	"CONSUMER DISCLOSURE",
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{
		HighThreshold:     70,
		MediumThreshold:   40,
		LowThreshold:      20,
		MinTextLength:     100,
		MinSectionLength:  100,
		SectionLookbehind: 50,
		SectionMinSpan:    200,
		MinBlockLength:    100,
		SoftInquirers:     DefaultSoftInquirers,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.HighThreshold <= 0 {
		o.HighThreshold = d.HighThreshold
	}
	if o.MediumThreshold <= 0 {
		o.MediumThreshold = d.MediumThreshold
	}
	if o.LowThreshold <= 0 {
		o.LowThreshold = d.LowThreshold
	}
	if o.MinTextLength <= 0 {
		o.MinTextLength = d.MinTextLength
	}
	if o.MinSectionLength <= 0 {
		o.MinSectionLength = d.MinSectionLength
	}
	if o.SectionLookbehind <= 0 {
		o.SectionLookbehind = d.SectionLookbehind
	}
	if o.SectionMinSpan <= 0 {
		o.SectionMinSpan = d.SectionMinSpan
	}
	if o.MinBlockLength <= 0 {
		o.MinBlockLength = d.MinBlockLength
	}
	if len(o.SoftInquirers) == 0 {
		o.SoftInquirers = d.SoftInquirers
	}
	return o
}

// Tier maps a quality score onto an extraction tier.
func (o Options) Tier(score int) domain.QualityTier {
	o = o.withDefaults()
	switch {
	case score >= o.HighThreshold:
		return domain.TierHigh
	case score >= o.MediumThreshold:
		return domain.TierMedium
	case score >= o.LowThreshold:
		return domain.TierLow
	default:
		return domain.TierRecovery
	}
}
