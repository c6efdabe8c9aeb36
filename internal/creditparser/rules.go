package creditparser

import (
	"regexp"
	"strings"
)

// Strategy is the strictness level of an extractor. Rule tables are shared:
// an extractor applies every rule whose level is at or below its own.
type Strategy int

const (
	StrategyStrict Strategy = iota + 1
	StrategyFuzzy
	StrategyAggressive
	StrategyRecovery
)

func (s Strategy) String() string {
	switch s {
	case StrategyStrict:
		return "strict"
	case StrategyFuzzy:
		return "fuzzy"
	case StrategyAggressive:
		return "aggressive"
	case StrategyRecovery:
		return "recovery"
	default:
		return "unknown"
	}
}

// fieldRule is one (pattern, field, disambiguator) tuple consumed by applyRules.
type fieldRule struct {
	field   string
	level   Strategy
	pattern *regexp.Regexp
	// group is the submatch index holding the value.
	group int
	// multi collects every distinct match instead of keeping the first.
	multi bool
	// disambiguate picks the target field from the full submatch; "" drops the match.
	disambiguate func(m []string) string
	// normalize cleans the value; "" rejects it.
	normalize func(string) string
}

// extracted holds values per field in match order.
type extracted map[string][]string

func (e extracted) first(field string) string {
	if v := e[field]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func (e extracted) all(field string) []string {
	return e[field]
}

// applyRules runs every rule at or below level against text. Rules are
// ordered strictest first, so for single-valued fields the strictest match wins.
func applyRules(rules []fieldRule, level Strategy, text string) extracted {
	out := extracted{}
	if text == "" {
		return out
	}
	for i := range rules {
		r := &rules[i]
		if r.level > level {
			continue
		}
		for _, m := range r.pattern.FindAllStringSubmatch(text, -1) {
			field := r.field
			if r.disambiguate != nil {
				field = r.disambiguate(m)
			}
			if field == "" {
				continue
			}
			if !r.multi && len(out[field]) > 0 {
				continue
			}
			value := cleanValue(m[r.group])
			if r.normalize != nil {
				value = r.normalize(value)
			}
			if value == "" || (r.multi && contains(out[field], value)) {
				continue
			}
			out[field] = append(out[field], value)
		}
	}
	return out
}

// cleanValue collapses whitespace within each line and drops empty lines.
func cleanValue(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if l = strings.Join(strings.Fields(l), " "); l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Trim(strings.Join(kept, "\n"), " ,;:-")
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// labelDisambiguator returns a disambiguate func that maps the label in
// submatch labelGroup onto the first field whose keyword it contains.
func labelDisambiguator(labelGroup int, keywords []labelKeyword, fallback string) func([]string) string {
	return func(m []string) string {
		label := strings.ToLower(m[labelGroup])
		for _, k := range keywords {
			if strings.Contains(label, k.keyword) {
				return k.field
			}
		}
		return fallback
	}
}

type labelKeyword struct {
	keyword string
	field   string
}
