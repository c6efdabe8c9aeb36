package creditparser

import (
	"regexp"
	"strings"

	"creditscan/internal/domain"
)

// FieldExtractor extracts every entity category at one strictness level.
// Implementations never fail on missing data; absence is an empty result.
type FieldExtractor interface {
	Strategy() Strategy
	PersonalInfo(text string) *domain.PersonalInfo
	Accounts(text string, bureau domain.Bureau) []domain.CreditAccount
	Inquiries(text string, bureau domain.Bureau) []domain.CreditInquiry
	Scores(text string, bureau domain.Bureau) []domain.CreditScore
	NegativeItems(section string, accounts []domain.CreditAccount) []domain.NegativeItem
}

// ruleExtractor backs the strict, fuzzy and aggressive strategies with the shared rule tables.
type ruleExtractor struct {
	level         Strategy
	minBlock      int
	softInquirers []string
}

// NewRuleExtractor returns the strict, fuzzy or aggressive extractor.
func NewRuleExtractor(level Strategy, opts Options) FieldExtractor {
	opts = opts.withDefaults()
	return &ruleExtractor{
		level:         level,
		minBlock:      opts.MinBlockLength,
		softInquirers: squashAll(opts.SoftInquirers),
	}
}

func (e *ruleExtractor) Strategy() Strategy { return e.level }

func (e *ruleExtractor) PersonalInfo(text string) *domain.PersonalInfo {
	return buildPersonalInfo(applyRules(personalRules, e.level, text))
}

func (e *ruleExtractor) Accounts(text string, bureau domain.Bureau) []domain.CreditAccount {
	out := []domain.CreditAccount{}
	for _, block := range SplitAccountBlocks(text, bureau, e.minBlock) {
		if acct, ok := buildAccount(block, applyRules(accountRules, e.level, block), bureau); ok {
			out = append(out, acct)
		}
	}
	return out
}

func (e *ruleExtractor) Inquiries(text string, bureau domain.Bureau) []domain.CreditInquiry {
	return extractInquiries(text, e.level, bureau, e.softInquirers)
}

func (e *ruleExtractor) Scores(text string, bureau domain.Bureau) []domain.CreditScore {
	return extractScores(text, bureau)
}

func (e *ruleExtractor) NegativeItems(section string, accounts []domain.CreditAccount) []domain.NegativeItem {
	return negativeItems(section, accounts, e.level)
}

var (
	recoverySSNPattern     = regexp.MustCompile(`(?i)(?:\b\d{3}|\bX{3}|\*{3})[ \-](?:\d{2}|X{2}|\*{2})[ \-](\d{4})\b`)
	recoveryAccountPattern = regexp.MustCompile(`(?i)\b(?:account|acct)\b[ \t]*(?:number|no\.?|#)?[ \t]*[:#]?[ \t]*([X*\d][X*\d\-]{3,24})`)
	capsLinePattern        = regexp.MustCompile(`^[ \t]*([A-Z][A-Z0-9&.,'/\- ]{2,60}?)[ \t]*$`)
)

// recoveryExtractor pulls only isolated high-confidence tokens and ignores sections.
type recoveryExtractor struct{}

// NewRecoveryExtractor returns the token-only extractor used for unreadable text.
func NewRecoveryExtractor() FieldExtractor { return recoveryExtractor{} }

func (recoveryExtractor) Strategy() Strategy { return StrategyRecovery }

func (recoveryExtractor) PersonalInfo(text string) *domain.PersonalInfo {
	m := recoverySSNPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return &domain.PersonalInfo{
		SSNLast4:          m[1],
		PreviousAddresses: []domain.Address{},
		PhoneNumbers:      []string{},
		PreviousEmployers: []string{},
	}
}

// Accounts pairs each account token with the nearest preceding all-caps line.
func (recoveryExtractor) Accounts(text string, bureau domain.Bureau) []domain.CreditAccount {
	out := []domain.CreditAccount{}
	for _, loc := range recoveryAccountPattern.FindAllStringSubmatchIndex(text, -1) {
		creditor := precedingCapsLine(text[:loc[0]])
		if len(creditor) <= 2 {
			continue
		}
		out = append(out, domain.CreditAccount{
			CreditorName:   creditor,
			AccountNumber:  normalizeAccountNumber(text[loc[2]:loc[3]]),
			PaymentHistory: map[string]domain.PaymentStatus{},
			Bureaus:        bureauList(bureau),
		})
	}
	return out
}

func (recoveryExtractor) Inquiries(string, domain.Bureau) []domain.CreditInquiry {
	return []domain.CreditInquiry{}
}

func (recoveryExtractor) Scores(string, domain.Bureau) []domain.CreditScore {
	return []domain.CreditScore{}
}

func (recoveryExtractor) NegativeItems(_ string, accounts []domain.CreditAccount) []domain.NegativeItem {
	return negativeItems("", accounts, StrategyRecovery)
}

// hasRecoveryTokens reports whether any SSN-shaped or account token exists in text.
func hasRecoveryTokens(text string) bool {
	return recoverySSNPattern.MatchString(text) || recoveryAccountPattern.MatchString(text)
}

func precedingCapsLine(text string) string {
	lines := strings.Split(text, "\n")
	// the last element is the partial line holding the token itself
	for i := len(lines) - 2; i >= 0; i-- {
		if m := capsLinePattern.FindStringSubmatch(lines[i]); m != nil {
			if c := normalizeCreditor(m[1]); c != "" {
				return c
			}
		}
	}
	return ""
}

// Registry maps quality tiers to extractors.
type Registry struct {
	extractors map[domain.QualityTier]FieldExtractor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[domain.QualityTier]FieldExtractor)}
}

// DefaultRegistry wires strict, fuzzy, aggressive and recovery to the high, medium, low and recovery tiers.
func DefaultRegistry(opts Options) *Registry {
	r := NewRegistry()
	r.Register(domain.TierHigh, NewRuleExtractor(StrategyStrict, opts))
	r.Register(domain.TierMedium, NewRuleExtractor(StrategyFuzzy, opts))
	r.Register(domain.TierLow, NewRuleExtractor(StrategyAggressive, opts))
	r.Register(domain.TierRecovery, NewRecoveryExtractor())
	return r
}

// Register sets the extractor for a tier.
func (r *Registry) Register(tier domain.QualityTier, e FieldExtractor) {
	r.extractors[tier] = e
}

// Get returns the extractor for a tier, or nil if not found.
func (r *Registry) Get(tier domain.QualityTier) FieldExtractor {
	return r.extractors[tier]
}
