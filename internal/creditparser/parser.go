// Package creditparser turns unstructured credit bureau report text into a
// structured domain.ParsingResult.
//
// The pipeline preprocesses the text, scores its quality, picks an extraction
// tier from the score, segments the report into sections and runs the tier's
// FieldExtractor over each section. A Parser holds no mutable state and is
// safe for concurrent use.
package creditparser

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"creditscan/internal/domain"
)

// Parser runs the parsing pipeline.
type Parser struct {
	opts     Options
	registry *Registry
	log      *zap.Logger
}

// New creates a Parser with the default extractor registry.
func New(opts Options, log *zap.Logger) *Parser {
	opts = opts.withDefaults()
	return NewWithRegistry(opts, DefaultRegistry(opts), log)
}

// NewWithRegistry creates a Parser using the given tier-to-extractor registry.
func NewWithRegistry(opts Options, registry *Registry, log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{opts: opts.withDefaults(), registry: registry, log: log}
}

// Parse extracts a ParsingResult from raw report text. bureauHint may be empty.
//
// Besides a registry with no extractor for the tier, only *NoInputTextError
// and *RecoveryExhaustedError are returned; every other failure is recorded in
// the result's ExtractionErrors.
func (p *Parser) Parse(rawText, bureauHint string) (*domain.ParsingResult, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, &NoInputTextError{}
	}

	text := Preprocess(rawText)
	score := QualityScore(text, p.opts.MinTextLength)
	tier := p.opts.Tier(score)
	bureau := resolveBureau(bureauHint, text)

	result := &domain.ParsingResult{
		Accounts:         []domain.CreditAccount{},
		NegativeItems:    []domain.NegativeItem{},
		Inquiries:        []domain.CreditInquiry{},
		Scores:           []domain.CreditScore{},
		ExtractionErrors: []string{},
		QualityScore:     score,
		QualityTier:      tier,
		Bureau:           bureau,
		SectionsFound:    []domain.SectionName{},
	}

	extractor := p.registry.Get(tier)
	if extractor == nil {
		return nil, fmt.Errorf("creditparser.Parse: no extractor registered for tier %q", tier)
	}

	sections := SectionMap{}
	if extractor.Strategy() != StrategyRecovery {
		sections = Segment(text, p.opts)
		for _, name := range domain.AllSections {
			if _, ok := sections[name]; !ok {
				result.ExtractionErrors = append(result.ExtractionErrors, SectionNotFoundWarning{Section: name}.Error())
			}
		}
		result.SectionsFound = sections.Found()
	}

	p.runCategory(result, "personal_info", func() {
		result.PersonalInfo = extractor.PersonalInfo(sections.Get(domain.SectionPersonalInfo, text))
	})
	p.runCategory(result, "accounts", func() {
		result.Accounts = extractor.Accounts(sections.Get(domain.SectionAccounts, text), bureau)
	})
	p.runCategory(result, "inquiries", func() {
		result.Inquiries = extractor.Inquiries(sections.Get(domain.SectionInquiries, text), bureau)
	})
	p.runCategory(result, "scores", func() {
		result.Scores = extractor.Scores(sections.Get(domain.SectionScores, text), bureau)
	})
	p.runCategory(result, "negative_items", func() {
		result.NegativeItems = extractor.NegativeItems(sections.Get(domain.SectionNegativeItems, ""), result.Accounts)
	})

	fillEmpty(result)

	if tier == domain.TierRecovery && result.PersonalInfo.IsEmpty() && len(result.Accounts) == 0 && !hasRecoveryTokens(text) {
		p.log.Debug("creditparser.Parse: recovery exhausted", zap.Int("quality_score", score))
		return nil, &RecoveryExhaustedError{QualityScore: score}
	}

	result.Summary = Summarize(result.Accounts)
	result.ParsingConfidence = Confidence(result.PersonalInfo, result.Accounts, result.NegativeItems, result.Scores)

	p.log.Debug("creditparser.Parse: parsed report text",
		zap.Int("quality_score", score),
		zap.String("tier", string(tier)),
		zap.String("strategy", extractor.Strategy().String()),
		zap.String("bureau", string(bureau)),
		zap.Int("sections", len(result.SectionsFound)),
		zap.Int("accounts", len(result.Accounts)),
		zap.Int("negative_items", len(result.NegativeItems)),
		zap.Int("inquiries", len(result.Inquiries)),
		zap.Int("scores", len(result.Scores)),
		zap.Int("confidence", result.ParsingConfidence),
	)
	return result, nil
}

// runCategory isolates one category; a panic becomes an extraction error and
// leaves the category's zero value in place.
func (p *Parser) runCategory(result *domain.ParsingResult, category string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			result.ExtractionErrors = append(result.ExtractionErrors, fmt.Sprintf("%s: %v", category, r))
			p.log.Warn("creditparser.Parse: category extraction failed",
				zap.String("category", category), zap.Any("panic", r))
		}
	}()
	fn()
}

func fillEmpty(r *domain.ParsingResult) {
	if r.Accounts == nil {
		r.Accounts = []domain.CreditAccount{}
	}
	if r.NegativeItems == nil {
		r.NegativeItems = []domain.NegativeItem{}
	}
	if r.Inquiries == nil {
		r.Inquiries = []domain.CreditInquiry{}
	}
	if r.Scores == nil {
		r.Scores = []domain.CreditScore{}
	}
}
