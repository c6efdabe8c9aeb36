package port

import "creditscan/internal/domain"

// ReportParser converts raw report text into a ParsingResult.
type ReportParser interface {
	Parse(rawText, bureauHint string) (*domain.ParsingResult, error)
}
