package creditparser

import (
	"fmt"

	"creditscan/internal/domain"
)

// NoInputTextError is returned when the raw text is empty or whitespace-only.
type NoInputTextError struct{}

func (e *NoInputTextError) Error() string {
	return "creditparser: no input text to parse"
}

func (e *NoInputTextError) Unwrap() error { return domain.ErrNoInputText }

// RecoveryExhaustedError is returned when text scored in the recovery tier and
// not even isolated SSN or account tokens could be found.
type RecoveryExhaustedError struct {
	QualityScore int
}

func (e *RecoveryExhaustedError) Error() string {
	return fmt.Sprintf("creditparser: no data could be extracted (quality score %d); possibly a scanned/image PDF, corrupted file, or unsupported format", e.QualityScore)
}

func (e *RecoveryExhaustedError) Unwrap() error { return domain.ErrRecoveryExhausted }

// SectionNotFoundWarning records a section whose anchors were not found.
// It is reported in ParsingResult.ExtractionErrors and never returned as an error.
type SectionNotFoundWarning struct {
	Section domain.SectionName
}

func (w SectionNotFoundWarning) Error() string {
	return fmt.Sprintf("section not found: %s", w.Section)
}
