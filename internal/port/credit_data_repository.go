package port

import (
	"context"

	"github.com/google/uuid"

	"creditscan/internal/domain"
)

// CreditDataRepository persists the extracted entities of a report.
type CreditDataRepository interface {
	// ReplaceAll deletes every stored entity of the report and inserts the
	// categories of result in one transaction.
	ReplaceAll(ctx context.Context, reportID uuid.UUID, result *domain.ParsingResult) error
	// Load returns the stored personal info, accounts, negative items,
	// inquiries and scores. Summary and report-level fields are left zero.
	Load(ctx context.Context, reportID uuid.UUID) (*domain.ParsingResult, error)
}
