package port

import (
	"context"

	"github.com/google/uuid"

	"creditscan/internal/domain"
)

// ReportRepository defines the contract for report persistence.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	List(ctx context.Context, offset, limit int) ([]domain.Report, int, error)
	// UpdateParseState writes the parsing status, error, attempts, retry time,
	// quality and confidence fields of report.
	UpdateParseState(ctx context.Context, report *domain.Report) error
	// ClaimQueued atomically moves up to limit queued reports whose retry time
	// has passed to processing and returns them.
	ClaimQueued(ctx context.Context, limit int) ([]domain.Report, error)
}
