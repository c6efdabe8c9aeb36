package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"creditscan/internal/domain"
	"creditscan/internal/port"
)

type reportRepo struct {
	db *sqlx.DB
}

// NewReportRepo creates a new PostgreSQL-backed ReportRepository.
func NewReportRepo(db *sqlx.DB) port.ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, report *domain.Report) error {
	now := time.Now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now
	if len(report.ExtractionErrors) == 0 {
		report.ExtractionErrors = []byte("[]")
	}

	query := `INSERT INTO reports (
		id, bureau, file_name, file_type, file_size, s3_bucket, s3_key, content_type,
		parsing_status, parsing_error, parse_attempts, retry_after,
		quality_score, quality_tier, parsing_confidence, extraction_errors, parsed_at,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8,
		$9, $10, $11, $12,
		$13, $14, $15, $16, $17,
		$18, $19
	)`

	_, err := r.db.ExecContext(ctx, query,
		report.ID, report.Bureau, report.FileName, report.FileType, report.FileSize,
		report.S3Bucket, report.S3Key, report.ContentType,
		report.ParsingStatus, report.ParsingError, report.ParseAttempts, report.RetryAfter,
		report.QualityScore, report.QualityTier, report.ParsingConfidence, report.ExtractionErrors, report.ParsedAt,
		report.CreatedAt, report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("reportRepo.Create: %w", err)
	}
	return nil
}

func (r *reportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	var report domain.Report
	err := r.db.GetContext(ctx, &report, "SELECT * FROM reports WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("reportRepo.GetByID: %w", err)
	}
	return &report, nil
}

func (r *reportRepo) List(ctx context.Context, offset, limit int) ([]domain.Report, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM reports"); err != nil {
		return nil, 0, fmt.Errorf("reportRepo.List count: %w", err)
	}

	var reports []domain.Report
	err := r.db.SelectContext(ctx, &reports,
		"SELECT * FROM reports ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("reportRepo.List: %w", err)
	}
	return reports, total, nil
}

func (r *reportRepo) UpdateParseState(ctx context.Context, report *domain.Report) error {
	report.UpdatedAt = time.Now().UTC()
	if len(report.ExtractionErrors) == 0 {
		report.ExtractionErrors = []byte("[]")
	}

	query := `UPDATE reports SET
		bureau = $1, parsing_status = $2, parsing_error = $3, parse_attempts = $4, retry_after = $5,
		quality_score = $6, quality_tier = $7, parsing_confidence = $8, extraction_errors = $9,
		parsed_at = $10, updated_at = $11
		WHERE id = $12`

	result, err := r.db.ExecContext(ctx, query,
		report.Bureau, report.ParsingStatus, report.ParsingError, report.ParseAttempts, report.RetryAfter,
		report.QualityScore, report.QualityTier, report.ParsingConfidence, report.ExtractionErrors,
		report.ParsedAt, report.UpdatedAt, report.ID)
	if err != nil {
		return fmt.Errorf("reportRepo.UpdateParseState: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

// ClaimQueued flips due queued reports to processing. SKIP LOCKED keeps
// concurrent workers from claiming the same row.
func (r *reportRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.Report, error) {
	query := `UPDATE reports SET parsing_status = $1, updated_at = NOW()
		WHERE id IN (
			SELECT id FROM reports
			WHERE parsing_status = $2 AND (retry_after IS NULL OR retry_after <= NOW())
			ORDER BY created_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`

	var reports []domain.Report
	err := r.db.SelectContext(ctx, &reports, query,
		domain.ParsingStatusProcessing, domain.ParsingStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.ClaimQueued: %w", err)
	}
	return reports, nil
}
