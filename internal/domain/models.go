package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Report represents an uploaded credit bureau report and the state of its parse.
type Report struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	Bureau            Bureau          `db:"bureau" json:"bureau"`
	FileName          string          `db:"file_name" json:"file_name"`
	FileType          FileType        `db:"file_type" json:"file_type"`
	FileSize          int64           `db:"file_size" json:"file_size"`
	S3Bucket          string          `db:"s3_bucket" json:"s3_bucket"`
	S3Key             string          `db:"s3_key" json:"s3_key"`
	ContentType       string          `db:"content_type" json:"content_type"`
	ParsingStatus     ParsingStatus   `db:"parsing_status" json:"parsing_status"`
	ParsingError      string          `db:"parsing_error" json:"parsing_error"`
	ParseAttempts     int             `db:"parse_attempts" json:"parse_attempts"`
	RetryAfter        *time.Time      `db:"retry_after" json:"retry_after,omitempty"`
	QualityScore      int             `db:"quality_score" json:"quality_score"`
	QualityTier       QualityTier     `db:"quality_tier" json:"quality_tier"`
	ParsingConfidence int             `db:"parsing_confidence" json:"parsing_confidence"`
	ExtractionErrors  json.RawMessage `db:"extraction_errors" json:"extraction_errors"`
	ParsedAt          *time.Time      `db:"parsed_at" json:"parsed_at"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// ExtractionErrorList decodes the stored extraction errors. Malformed or empty JSON yields an empty list.
func (r *Report) ExtractionErrorList() []string {
	out := []string{}
	if len(r.ExtractionErrors) == 0 {
		return out
	}
	if err := json.Unmarshal(r.ExtractionErrors, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

// Stats holds aggregate counts across all reports.
type Stats struct {
	TotalReports      int     `db:"total_reports" json:"total_reports"`
	ParsingCompleted  int     `db:"parsing_completed" json:"parsing_completed"`
	ParsingFailed     int     `db:"parsing_failed" json:"parsing_failed"`
	ParsingProcessing int     `db:"parsing_processing" json:"parsing_processing"`
	ParsingPending    int     `db:"parsing_pending" json:"parsing_pending"`
	ParsingQueued     int     `db:"parsing_queued" json:"parsing_queued"`
	TierHigh          int     `db:"tier_high" json:"tier_high"`
	TierMedium        int     `db:"tier_medium" json:"tier_medium"`
	TierLow           int     `db:"tier_low" json:"tier_low"`
	TierRecovery      int     `db:"tier_recovery" json:"tier_recovery"`
	AvgConfidence     float64 `db:"avg_confidence" json:"avg_confidence"`
	TotalAccounts     int     `db:"total_accounts" json:"total_accounts"`
	NegativeItems     int     `db:"negative_items" json:"negative_items"`
	Inquiries         int     `db:"inquiries" json:"inquiries"`
}
