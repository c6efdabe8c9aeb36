package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"creditscan/internal/creditparser"
	"creditscan/internal/domain"
	"creditscan/internal/export"
	"creditscan/internal/logger"
	"creditscan/internal/ocr"
	"creditscan/internal/port"
)

const defaultMaxParseAttempts = 5

// Parse failure messages shown to users.
const (
	MsgNoTextInFile    = "no text could be read from the file"
	MsgNoDataExtracted = "no data could be extracted; possibly a scanned/image PDF, corrupted file, or unsupported format"
)

// UploadReportInput is the DTO for report upload requests.
type UploadReportInput struct {
	File   multipart.File
	Header *multipart.FileHeader
	// Bureau is an optional hint; empty or unrecognized values let the parser detect it.
	Bureau string
}

// ExportFile is a rendered export ready to be served as an attachment.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ReportServiceConfig holds the storage and parse settings of ReportService.
type ReportServiceConfig struct {
	Bucket           string
	MaxFileSizeMB    int64
	PresignExpiry    int64
	MaxParseAttempts int
	ParseTimeout     time.Duration
}

// ReportService defines the credit report management contract.
type ReportService interface {
	Upload(ctx context.Context, input UploadReportInput) (*domain.Report, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	List(ctx context.Context, offset, limit int) ([]domain.Report, int, error)
	RetryParse(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	GetResult(ctx context.Context, id uuid.UUID) (*domain.ParsingResult, error)
	GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	Export(ctx context.Context, id uuid.UUID, format domain.ExportFormat) (*ExportFile, error)
	// ParseText parses raw report text synchronously without persisting anything.
	ParseText(ctx context.Context, text, bureauHint string) (*domain.ParsingResult, error)
	// ParseReport runs the download, extract, parse and save pipeline for a
	// report already in processing status with ParseAttempts incremented.
	ParseReport(ctx context.Context, report *domain.Report, maxAttempts int)
}

type reportService struct {
	reportRepo port.ReportRepository
	creditRepo port.CreditDataRepository
	storage    port.ObjectStorage
	extractor  port.TextExtractor
	parser     port.ReportParser
	cfg        ReportServiceConfig
	log        *zap.Logger
}

// NewReportService creates a new ReportService implementation.
func NewReportService(
	reportRepo port.ReportRepository,
	creditRepo port.CreditDataRepository,
	storage port.ObjectStorage,
	extractor port.TextExtractor,
	parser port.ReportParser,
	cfg ReportServiceConfig,
	log *zap.Logger,
) ReportService {
	if cfg.MaxParseAttempts <= 0 {
		cfg.MaxParseAttempts = defaultMaxParseAttempts
	}
	if cfg.ParseTimeout <= 0 {
		cfg.ParseTimeout = 5 * time.Minute
	}
	return &reportService{
		reportRepo: reportRepo,
		creditRepo: creditRepo,
		storage:    storage,
		extractor:  extractor,
		parser:     parser,
		cfg:        cfg,
		log:        logger.OrNop(log),
	}
}

func (s *reportService) Upload(ctx context.Context, input UploadReportInput) (*domain.Report, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if maxBytes > 0 && input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Magic-byte check against the declared extension.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if !contentMatches(fileType, http.DetectContentType(buf[:n])) {
		return nil, domain.ErrUnsupportedFileType
	}

	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	reportID := uuid.New()
	contentType := domain.AllowedFileTypes[fileType]
	report := &domain.Report{
		ID:               reportID,
		Bureau:           domain.ParseBureau(input.Bureau),
		FileName:         input.Header.Filename,
		FileType:         fileType,
		FileSize:         input.Header.Size,
		S3Bucket:         s.cfg.Bucket,
		S3Key:            port.ReportKey(reportID, input.Header.Filename),
		ContentType:      contentType,
		ParsingStatus:    domain.ParsingStatusPending,
		ExtractionErrors: json.RawMessage("[]"),
	}

	s.log.Info("reportService.Upload: uploading report",
		zap.String("report_id", reportID.String()),
		zap.String("file_name", input.Header.Filename),
		zap.Int64("size", input.Header.Size),
		zap.String("bureau", string(report.Bureau)))

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      report.S3Bucket,
		Key:         report.S3Key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		s.log.Error("reportService.Upload: storage upload failed", zap.String("report_id", reportID.String()), zap.Error(err))
		return nil, domain.ErrUploadFailed
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		if delErr := s.storage.Delete(ctx, report.S3Bucket, report.S3Key); delErr != nil {
			s.log.Warn("reportService.Upload: failed to remove orphaned object",
				zap.String("key", report.S3Key), zap.Error(delErr))
		}
		return nil, fmt.Errorf("creating report: %w", err)
	}

	result := *report
	go s.parseInBackground(report.ID)
	return &result, nil
}

func contentMatches(fileType domain.FileType, detected string) bool {
	switch fileType {
	case domain.FileTypePDF:
		return detected == "application/pdf"
	case domain.FileTypeTXT:
		return strings.HasPrefix(detected, "text/plain")
	default:
		return false
	}
}

func (s *reportService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	return s.reportRepo.GetByID(ctx, id)
}

func (s *reportService) List(ctx context.Context, offset, limit int) ([]domain.Report, int, error) {
	return s.reportRepo.List(ctx, offset, limit)
}

func (s *reportService) RetryParse(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.ParsingStatus != domain.ParsingStatusFailed && report.ParsingStatus != domain.ParsingStatusCompleted {
		return nil, domain.ErrReportParseActive
	}

	report.ParsingStatus = domain.ParsingStatusPending
	report.ParsingError = ""
	report.ParseAttempts = 0
	report.RetryAfter = nil
	if err := s.reportRepo.UpdateParseState(ctx, report); err != nil {
		return nil, fmt.Errorf("resetting report for retry: %w", err)
	}

	s.log.Info("reportService.RetryParse: retrying parse", zap.String("report_id", id.String()))

	result := *report
	go s.parseInBackground(report.ID)
	return &result, nil
}

func (s *reportService) GetResult(ctx context.Context, id uuid.UUID) (*domain.ParsingResult, error) {
	_, result, err := s.loadResult(ctx, id)
	return result, err
}

func (s *reportService) loadResult(ctx context.Context, id uuid.UUID) (*domain.Report, *domain.ParsingResult, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if report.ParsingStatus != domain.ParsingStatusCompleted {
		return nil, nil, domain.ErrReportNotParsed
	}

	result, err := s.creditRepo.Load(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("loading credit data: %w", err)
	}
	result.Summary = creditparser.Summarize(result.Accounts)
	result.Bureau = report.Bureau
	result.QualityScore = report.QualityScore
	result.QualityTier = report.QualityTier
	result.ParsingConfidence = report.ParsingConfidence
	result.ExtractionErrors = report.ExtractionErrorList()
	return report, result, nil
}

func (s *reportService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, report.S3Bucket, report.S3Key, s.cfg.PresignExpiry)
}

func (s *reportService) Export(ctx context.Context, id uuid.UUID, format domain.ExportFormat) (*ExportFile, error) {
	if format != domain.ExportXLSX && format != domain.ExportCSV {
		return nil, domain.ErrUnsupportedExport
	}

	report, result, err := s.loadResult(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &ExportFile{FileName: export.BuildFilename(report.FileName, format)}
	switch format {
	case domain.ExportXLSX:
		data, err := export.Workbook(report, result)
		if err != nil {
			return nil, fmt.Errorf("rendering workbook: %w", err)
		}
		out.Data = data
		out.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case domain.ExportCSV:
		var buf bytes.Buffer
		if err := export.WriteAccountsCSV(&buf, result.Accounts); err != nil {
			return nil, fmt.Errorf("rendering csv: %w", err)
		}
		out.Data = buf.Bytes()
		out.ContentType = "text/csv; charset=utf-8"
	}
	return out, nil
}

func (s *reportService) ParseText(_ context.Context, text, bureauHint string) (*domain.ParsingResult, error) {
	return s.parser.Parse(text, bureauHint)
}

func (s *reportService) parseInBackground(id uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ParseTimeout)
	defer cancel()

	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("reportService.parseInBackground: failed to get report", zap.String("report_id", id.String()), zap.Error(err))
		return
	}
	report.ParseAttempts++
	report.ParsingStatus = domain.ParsingStatusProcessing
	if err := s.reportRepo.UpdateParseState(ctx, report); err != nil {
		s.log.Error("reportService.parseInBackground: failed to set processing status", zap.String("report_id", id.String()), zap.Error(err))
		return
	}

	s.ParseReport(ctx, report, s.cfg.MaxParseAttempts)
}

func (s *reportService) ParseReport(ctx context.Context, report *domain.Report, maxAttempts int) {
	text, provider, err := s.readText(ctx, report)
	if err != nil {
		s.handleParseError(ctx, report, err, maxAttempts)
		return
	}

	result, err := s.parser.Parse(text, string(report.Bureau))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoInputText):
			s.failParsing(ctx, report, MsgNoTextInFile)
		case errors.Is(err, domain.ErrRecoveryExhausted):
			s.failParsing(ctx, report, MsgNoDataExtracted)
		default:
			s.failParsing(ctx, report, fmt.Sprintf("parsing report: %v", err))
		}
		return
	}

	if err := s.creditRepo.ReplaceAll(ctx, report.ID, result); err != nil {
		s.failParsing(ctx, report, fmt.Sprintf("saving results: %v", err))
		return
	}

	extractionErrors, err := json.Marshal(result.ExtractionErrors)
	if err != nil {
		extractionErrors = json.RawMessage("[]")
	}

	now := time.Now().UTC()
	report.Bureau = result.Bureau
	report.QualityScore = result.QualityScore
	report.QualityTier = result.QualityTier
	report.ParsingConfidence = result.ParsingConfidence
	report.ExtractionErrors = extractionErrors
	report.ParsingStatus = domain.ParsingStatusCompleted
	report.ParsingError = ""
	report.ParsedAt = &now
	report.RetryAfter = nil
	if err := s.reportRepo.UpdateParseState(ctx, report); err != nil {
		s.log.Error("reportService.ParseReport: failed to save results", zap.String("report_id", report.ID.String()), zap.Error(err))
		return
	}

	s.log.Info("reportService.ParseReport: report parsed",
		zap.String("report_id", report.ID.String()),
		zap.String("provider", provider),
		zap.String("tier", string(result.QualityTier)),
		zap.Int("confidence", result.ParsingConfidence),
		zap.Int("accounts", len(result.Accounts)),
		zap.Int("attempt", report.ParseAttempts))
}

// readText returns the report's plain text. Text uploads are used as stored;
// other files go through the text extractor.
func (s *reportService) readText(ctx context.Context, report *domain.Report) (string, string, error) {
	fileBytes, err := s.storage.Download(ctx, report.S3Bucket, report.S3Key)
	if err != nil {
		return "", "", fmt.Errorf("downloading file: %w", err)
	}
	if report.FileType == domain.FileTypeTXT {
		return string(fileBytes), "upload", nil
	}

	out, err := s.extractor.Extract(ctx, port.ExtractInput{
		FileBytes:   fileBytes,
		ContentType: report.ContentType,
		Bucket:      report.S3Bucket,
		Key:         report.S3Key,
	})
	if err != nil {
		return "", "", fmt.Errorf("extracting text: %w", err)
	}
	return out.Text, out.Provider, nil
}

// handleParseError re-queues the report when text extraction was rate limited
// and attempts remain. Otherwise parsing is marked permanently failed.
func (s *reportService) handleParseError(ctx context.Context, report *domain.Report, parseErr error, maxAttempts int) {
	var rlErr *ocr.RateLimitError
	if errors.As(parseErr, &rlErr) && report.ParseAttempts < maxAttempts {
		retryAt := time.Now().Add(rlErr.RetryAfter)
		report.ParsingStatus = domain.ParsingStatusQueued
		report.ParsingError = fmt.Sprintf("rate limited by %s, queued for retry", rlErr.Provider)
		report.RetryAfter = &retryAt
		if err := s.reportRepo.UpdateParseState(ctx, report); err != nil {
			s.log.Error("reportService.handleParseError: failed to queue report", zap.String("report_id", report.ID.String()), zap.Error(err))
			return
		}
		s.log.Info("reportService.handleParseError: report queued for retry",
			zap.String("report_id", report.ID.String()),
			zap.Time("retry_after", retryAt),
			zap.Int("attempt", report.ParseAttempts))
		return
	}
	if errors.Is(parseErr, ocr.ErrNoText) {
		s.failParsing(ctx, report, MsgNoTextInFile)
		return
	}
	s.failParsing(ctx, report, parseErr.Error())
}

func (s *reportService) failParsing(ctx context.Context, report *domain.Report, errMsg string) {
	s.log.Warn("reportService.failParsing: report failed",
		zap.String("report_id", report.ID.String()),
		zap.String("error", errMsg),
		zap.Int("attempt", report.ParseAttempts))
	report.ParsingStatus = domain.ParsingStatusFailed
	report.ParsingError = errMsg
	report.RetryAfter = nil
	if err := s.reportRepo.UpdateParseState(ctx, report); err != nil {
		s.log.Error("reportService.failParsing: failed to update status", zap.String("report_id", report.ID.String()), zap.Error(err))
	}
}
