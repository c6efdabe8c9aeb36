package port

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// ReportKey is the object key of an uploaded report file.
func ReportKey(reportID uuid.UUID, fileName string) string {
	return "reports/" + reportID.String() + "/" + fileName
}

// UploadInput describes one report file (or text sidecar) to store.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput is what the store reports back after an upload.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage keeps the raw uploaded reports.
//
// Download returns an error wrapping domain.ErrNotFound for a missing key and
// domain.ErrFileTooLarge when the object exceeds the configured size limit.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	Delete(ctx context.Context, bucket, key string) error
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}
