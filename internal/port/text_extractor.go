package port

import "context"

// ExtractInput carries a stored report file for text extraction.
type ExtractInput struct {
	FileBytes   []byte
	ContentType string
	// Bucket and Key locate the original object; used by extractors that read sidecar files.
	Bucket string
	Key    string
}

// ExtractOutput is the plain text of a report file.
type ExtractOutput struct {
	Text     string
	Provider string
	Pages    int
}

// TextExtractor turns a report file (typically a PDF) into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
