package ports

import (
	"context"
	"io"
)

// UploadReceiptInput carries a single uploaded receipt file. The reader
// must be seekable: the service reads a prefix for text extraction and
// rewinds before streaming the bytes to object storage.
type UploadReceiptInput struct {
	UserID      string
	Filename    string
	ContentType string
	Size        int64
	File        io.ReadSeeker
}

// UploadReceiptResult is returned after a successful upload.
type UploadReceiptResult struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	TextSnippet string `json:"text_snippet"`
	Verified    bool   `json:"verified"`
}

// ReceiptService ingests receipt files: extracts a text snippet, runs
// the verification heuristic, and stores the original bytes externally.
// Extraction failures are swallowed (empty snippet, verified=false);
// storage failures surface to the caller.
type ReceiptService interface {
	Upload(ctx context.Context, input UploadReceiptInput) (*UploadReceiptResult, error)
}
