package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ecosphere/ecosphere-api/internal/api/metrics"
	"github.com/ecosphere/ecosphere-api/internal/core/domain"
	"github.com/ecosphere/ecosphere-api/internal/core/ports"
	"github.com/ecosphere/ecosphere-api/internal/receipt"
)

// ObjectStore abstracts the S3-compatible bucket receipts are stored in.
type ObjectStore interface {
	// Put streams the object and returns its public URL.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// ReceiptService ingests uploaded receipt files: extracts a short text
// snippet, applies the total-amount verification heuristic, and stores
// the original bytes under a per-user, UUID-qualified key.
type ReceiptService struct {
	store  ObjectStore
	logger zerolog.Logger
}

func NewReceiptService(store ObjectStore, logger zerolog.Logger) *ReceiptService {
	return &ReceiptService{store: store, logger: logger}
}

func (s *ReceiptService) Upload(ctx context.Context, input ports.UploadReceiptInput) (*ports.UploadReceiptResult, error) {
	if input.File == nil {
		return nil, domain.ErrNoFile
	}

	// Extraction is best effort and must never fail the upload; any
	// parse error just yields an empty snippet.
	snippet := receipt.Extract(input.File, input.Size, input.ContentType)
	verified := receipt.VerifyTotal(snippet)

	// Extraction consumed part of the stream; rewind before uploading.
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload stream: %w", err)
	}

	key := fmt.Sprintf("receipts/%s/%s%s", input.UserID, uuid.NewString(), filepath.Ext(input.Filename))
	url, err := s.store.Put(ctx, key, input.File, input.Size, input.ContentType)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("receipt upload failed")
		return nil, fmt.Errorf("store receipt: %w", err)
	}

	metrics.ReceiptUploadsTotal.WithLabelValues(strconv.FormatBool(verified)).Inc()
	s.logger.Info().Str("key", key).Bool("verified", verified).Msg("receipt stored")

	return &ports.UploadReceiptResult{
		URL:         url,
		Key:         key,
		TextSnippet: snippet,
		Verified:    verified,
	}, nil
}
