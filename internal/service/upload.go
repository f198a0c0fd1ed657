package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	domainerrors "github.com/curioapp/curio-server/internal/errors"
	"github.com/curioapp/curio-server/internal/id"
	"github.com/curioapp/curio-server/internal/media/images"
)

// UploadService handles image uploads for item galleries and image
// fields. Uploaded files are validated by decoding, not by the
// client's declared content type.
type UploadService struct {
	processor *images.Processor
	maxSize   int64
	logger    *slog.Logger
}

// NewUploadService creates a new upload service.
func NewUploadService(processor *images.Processor, maxSize int64, logger *slog.Logger) *UploadService {
	return &UploadService{
		processor: processor,
		maxSize:   maxSize,
		logger:    logger,
	}
}

// Upload describes one stored image.
type Upload struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	Format   string `json:"format"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Size     int64  `json:"size"`
	BlurHash string `json:"blur_hash,omitempty"`
}

// UploadImage validates and stores one image, returning its public URL
// and metadata.
func (s *UploadService) UploadImage(ctx context.Context, userID, contentType string, data []byte) (*Upload, error) {
	if len(data) == 0 {
		return nil, domainerrors.Validation("empty upload")
	}
	if int64(len(data)) > s.maxSize {
		return nil, domainerrors.Validationf("image exceeds maximum size of %d bytes", s.maxSize)
	}
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return nil, domainerrors.Validationf("unsupported content type: %s", contentType)
	}

	// Stored file names are random UUIDs, not guessable sequential IDs.
	baseName := id.PrefixUpload + "-" + uuid.New().String()

	processed, err := s.processor.Process(baseName, data)
	if err != nil {
		return nil, domainerrors.Validation(err.Error())
	}

	if s.logger != nil {
		s.logger.Info("Image uploaded",
			"user_id", userID,
			"name", processed.Name,
			"format", processed.Format,
			"size", processed.Size,
		)
	}

	return &Upload{
		URL:      "/uploads/" + processed.Name,
		Name:     processed.Name,
		Format:   processed.Format,
		Width:    processed.Width,
		Height:   processed.Height,
		Size:     processed.Size,
		BlurHash: processed.BlurHash,
	}, nil
}

// UploadImages stores a batch of images. The batch is all or nothing:
// one invalid file fails the request and already-stored files from the
// batch are removed.
func (s *UploadService) UploadImages(ctx context.Context, userID string, files []UploadFile) ([]*Upload, error) {
	if len(files) == 0 {
		return nil, domainerrors.Validation("no files provided")
	}

	uploads := make([]*Upload, 0, len(files))
	for i, f := range files {
		upload, err := s.UploadImage(ctx, userID, f.ContentType, f.Data)
		if err != nil {
			s.rollback(uploads)
			if derr, ok := domainerrors.AsError(err); ok {
				return nil, derr.WithDetails(map[string]any{"file_index": i, "file_name": f.Name})
			}
			return nil, err
		}
		uploads = append(uploads, upload)
	}

	return uploads, nil
}

// UploadFile is one file from a multipart upload request.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

func (s *UploadService) rollback(uploads []*Upload) {
	for _, u := range uploads {
		if err := s.processor.Remove(u.Name); err != nil && s.logger != nil {
			s.logger.Warn("Failed to remove upload during rollback", "name", u.Name, "error", err)
		}
	}
}
