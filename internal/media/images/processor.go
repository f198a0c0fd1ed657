package images

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
)

// Processed describes a validated, stored upload.
type Processed struct {
	Name     string // Stored file name, e.g. "upl-xxx.png"
	Format   string // "jpeg", "png", "gif", "webp"
	Width    int
	Height   int
	Size     int64  // Bytes
	BlurHash string // Placeholder hash for progressive loading
}

// extByFormat maps decoded formats to canonical file extensions.
var extByFormat = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
}

// Processor validates uploaded images and stores them.
type Processor struct {
	storage *Storage
	logger  *slog.Logger
}

// NewProcessor creates a new Processor instance.
func NewProcessor(storage *Storage, logger *slog.Logger) *Processor {
	return &Processor{
		storage: storage,
		logger:  logger,
	}
}

// Process validates the image data, stores it under the given base
// name with an extension derived from the actual format, and returns
// metadata about the stored file. Rejects data that doesn't decode as
// a supported image, regardless of the declared content type.
func (p *Processor) Process(baseName string, imgData []byte) (*Processed, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(imgData))
	if err != nil {
		return nil, fmt.Errorf("unsupported or corrupt image: %w", err)
	}

	ext, ok := extByFormat[format]
	if !ok {
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}

	name := baseName + ext
	if err := p.storage.Save(name, imgData); err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	hash, err := ComputeBlurHash(imgData)
	if err != nil {
		// The placeholder is cosmetic; keep the upload.
		p.logger.Warn("failed to compute blurhash", "name", name, "error", err)
		hash = ""
	}

	p.logger.Debug("processed upload",
		"name", name,
		"format", format,
		"width", cfg.Width,
		"height", cfg.Height,
		"size", len(imgData),
	)

	return &Processed{
		Name:     name,
		Format:   format,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Size:     int64(len(imgData)),
		BlurHash: hash,
	}, nil
}

// Remove deletes a stored upload by name. Removing a name that does
// not exist is a no-op.
func (p *Processor) Remove(name string) error {
	return p.storage.Delete(name)
}
