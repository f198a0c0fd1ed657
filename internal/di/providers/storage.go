package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/curioapp/curio-server/internal/config"
	"github.com/curioapp/curio-server/internal/logger"
	"github.com/curioapp/curio-server/internal/media/images"
)

// UploadStorage wraps the image storage for uploaded item photos.
type UploadStorage struct {
	*images.Storage
}

// ProvideUploadStorage provides the uploads filesystem storage.
func ProvideUploadStorage(i do.Injector) (*UploadStorage, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	storage, err := images.NewStorage(cfg.UploadsPath())
	if err != nil {
		return nil, fmt.Errorf("upload storage: %w", err)
	}

	log.Info("Upload storage initialized", "path", cfg.UploadsPath())

	return &UploadStorage{Storage: storage}, nil
}

// ProvideImageProcessor provides the image processor for uploads.
func ProvideImageProcessor(i do.Injector) (*images.Processor, error) {
	storage := do.MustInvoke[*UploadStorage](i)
	log := do.MustInvoke[*logger.Logger](i)

	return images.NewProcessor(storage.Storage, log.Logger), nil
}
