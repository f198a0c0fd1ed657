package providers

import (
	"github.com/samber/do/v2"

	"github.com/curioapp/curio-server/internal/auth"
	"github.com/curioapp/curio-server/internal/config"
	"github.com/curioapp/curio-server/internal/logger"
	"github.com/curioapp/curio-server/internal/media/images"
	"github.com/curioapp/curio-server/internal/service"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideCategoryService provides the category service.
func ProvideCategoryService(i do.Injector) (*service.CategoryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCategoryService(storeHandle.Store, searchService, log.Logger), nil
}

// ProvideItemService provides the item service.
func ProvideItemService(i do.Injector) (*service.ItemService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewItemService(storeHandle.Store, searchService, log.Logger), nil
}

// ProvideUploadService provides the image upload service.
func ProvideUploadService(i do.Injector) (*service.UploadService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	processor := do.MustInvoke[*images.Processor](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUploadService(processor, cfg.Uploads.MaxSize, log.Logger), nil
}

// ProvideServices bundles the business services for the API server.
func ProvideServices(i do.Injector) (*service.Services, error) {
	return &service.Services{
		Auth:       do.MustInvoke[*service.AuthService](i),
		Categories: do.MustInvoke[*service.CategoryService](i),
		Items:      do.MustInvoke[*service.ItemService](i),
		Uploads:    do.MustInvoke[*service.UploadService](i),
		Search:     do.MustInvoke[*service.SearchService](i),
	}, nil
}
