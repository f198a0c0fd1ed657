// Package service implements Curio's business logic on top of the
// store, search index, and media storage.
package service

import (
	"github.com/curioapp/curio-server/internal/validation"
)

// validate is a shared validator instance for request validation.
var validate = validation.New()

// Services aggregates all application services for handler wiring.
type Services struct {
	Auth       *AuthService
	Categories *CategoryService
	Items      *ItemService
	Uploads    *UploadService
	Search     *SearchService
}
