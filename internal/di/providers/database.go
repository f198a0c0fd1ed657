package providers

import (
	"github.com/samber/do/v2"

	"github.com/curioapp/curio-server/internal/config"
	"github.com/curioapp/curio-server/internal/logger"
	"github.com/curioapp/curio-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	st, err := store.New(cfg.DatabasePath(), log.Logger)
	if err != nil {
		return nil, err
	}

	return &StoreHandle{Store: st}, nil
}
