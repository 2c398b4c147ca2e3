package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/listenupapp/librarian-server/internal/logger"
	"github.com/listenupapp/librarian-server/internal/store"
)

// StoreHandle wraps the in-memory stores with shutdown capability.
type StoreHandle struct {
	*store.Store
	log *logger.Logger
}

// Shutdown implements do.Shutdownable. The stores live in memory only, so
// shutting down reports what is being discarded.
func (h *StoreHandle) Shutdown() error {
	total, available, err := h.Catalog.CopyTotals(context.Background())
	if err != nil {
		return err
	}
	h.log.Info("Discarding in-memory stores",
		"copies", total,
		"copies_on_loan", total-available,
		"loans", h.Ledger.Len(),
	)
	return nil
}

// ProvideStore provides the catalog, membership, ledger and account stores.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	st := store.New()
	log.Info("In-memory stores initialized")

	return &StoreHandle{Store: st, log: log}, nil
}
