package providers

import (
	"context"
	"os"

	"github.com/samber/do/v2"

	"github.com/leadboard/leadboard-server/internal/config"
	"github.com/leadboard/leadboard-server/internal/logger"
	"github.com/leadboard/leadboard-server/internal/store/sessionstore"
	"github.com/leadboard/leadboard-server/internal/store/sqlite"
)

// StoreHandle wraps the SQLite store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the relational store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := os.MkdirAll(cfg.Storage.DataPath, 0o750); err != nil {
		return nil, err
	}

	dbPath := cfg.Storage.DatabasePath()
	db, err := sqlite.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// SessionStoreHandle wraps the session store with its maintenance loop.
type SessionStoreHandle struct {
	*sessionstore.Store
	cancel context.CancelFunc
	done   chan struct{}
}

// Shutdown implements do.Shutdownable.
func (h *SessionStoreHandle) Shutdown() error {
	h.cancel()
	<-h.done
	return h.Close()
}

// ProvideSessionStore provides the Badger-backed session store and starts
// its expiry sweep in the background.
func ProvideSessionStore(i do.Injector) (*SessionStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	sessions, err := sessionstore.Open(cfg.Storage.SessionsPath(), log.Logger, sessionstore.Options{})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		sessions.RunMaintenance(ctx, sessionstore.DefaultMaintenanceInterval)
	}()

	return &SessionStoreHandle{Store: sessions, cancel: cancel, done: done}, nil
}
