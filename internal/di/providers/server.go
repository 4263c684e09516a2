package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/leadboard/leadboard-server/internal/api"
	"github.com/leadboard/leadboard-server/internal/config"
	"github.com/leadboard/leadboard-server/internal/logger"
	"github.com/leadboard/leadboard-server/internal/metrics"
	"github.com/leadboard/leadboard-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	handler *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.handler.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server and starts listening.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	m := do.MustInvoke[*metrics.Metrics](i)

	services := &api.Services{
		Auth:    do.MustInvoke[*service.AuthService](i),
		Lead:    do.MustInvoke[*service.LeadService](i),
		Tag:     do.MustInvoke[*service.TagService](i),
		User:    do.MustInvoke[*service.UserService](i),
		Website: do.MustInvoke[*service.WebsiteService](i),
		Admin:   do.MustInvoke[*service.AdminService](i),
	}

	handler := api.NewServer(storeHandle.Store, services, m, api.Options{
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		SecureCookies:      cfg.IsProduction(),
		SessionDuration:    cfg.Auth.SessionDuration,
		LoginRateLimit:     cfg.Auth.LoginRateLimit,
	}, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv, handler: handler}, nil
}
