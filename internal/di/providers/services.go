package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/leadboard/leadboard-server/internal/auth"
	"github.com/leadboard/leadboard-server/internal/config"
	"github.com/leadboard/leadboard-server/internal/logger"
	"github.com/leadboard/leadboard-server/internal/metrics"
	"github.com/leadboard/leadboard-server/internal/service"
)

// ProvideMetrics provides the Prometheus collectors.
func ProvideMetrics(i do.Injector) (*metrics.Metrics, error) {
	return metrics.New(), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sessionsHandle := do.MustInvoke[*SessionStoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	m := do.MustInvoke[*metrics.Metrics](i)

	return service.NewAuthService(
		storeHandle.Store,
		sessionsHandle.Store,
		tokens,
		cfg.Auth.SessionDuration,
		m,
		log.Logger,
	), nil
}

// ProvideLeadService provides the lead service.
func ProvideLeadService(i do.Injector) (*service.LeadService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	return service.NewLeadService(storeHandle.Store, m, log.Logger), nil
}

// ProvideTagService provides the tag service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	return service.NewTagService(storeHandle.Store, log.Logger), nil
}

// ProvideUserService provides the user directory service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	return service.NewUserService(storeHandle.Store), nil
}

// ProvideWebsiteService provides the website service.
func ProvideWebsiteService(i do.Injector) (*service.WebsiteService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	return service.NewWebsiteService(storeHandle.Store), nil
}

// ProvideAdminService provides the account administration service.
func ProvideAdminService(i do.Injector) (*service.AdminService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sessionsHandle := do.MustInvoke[*SessionStoreHandle](i)
	return service.NewAdminService(storeHandle.Store, sessionsHandle.Store, log.Logger), nil
}

// AdminBootstrap records whether startup created the first administrator.
type AdminBootstrap struct {
	Created bool
}

// ProvideAdminBootstrap creates the configured administrator on an empty database.
func ProvideAdminBootstrap(i do.Injector) (*AdminBootstrap, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	authService := do.MustInvoke[*service.AuthService](i)

	created, err := authService.BootstrapAdmin(context.Background(),
		cfg.Auth.AdminName, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)
	if err != nil {
		return nil, err
	}
	if !created && cfg.Auth.AdminEmail == "" {
		log.Debug("No bootstrap administrator configured")
	}

	return &AdminBootstrap{Created: created}, nil
}
