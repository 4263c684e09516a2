// Package di provides dependency injection configuration for the leadboard server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/leadboard/leadboard-server/internal/auth"
	"github.com/leadboard/leadboard-server/internal/config"
	"github.com/leadboard/leadboard-server/internal/di/providers"
	"github.com/leadboard/leadboard-server/internal/logger"
	"github.com/leadboard/leadboard-server/internal/metrics"
	"github.com/leadboard/leadboard-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideMetrics)
	do.Provide(injector, providers.ProvideAuthKey)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSessionStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideLeadService)
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideWebsiteService)
	do.Provide(injector, providers.ProvideAdminService)
	do.Provide(injector, providers.ProvideAdminBootstrap)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*metrics.Metrics](injector)

	if _, err := do.Invoke[providers.AuthKey](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SessionStoreHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.LeadService](injector)
	_ = do.MustInvoke[*service.TagService](injector)
	_ = do.MustInvoke[*service.UserService](injector)
	_ = do.MustInvoke[*service.WebsiteService](injector)
	_ = do.MustInvoke[*service.AdminService](injector)
	if _, err := do.Invoke[*providers.AdminBootstrap](injector); err != nil {
		return err
	}

	// Server
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}

	return nil
}
