// Package di provides dependency injection configuration for the librarian server.
package di

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/listenupapp/librarian-server/internal/auth"
	"github.com/listenupapp/librarian-server/internal/config"
	"github.com/listenupapp/librarian-server/internal/di/providers"
	"github.com/listenupapp/librarian-server/internal/logger"
	"github.com/listenupapp/librarian-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideMembershipService)
	do.Provide(injector, providers.ProvideCirculationService)
	do.Provide(injector, providers.ProvideDashboardService)
	do.Provide(injector, providers.ProvideSeeder)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.MembershipService](injector)
	_ = do.MustInvoke[*service.CirculationService](injector)
	_ = do.MustInvoke[*service.DashboardService](injector)

	if cfg.Library.SeedDemoData {
		seeder := do.MustInvoke[*service.Seeder](injector)
		if err := seeder.Seed(context.Background()); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		log.Info("Demo data loaded")
	}

	// Server
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return fmt.Errorf("start HTTP server: %w", err)
	}

	return nil
}
