package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/librarian-server/internal/auth"
	"github.com/listenupapp/librarian-server/internal/config"
	"github.com/listenupapp/librarian-server/internal/logger"
	"github.com/listenupapp/librarian-server/internal/service"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Accounts, tokenService, log.Logger), nil
}

// ProvideCatalogService provides the book catalog service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(storeHandle.Catalog, log.Logger), nil
}

// ProvideMembershipService provides the library user service.
func ProvideMembershipService(i do.Injector) (*service.MembershipService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewMembershipService(storeHandle.Membership, log.Logger), nil
}

// ProvideCirculationService provides the lending service.
func ProvideCirculationService(i do.Injector) (*service.CirculationService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCirculationService(storeHandle.Store, cfg.Library.LoanPeriod, log.Logger), nil
}

// ProvideDashboardService provides the dashboard statistics service.
func ProvideDashboardService(i do.Injector) (*service.DashboardService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	circulation := do.MustInvoke[*service.CirculationService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDashboardService(storeHandle.Store, circulation, cfg.Library.MembersOnlyStats, log.Logger), nil
}

// ProvideSeeder provides the demo data seeder.
func ProvideSeeder(i do.Injector) (*service.Seeder, error) {
	catalog := do.MustInvoke[*service.CatalogService](i)
	membership := do.MustInvoke[*service.MembershipService](i)
	circulation := do.MustInvoke[*service.CirculationService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSeeder(catalog, membership, circulation, log.Logger), nil
}
