package api

import "github.com/listenupapp/librarian-server/internal/service"

// Services groups the business logic services used by the API server.
type Services struct {
	Auth        *service.AuthService
	Catalog     *service.CatalogService
	Membership  *service.MembershipService
	Circulation *service.CirculationService
	Dashboard   *service.DashboardService
}
