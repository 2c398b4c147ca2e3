package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/librarian-server/internal/domain"
)

func (s *Server) registerDashboardRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getLibraryStats",
		Method:      http.MethodGet,
		Path:        "/api/dashboard/stats",
		Summary:     "Library statistics",
		Description: "Copy, member and overdue counts computed at request time",
		Tags:        []string{"Dashboard"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetLibraryStats)
}

// LibraryStatsOutput wraps the dashboard statistics for Huma.
type LibraryStatsOutput struct {
	Body *domain.LibraryStats
}

func (s *Server) handleGetLibraryStats(ctx context.Context, _ *struct{}) (*LibraryStatsOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	stats, err := s.services.Dashboard.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &LibraryStatsOutput{Body: stats}, nil
}
