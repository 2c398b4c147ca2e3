package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/listenupapp/librarian-server/internal/domain"
	"github.com/listenupapp/librarian-server/internal/store"
)

// DashboardService derives the library counters shown on the dashboard.
type DashboardService struct {
	store       *store.Store
	circulation *CirculationService
	membersOnly bool
	logger      *slog.Logger
	now         func() time.Time
}

// NewDashboardService creates a new dashboard service. Copy and loan counts
// are read under circulation's lock so a loan in flight is never half counted.
// When membersOnly is set, TotalMembers counts only users with the member role.
func NewDashboardService(s *store.Store, circulation *CirculationService, membersOnly bool, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		store:       s,
		circulation: circulation,
		membersOnly: membersOnly,
		logger:      logger,
		now:         time.Now,
	}
}

// Stats computes the counters from the current store contents.
func (s *DashboardService) Stats(ctx context.Context) (*domain.LibraryStats, error) {
	var total, available, borrowed, overdue int
	err := s.circulation.readConsistent(func() error {
		var err error
		if total, available, err = s.store.Catalog.CopyTotals(ctx); err != nil {
			return translate(err, "sum copies")
		}
		if borrowed, overdue, err = s.store.Ledger.LoanCounts(ctx, s.now()); err != nil {
			return translate(err, "count loans")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	members, err := s.store.Membership.CountUsers(ctx, s.membersOnly)
	if err != nil {
		return nil, translate(err, "count users")
	}

	stats := &domain.LibraryStats{
		TotalBooks:     total,
		AvailableBooks: available,
		BorrowedBooks:  borrowed,
		TotalMembers:   members,
		OverdueBooks:   overdue,
	}

	s.logger.Debug("dashboard stats computed",
		"total_books", stats.TotalBooks,
		"borrowed_books", stats.BorrowedBooks,
		"overdue_books", stats.OverdueBooks,
	)
	return stats, nil
}
