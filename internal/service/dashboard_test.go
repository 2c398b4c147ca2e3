package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/librarian-server/internal/domain"
)

func TestDashboardService_Stats(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	dune := ts.addBook(t, "Dune", 3)
	cosmos := ts.addBook(t, "Cosmos", 2)
	ada := ts.addUser(t, "ada")
	_, err := ts.membership.AddUser(ctx, NewUserInput{Name: "Boss", Email: "boss@example.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = ts.circulation.CreateLoan(ctx, dune.ID, ada.ID, ptr(testNow.Add(time.Hour)))
	require.NoError(t, err)
	_, err = ts.circulation.CreateLoan(ctx, cosmos.ID, ada.ID, ptr(testNow.Add(72*time.Hour)))
	require.NoError(t, err)
	returned, err := ts.circulation.CreateLoan(ctx, dune.ID, ada.ID, ptr(testNow.Add(time.Hour)))
	require.NoError(t, err)
	_, err = ts.circulation.ReturnLoan(ctx, returned.ID)
	require.NoError(t, err)

	stats, err := ts.dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LibraryStats{
		TotalBooks:     5,
		AvailableBooks: 3,
		BorrowedBooks:  2,
		TotalMembers:   2,
		OverdueBooks:   0,
	}, *stats)

	// A day later the first loan is overdue; the returned one never is.
	ts.dashboard.now = func() time.Time { return testNow.Add(24 * time.Hour) }
	stats, err = ts.dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.OverdueBooks)
	assert.Equal(t, 2, stats.BorrowedBooks)
}

func TestDashboardService_MembersOnly(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	ts.addUser(t, "ada")
	_, err := ts.membership.AddUser(ctx, NewUserInput{Name: "Melvil", Email: "melvil@example.com", Role: domain.RoleLibrarian})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stats, err := NewDashboardService(ts.store, ts.circulation, true, logger).Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalMembers)
}

func TestDashboardService_Empty(t *testing.T) {
	ts := setupServices(t)

	stats, err := ts.dashboard.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.LibraryStats{}, *stats)
}

func TestDashboardService_StatsDuringCirculation(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	book := ts.addBook(t, "Dune", 3)
	users := make([]*domain.User, 6)
	for i := range users {
		users[i] = ts.addUser(t, fmt.Sprintf("reader%d", i))
	}

	var wg sync.WaitGroup
	for _, user := range users {
		wg.Go(func() {
			for range 50 {
				loan, err := ts.circulation.CreateLoan(ctx, book.ID, user.ID, &farFuture)
				if err != nil {
					continue
				}
				_, err = ts.circulation.ReturnLoan(ctx, loan.ID)
				assert.NoError(t, err)
			}
		})
	}
	wg.Go(func() {
		for range 500 {
			stats, err := ts.dashboard.Stats(ctx)
			if !assert.NoError(t, err) {
				return
			}
			// Every copy is either on the shelf or out on an open loan.
			assert.Equal(t, stats.TotalBooks, stats.AvailableBooks+stats.BorrowedBooks)
		}
	})
	wg.Wait()

	stats, err := ts.dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.AvailableBooks)
	assert.Zero(t, stats.BorrowedBooks)
}
