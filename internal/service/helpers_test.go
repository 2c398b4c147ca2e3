package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/listenupapp/librarian-server/internal/domain"
	"github.com/listenupapp/librarian-server/internal/store"
)

var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type testServices struct {
	store       *store.Store
	catalog     *CatalogService
	membership  *MembershipService
	circulation *CirculationService
	dashboard   *DashboardService
}

// setupServices wires every service over fresh stores with a fixed clock.
func setupServices(t *testing.T) *testServices {
	t.Helper()

	s := store.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := func() time.Time { return testNow }

	circulation := NewCirculationService(s, DefaultLoanPeriod, logger)
	ts := &testServices{
		store:       s,
		catalog:     NewCatalogService(s.Catalog, logger),
		membership:  NewMembershipService(s.Membership, logger),
		circulation: circulation,
		dashboard:   NewDashboardService(s, circulation, false, logger),
	}
	ts.catalog.now = clock
	ts.membership.now = clock
	ts.circulation.now = clock
	ts.dashboard.now = clock
	return ts
}

func (ts *testServices) addBook(t *testing.T, title string, copies int) *domain.Book {
	t.Helper()
	book, err := ts.catalog.AddBook(context.Background(), BookInput{
		Title:       title,
		Author:      "Author of " + title,
		ISBN:        "978-" + title,
		Category:    "Fiction",
		TotalCopies: copies,
	})
	require.NoError(t, err)
	return book
}

func (ts *testServices) addUser(t *testing.T, name string) *domain.User {
	t.Helper()
	user, err := ts.membership.AddUser(context.Background(), NewUserInput{
		Name:  name,
		Email: name + "@example.com",
	})
	require.NoError(t, err)
	return user
}

func (ts *testServices) availableCopies(t *testing.T, bookID string) int {
	t.Helper()
	book, err := ts.store.Catalog.GetBook(context.Background(), bookID)
	require.NoError(t, err)
	return book.AvailableCopies
}

func ptr[T any](v T) *T { return &v }
