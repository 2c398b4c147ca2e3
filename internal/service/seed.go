package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/listenupapp/librarian-server/internal/domain"
)

// Seeder loads a small demo catalog and membership.
type Seeder struct {
	catalog     *CatalogService
	membership  *MembershipService
	circulation *CirculationService
	logger      *slog.Logger
}

// NewSeeder creates a seeder over the given services.
func NewSeeder(catalog *CatalogService, membership *MembershipService, circulation *CirculationService, logger *slog.Logger) *Seeder {
	return &Seeder{
		catalog:     catalog,
		membership:  membership,
		circulation: circulation,
		logger:      logger,
	}
}

func copies(n int) *int { return &n }

var demoBooks = []BookInput{
	{Title: "The Hobbit", Author: "J.R.R. Tolkien", ISBN: "978-0547928227", Category: "Fiction", PublishedYear: 1937, TotalCopies: 3},
	{Title: "Dune", Author: "Frank Herbert", ISBN: "978-0441172719", Category: "Science Fiction", PublishedYear: 1965, TotalCopies: 2},
	{Title: "Cosmos", Author: "Carl Sagan", ISBN: "978-0345539434", Category: "Science", PublishedYear: 1980, TotalCopies: 1},
	{Title: "A Brief History of Time", Author: "Stephen Hawking", ISBN: "978-0553380163", Category: "Science", PublishedYear: 1988, TotalCopies: 2},
	{Title: "The Guns of August", Author: "Barbara W. Tuchman", ISBN: "978-0345476098", Category: "History", PublishedYear: 1962, TotalCopies: 1, AvailableCopies: copies(1)},
}

var demoUsers = []NewUserInput{
	{Name: "Ada Lovelace", Email: "ada@example.com", Role: domain.RoleMember},
	{Name: "Grace Hopper", Email: "grace@example.com", Role: domain.RoleMember},
	{Name: "Melvil Dewey", Email: "melvil@example.com", Role: domain.RoleLibrarian},
	{Name: "Site Admin", Email: "admin@example.com", Role: domain.RoleAdmin},
}

// Seed adds the demo books and users and lends two books so the dashboard has
// something to show.
func (s *Seeder) Seed(ctx context.Context) error {
	books := make([]*domain.Book, 0, len(demoBooks))
	for _, in := range demoBooks {
		book, err := s.catalog.AddBook(ctx, in)
		if err != nil {
			return fmt.Errorf("seed book %q: %w", in.Title, err)
		}
		books = append(books, book)
	}

	users := make([]*domain.User, 0, len(demoUsers))
	for _, in := range demoUsers {
		user, err := s.membership.AddUser(ctx, in)
		if err != nil {
			return fmt.Errorf("seed user %q: %w", in.Name, err)
		}
		users = append(users, user)
	}

	due := s.circulation.now().Add(7 * 24 * time.Hour)
	loans := []struct{ book, user int }{{0, 0}, {1, 1}}
	for _, l := range loans {
		if _, err := s.circulation.CreateLoan(ctx, books[l.book].ID, users[l.user].ID, &due); err != nil {
			return fmt.Errorf("seed loan: %w", err)
		}
	}

	s.logger.Info("demo data seeded",
		"books", len(books),
		"users", len(users),
		"loans", len(loans),
	)
	return nil
}
