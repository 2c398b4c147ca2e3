package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/listenupapp/librarian-server/internal/domain"
	domainerrors "github.com/listenupapp/librarian-server/internal/errors"
	"github.com/listenupapp/librarian-server/internal/id"
	"github.com/listenupapp/librarian-server/internal/store"
	"github.com/listenupapp/librarian-server/internal/validation"
)

// BookInput carries the editable fields of a book. It is used for both
// creation and full replacement.
type BookInput struct {
	Title         string `json:"title" validate:"required,notblank,max=500"`
	Author        string `json:"author" validate:"required,notblank,max=300"`
	ISBN          string `json:"isbn" validate:"required,notblank,max=32"`
	Category      string `json:"category" validate:"required,notblank,max=100"`
	Description   string `json:"description,omitempty" validate:"max=5000"`
	PublishedYear int    `json:"publishedYear,omitempty" validate:"omitempty,gte=1000"`
	TotalCopies   int    `json:"totalCopies" validate:"min=1"`
	// AvailableCopies defaults to TotalCopies on create. On update, nil keeps
	// the copies currently on loan out.
	AvailableCopies *int   `json:"availableCopies,omitempty" validate:"omitnil,min=0"`
	CoverImage      string `json:"coverImage,omitempty" validate:"omitempty,max=2048"`
}

// CatalogService handles business logic for the book catalog.
type CatalogService struct {
	catalog   *store.Catalog
	logger    *slog.Logger
	validator *validation.Validator
	now       func() time.Time
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(catalog *store.Catalog, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		catalog:   catalog,
		logger:    logger,
		validator: validation.New(),
		now:       time.Now,
	}
}

// AddBook validates input and appends a new book to the catalog.
func (s *CatalogService) AddBook(ctx context.Context, in BookInput) (*domain.Book, error) {
	if err := s.validateBook(in); err != nil {
		return nil, err
	}

	bookID, err := id.Generate(id.PrefixBook)
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	book := &domain.Book{ID: bookID}
	applyBookInput(book, in)
	book.AvailableCopies = book.TotalCopies
	if in.AvailableCopies != nil {
		book.AvailableCopies = *in.AvailableCopies
	}
	book.InitTimestamps(s.now())

	if err := s.catalog.CreateBook(ctx, book); err != nil {
		return nil, translate(err, "create book")
	}

	s.logger.Info("book added",
		"book_id", book.ID,
		"title", book.Title,
		"copies", book.TotalCopies,
	)
	return book, nil
}

// UpdateBook replaces every editable field of a book and bumps UpdatedAt.
func (s *CatalogService) UpdateBook(ctx context.Context, bookID string, in BookInput) (*domain.Book, error) {
	if err := s.validateBook(in); err != nil {
		return nil, err
	}

	now := s.now()
	book, err := s.catalog.UpdateBook(ctx, bookID, func(b *domain.Book) error {
		copiesOut := b.CopiesOut()
		applyBookInput(b, in)
		if in.AvailableCopies != nil {
			b.AvailableCopies = *in.AvailableCopies
		} else {
			b.AvailableCopies = b.TotalCopies - copiesOut
			if b.AvailableCopies < 0 {
				return domainerrors.ValidationWithDetails("validation failed", map[string]string{
					"totalCopies": fmt.Sprintf("must be at least %d, the number of copies on loan", copiesOut),
				})
			}
		}
		b.Touch(now)
		return nil
	})
	if err != nil {
		return nil, translate(err, "update book")
	}

	s.logger.Info("book updated", "book_id", book.ID)
	return book, nil
}

// GetBook returns a single book.
func (s *CatalogService) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.catalog.GetBook(ctx, bookID)
	if err != nil {
		return nil, translate(err, "get book")
	}
	return book, nil
}

// DeleteBook removes a book. Loans that reference it keep their dangling
// reference and resolve to placeholders.
func (s *CatalogService) DeleteBook(ctx context.Context, bookID string) error {
	if err := s.catalog.DeleteBook(ctx, bookID); err != nil {
		return translate(err, "delete book")
	}
	s.logger.Info("book deleted", "book_id", bookID)
	return nil
}

// FilterBooks returns books whose title, author or isbn contains search and
// whose category matches. An empty or "all" category matches every book.
func (s *CatalogService) FilterBooks(ctx context.Context, search, category string) ([]*domain.Book, error) {
	books, err := s.catalog.ListBooks(ctx, store.BookFilter{Search: search, Category: category})
	if err != nil {
		return nil, translate(err, "list books")
	}
	return books, nil
}

// SearchBooks is FilterBooks across every category.
func (s *CatalogService) SearchBooks(ctx context.Context, query string) ([]*domain.Book, error) {
	return s.FilterBooks(ctx, query, domain.CategoryAll)
}

// AvailableBooks returns books with at least one copy on the shelf.
func (s *CatalogService) AvailableBooks(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.catalog.ListBooks(ctx, store.BookFilter{AvailableOnly: true})
	if err != nil {
		return nil, translate(err, "list available books")
	}
	return books, nil
}

// Categories returns the distinct categories in the catalog.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return nil, translate(err, "list categories")
	}
	return categories, nil
}

func (s *CatalogService) validateBook(in BookInput) error {
	if err := s.validator.Validate(in); err != nil {
		return err
	}

	details := make(map[string]string)
	if year := s.now().Year(); in.PublishedYear > year {
		details["publishedYear"] = fmt.Sprintf("must not be after %d", year)
	}
	if in.AvailableCopies != nil && *in.AvailableCopies > in.TotalCopies {
		details["availableCopies"] = "must be less than or equal to totalCopies"
	}
	if len(details) > 0 {
		return domainerrors.ValidationWithDetails("validation failed", details)
	}
	return nil
}

func applyBookInput(book *domain.Book, in BookInput) {
	book.Title = in.Title
	book.Author = in.Author
	book.ISBN = in.ISBN
	book.Category = in.Category
	book.Description = in.Description
	book.PublishedYear = in.PublishedYear
	book.TotalCopies = in.TotalCopies
	book.CoverImage = in.CoverImage
}
