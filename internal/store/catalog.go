package store

import (
	"context"
	"sync"
	"time"

	"github.com/listenupapp/librarian-server/internal/domain"
	"github.com/listenupapp/librarian-server/internal/normalize"
)

// BookFilter selects books from the catalog.
type BookFilter struct {
	// Search is matched case-insensitively against title, author and isbn.
	Search string
	// Category is matched exactly; "" and "all" match everything.
	Category string
	// AvailableOnly keeps books with at least one copy on the shelf.
	AvailableOnly bool
}

// Catalog holds the library's books in insertion order.
type Catalog struct {
	mu    sync.RWMutex
	books *orderedMap[*domain.Book]
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{books: newOrderedMap[*domain.Book]()}
}

// CreateBook appends a new book.
func (c *Catalog) CreateBook(ctx context.Context, book *domain.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkCopies(book); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.books.get(book.ID); exists {
		return ErrBookExists
	}
	c.books.set(book.ID, book.Clone())
	return nil
}

// GetBook returns a copy of the book with the given ID.
func (c *Catalog) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	book, ok := c.books.get(id)
	if !ok {
		return nil, ErrBookNotFound
	}
	return book.Clone(), nil
}

// UpdateBook applies fn to a copy of the stored book and saves the result.
// fn runs under the catalog write lock, so no loan can take or return a copy
// between reading and writing. An error from fn leaves the book unchanged.
// ID and CreatedAt cannot be changed.
func (c *Catalog) UpdateBook(ctx context.Context, id string, fn func(book *domain.Book) error) (*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.books.get(id)
	if !ok {
		return nil, ErrBookNotFound
	}

	updated := existing.Clone()
	if err := fn(updated); err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := checkCopies(updated); err != nil {
		return nil, err
	}

	c.books.set(id, updated)
	return updated.Clone(), nil
}

// DeleteBook removes a book. Loans that reference it are left alone.
func (c *Catalog) DeleteBook(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.books.delete(id) {
		return ErrBookNotFound
	}
	return nil
}

// ListBooks returns the books matching filter in insertion order.
func (c *Catalog) ListBooks(ctx context.Context, filter BookFilter) ([]*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matcher := normalize.NewMatcher(filter.Search)

	c.mu.RLock()
	defer c.mu.RUnlock()

	books := make([]*domain.Book, 0, c.books.len())
	for _, book := range c.books.all() {
		if filter.AvailableOnly && !book.IsAvailable() {
			continue
		}
		if !book.InCategory(filter.Category) {
			continue
		}
		if !matcher.Any(book.Title, book.Author, book.ISBN) {
			continue
		}
		books = append(books, book.Clone())
	}
	return books, nil
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, book := range c.books.all() {
		if book.Category == "" || seen[book.Category] {
			continue
		}
		seen[book.Category] = true
		categories = append(categories, book.Category)
	}
	return categories, nil
}

// Snapshot returns copies of every book keyed by ID.
func (c *Catalog) Snapshot(ctx context.Context) (map[string]*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]*domain.Book, c.books.len())
	for id, book := range c.books.all() {
		out[id] = book.Clone()
	}
	return out, nil
}

// CopyTotals returns the summed total and available copies across the catalog.
func (c *Catalog) CopyTotals(ctx context.Context) (total, available int, err error) {
	if err = ctx.Err(); err != nil {
		return 0, 0, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, book := range c.books.all() {
		total += book.TotalCopies
		available += book.AvailableCopies
	}
	return total, available, nil
}

// Reserve takes one copy of a book off the shelf. The availability check and
// the decrement happen under one lock, so concurrent callers cannot both take
// the last copy.
func (c *Catalog) Reserve(ctx context.Context, id string, now time.Time) (*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	book, ok := c.books.get(id)
	if !ok {
		return nil, ErrBookNotFound
	}
	if !book.IsAvailable() {
		return nil, ErrNoCopiesAvailable
	}

	book.AvailableCopies--
	book.Touch(now)
	return book.Clone(), nil
}

// Release puts one copy of a book back on the shelf. AvailableCopies never
// exceeds TotalCopies.
func (c *Catalog) Release(ctx context.Context, id string, now time.Time) (*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	book, ok := c.books.get(id)
	if !ok {
		return nil, ErrBookNotFound
	}

	if book.AvailableCopies < book.TotalCopies {
		book.AvailableCopies++
		book.Touch(now)
	}
	return book.Clone(), nil
}

func checkCopies(book *domain.Book) error {
	if book.TotalCopies < 1 || book.AvailableCopies < 0 || book.AvailableCopies > book.TotalCopies {
		return ErrInvalidCopies
	}
	return nil
}
