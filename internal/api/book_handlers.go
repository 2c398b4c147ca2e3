package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/librarian-server/internal/domain"
	"github.com/listenupapp/librarian-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/books",
		Summary:     "List books",
		Description: "Lists catalog books, optionally filtered by search text and category",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchBooks",
		Method:      http.MethodGet,
		Path:        "/api/books/search",
		Summary:     "Search books",
		Description: "Matches title, author and ISBN case-insensitively",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSearchBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "listAvailableBooks",
		Method:      http.MethodGet,
		Path:        "/api/books/available",
		Summary:     "List available books",
		Description: "Lists books with at least one copy on the shelf",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListAvailableBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/api/books/categories",
		Summary:     "List categories",
		Description: "Lists the distinct book categories in the catalog",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/books/{id}",
		Summary:     "Get book",
		Description: "Returns a book by ID",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createBook",
		Method:        http.MethodPost,
		Path:          "/api/books",
		Summary:       "Add book",
		Description:   "Adds a book to the catalog. All copies start on the shelf unless availableCopies is given.",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/api/books/{id}",
		Summary:     "Update book",
		Description: "Replaces a book's editable fields. Copies on loan stay out when availableCopies is omitted.",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/books/{id}",
		Summary:     "Delete book",
		Description: "Removes a book from the catalog. Its loans stay in the ledger.",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteBook)
}

// === DTOs ===

// ListBooksInput contains parameters for listing books.
type ListBooksInput struct {
	Search   string `query:"search" doc:"Case-insensitive match on title, author or ISBN"`
	Category string `query:"category" doc:"Exact category; empty or 'all' matches every book"`
}

// SearchBooksInput contains parameters for searching books.
type SearchBooksInput struct {
	Query string `query:"query" doc:"Case-insensitive match on title, author or ISBN"`
}

// BookIDInput identifies a single book.
type BookIDInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// BookRequest is the request body for creating or replacing a book. Unknown
// fields such as id or createdAt are accepted and ignored.
type BookRequest struct {
	_               struct{} `json:"-" additionalProperties:"true"`
	Title           string   `json:"title" doc:"Book title"`
	Author          string   `json:"author" doc:"Author name"`
	ISBN            string   `json:"isbn" doc:"ISBN"`
	Category        string   `json:"category" doc:"Shelf category"`
	Description     string   `json:"description,omitempty" doc:"Free text description"`
	PublishedYear   int      `json:"publishedYear,omitempty" doc:"Year of publication"`
	TotalCopies     int      `json:"totalCopies" doc:"Copies owned by the library"`
	AvailableCopies *int     `json:"availableCopies,omitempty" doc:"Copies on the shelf"`
	CoverImage      string   `json:"coverImage,omitempty" doc:"Cover image URL"`
}

func (r BookRequest) toInput() service.BookInput {
	return service.BookInput{
		Title:           r.Title,
		Author:          r.Author,
		ISBN:            r.ISBN,
		Category:        r.Category,
		Description:     r.Description,
		PublishedYear:   r.PublishedYear,
		TotalCopies:     r.TotalCopies,
		AvailableCopies: r.AvailableCopies,
		CoverImage:      r.CoverImage,
	}
}

// CreateBookInput wraps the create request for Huma.
type CreateBookInput struct {
	Body BookRequest
}

// UpdateBookInput wraps the update request for Huma.
type UpdateBookInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body BookRequest
}

// BookOutput wraps a single book for Huma.
type BookOutput struct {
	Body *domain.Book
}

// BookListOutput wraps a list of books for Huma.
type BookListOutput struct {
	Body []*domain.Book
}

// CategoryListOutput wraps the category list for Huma.
type CategoryListOutput struct {
	Body []string
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*BookListOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	books, err := s.services.Catalog.FilterBooks(ctx, input.Search, input.Category)
	if err != nil {
		return nil, err
	}
	return &BookListOutput{Body: books}, nil
}

func (s *Server) handleSearchBooks(ctx context.Context, input *SearchBooksInput) (*BookListOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	books, err := s.services.Catalog.SearchBooks(ctx, input.Query)
	if err != nil {
		return nil, err
	}
	return &BookListOutput{Body: books}, nil
}

func (s *Server) handleListAvailableBooks(ctx context.Context, _ *struct{}) (*BookListOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	books, err := s.services.Catalog.AvailableBooks(ctx)
	if err != nil {
		return nil, err
	}
	return &BookListOutput{Body: books}, nil
}

func (s *Server) handleListCategories(ctx context.Context, _ *struct{}) (*CategoryListOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	categories, err := s.services.Catalog.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return &CategoryListOutput{Body: categories}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *BookIDInput) (*BookOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	book, err := s.services.Catalog.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: book}, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	book, err := s.services.Catalog.AddBook(ctx, input.Body.toInput())
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: book}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	book, err := s.services.Catalog.UpdateBook(ctx, input.ID, input.Body.toInput())
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: book}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *BookIDInput) (*MessageOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Catalog.DeleteBook(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Book deleted"}}, nil
}
