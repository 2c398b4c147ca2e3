package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/listenupapp/librarian-server/internal/domain"
)

// BookRequest is the body for creating or replacing a book.
type BookRequest struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	Category        string `json:"category"`
	Description     string `json:"description,omitempty"`
	PublishedYear   int    `json:"publishedYear,omitempty"`
	TotalCopies     int    `json:"totalCopies"`
	AvailableCopies *int   `json:"availableCopies,omitempty"`
	CoverImage      string `json:"coverImage,omitempty"`
}

// UserRequest is the body for creating a user.
type UserRequest struct {
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	MembershipID string      `json:"membershipId,omitempty"`
	Role         domain.Role `json:"role,omitempty"`
}

// UserUpdate is a partial user update. Nil fields are left unchanged.
type UserUpdate struct {
	Name         *string      `json:"name,omitempty"`
	Email        *string      `json:"email,omitempty"`
	MembershipID *string      `json:"membershipId,omitempty"`
	Role         *domain.Role `json:"role,omitempty"`
	IsActive     *bool        `json:"isActive,omitempty"`
}

type credentials struct {
	Username string             `json:"username"`
	Password string             `json:"password"`
	Role     domain.AccountRole `json:"role,omitempty"`
}

type message struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.Do(ctx, http.MethodPost, "/api/auth/login", nil, credentials{Username: username, Password: password}, &out); err != nil {
		return "", err
	}
	c.token = out.Token
	return out.Token, nil
}

// Register creates a staff account.
func (c *Client) Register(ctx context.Context, username, password string, role domain.AccountRole) (*domain.Account, error) {
	var out domain.Account
	body := credentials{Username: username, Password: password, Role: role}
	if err := c.Do(ctx, http.MethodPost, "/api/auth/register", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health returns the server health status.
func (c *Client) Health(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.Do(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

// ListBooks returns books matching search and category. Empty values and the
// category "all" do not filter.
func (c *Client) ListBooks(ctx context.Context, search, category string) ([]domain.Book, error) {
	q := url.Values{}
	setIf(q, "search", search)
	setIf(q, "category", category)

	var out []domain.Book
	if err := c.Do(ctx, http.MethodGet, "/api/books", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AvailableBooks returns books with at least one copy on the shelf.
func (c *Client) AvailableBooks(ctx context.Context) ([]domain.Book, error) {
	var out []domain.Book
	if err := c.Do(ctx, http.MethodGet, "/api/books/available", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories returns the distinct book categories.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.Do(ctx, http.MethodGet, "/api/books/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBook returns one book.
func (c *Client) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	var out domain.Book
	if err := c.Do(ctx, http.MethodGet, "/api/books/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBook adds a book to the catalog.
func (c *Client) CreateBook(ctx context.Context, req BookRequest) (*domain.Book, error) {
	var out domain.Book
	if err := c.Do(ctx, http.MethodPost, "/api/books", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBook replaces a book's fields.
func (c *Client) UpdateBook(ctx context.Context, id string, req BookRequest) (*domain.Book, error) {
	var out domain.Book
	if err := c.Do(ctx, http.MethodPut, "/api/books/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBook removes a book and returns the server message.
func (c *Client) DeleteBook(ctx context.Context, id string) (string, error) {
	var out message
	if err := c.Do(ctx, http.MethodDelete, "/api/books/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ListUsers returns users matching search and role.
func (c *Client) ListUsers(ctx context.Context, search, role string) ([]domain.User, error) {
	q := url.Values{}
	setIf(q, "search", search)
	setIf(q, "role", role)

	var out []domain.User
	if err := c.Do(ctx, http.MethodGet, "/api/users", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser returns one user.
func (c *Client) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var out domain.User
	if err := c.Do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser adds a member.
func (c *Client) CreateUser(ctx context.Context, req UserRequest) (*domain.User, error) {
	var out domain.User
	if err := c.Do(ctx, http.MethodPost, "/api/users", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser applies a partial update.
func (c *Client) UpdateUser(ctx context.Context, id string, req UserUpdate) (*domain.User, error) {
	var out domain.User
	if err := c.Do(ctx, http.MethodPatch, "/api/users/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetActive sets a user's active flag.
func (c *Client) SetActive(ctx context.Context, id string, active bool) (*domain.User, error) {
	var out domain.User
	body := struct {
		IsActive bool `json:"isActive"`
	}{active}
	if err := c.Do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id)+"/active", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleActive flips a user's active flag.
func (c *Client) ToggleActive(ctx context.Context, id string) (*domain.User, error) {
	var out domain.User
	if err := c.Do(ctx, http.MethodPost, "/api/users/"+url.PathEscape(id)+"/toggle-active", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes a user and returns the server message.
func (c *Client) DeleteUser(ctx context.Context, id string) (string, error) {
	var out message
	if err := c.Do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// UserLoans returns a user's loans, filtered by stored status.
func (c *Client) UserLoans(ctx context.Context, id, status string) ([]domain.LoanView, error) {
	q := url.Values{}
	setIf(q, "status", status)

	var out []domain.LoanView
	if err := c.Do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id)+"/loans", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Borrow lends a copy of bookID to userID. A nil dueDate uses the server's
// default loan period.
func (c *Client) Borrow(ctx context.Context, userID, bookID string, dueDate *time.Time) (*domain.BorrowRecord, error) {
	q := url.Values{}
	if dueDate != nil {
		q.Set("dueDate", dueDate.UTC().Format(time.RFC3339))
	}

	var out domain.BorrowRecord
	path := "/api/borrow/" + url.PathEscape(userID) + "/" + url.PathEscape(bookID)
	if err := c.Do(ctx, http.MethodPost, path, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Return marks a loan returned.
func (c *Client) Return(ctx context.Context, loanID string) (*domain.BorrowRecord, error) {
	var out domain.BorrowRecord
	if err := c.Do(ctx, http.MethodPut, "/api/borrow/return/"+url.PathEscape(loanID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListLoans returns loans matching search and stored status.
func (c *Client) ListLoans(ctx context.Context, search, status string) ([]domain.LoanView, error) {
	q := url.Values{}
	setIf(q, "search", search)
	setIf(q, "status", status)

	var out []domain.LoanView
	if err := c.Do(ctx, http.MethodGet, "/api/borrow", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetLoan returns one loan.
func (c *Client) GetLoan(ctx context.Context, id string) (*domain.LoanView, error) {
	var out domain.LoanView
	if err := c.Do(ctx, http.MethodGet, "/api/borrow/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats returns the dashboard counters.
func (c *Client) Stats(ctx context.Context) (*domain.LibraryStats, error) {
	var out domain.LibraryStats
	if err := c.Do(ctx, http.MethodGet, "/api/dashboard/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Copies is a helper for BookRequest.AvailableCopies.
func Copies(n int) *int { return &n }

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
