package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/librarian-server/internal/domain"
)

func (s *Server) registerBorrowRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createLoan",
		Method:        http.MethodPost,
		Path:          "/api/borrow/{userId}/{bookId}",
		Summary:       "Lend a book",
		Description:   "Issues a loan of one copy of the book to the user. The due date defaults to the configured loan period.",
		Tags:          []string{"Circulation"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateLoan)

	huma.Register(s.api, huma.Operation{
		OperationID: "returnLoan",
		Method:      http.MethodPut,
		Path:        "/api/borrow/return/{borrowId}",
		Summary:     "Return a book",
		Description: "Marks the loan returned and puts the copy back on the shelf. Returning twice is a no-op.",
		Tags:        []string{"Circulation"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleReturnLoan)

	huma.Register(s.api, huma.Operation{
		OperationID: "listLoans",
		Method:      http.MethodGet,
		Path:        "/api/borrow",
		Summary:     "List loans",
		Description: "Lists loans in issue order with book and member details resolved",
		Tags:        []string{"Circulation"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListLoans)

	huma.Register(s.api, huma.Operation{
		OperationID: "getLoan",
		Method:      http.MethodGet,
		Path:        "/api/borrow/{id}",
		Summary:     "Get loan",
		Description: "Returns a loan with book and member details resolved",
		Tags:        []string{"Circulation"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetLoan)
}

// === DTOs ===

// CreateLoanInput contains parameters for lending a book.
type CreateLoanInput struct {
	UserID  string `path:"userId" doc:"Borrowing user ID"`
	BookID  string `path:"bookId" doc:"Book ID"`
	DueDate string `query:"dueDate" doc:"Due date as YYYY-MM-DD or RFC 3339; defaults to the loan period"`
}

// ReturnLoanInput identifies the loan being returned.
type ReturnLoanInput struct {
	BorrowID string `path:"borrowId" doc:"Loan ID"`
}

// ListLoansInput contains parameters for listing loans.
type ListLoansInput struct {
	Search string `query:"search" doc:"Case-insensitive match on book title, ISBN, member name or membership ID"`
	Status string `query:"status" doc:"Stored status: borrowed, returned or all"`
}

// LoanIDInput identifies a single loan.
type LoanIDInput struct {
	ID string `path:"id" doc:"Loan ID"`
}

// LoanOutput wraps a borrow record for Huma.
type LoanOutput struct {
	Body *domain.BorrowRecord
}

// LoanViewOutput wraps a resolved loan for Huma.
type LoanViewOutput struct {
	Body *domain.LoanView
}

// LoanListOutput wraps a list of resolved loans for Huma.
type LoanListOutput struct {
	Body []domain.LoanView
}

// === Handlers ===

func (s *Server) handleCreateLoan(ctx context.Context, input *CreateLoanInput) (*LoanOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	dueDate, err := parseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	record, err := s.services.Circulation.CreateLoan(ctx, input.BookID, input.UserID, dueDate)
	if err != nil {
		return nil, err
	}
	return &LoanOutput{Body: record}, nil
}

func (s *Server) handleReturnLoan(ctx context.Context, input *ReturnLoanInput) (*LoanOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	record, err := s.services.Circulation.ReturnLoan(ctx, input.BorrowID)
	if err != nil {
		return nil, err
	}
	return &LoanOutput{Body: record}, nil
}

func (s *Server) handleListLoans(ctx context.Context, input *ListLoansInput) (*LoanListOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	loans, err := s.services.Circulation.FilterLoans(ctx, input.Search, input.Status)
	if err != nil {
		return nil, err
	}
	return &LoanListOutput{Body: loans}, nil
}

func (s *Server) handleGetLoan(ctx context.Context, input *LoanIDInput) (*LoanViewOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	loan, err := s.services.Circulation.GetLoan(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &LoanViewOutput{Body: loan}, nil
}
