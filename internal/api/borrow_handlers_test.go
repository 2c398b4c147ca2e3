package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/librarian-server/internal/domain"
)

func (ts *testServer) getBook(t *testing.T, id string) domain.Book {
	t.Helper()
	resp := ts.api.Get("/api/books/"+id, ts.authHeader())
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	return decodeJSON[domain.Book](t, resp)
}

func TestCreateLoan(t *testing.T) {
	ts := setupTestServer(t)
	book := ts.createBook(t, "Dune", "Science Fiction", 2)
	user := ts.createUser(t, "ada")

	before := time.Now()
	record := ts.createLoan(t, user.ID, book.ID)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, book.ID, record.BookID)
	assert.Equal(t, user.ID, record.UserID)
	assert.Equal(t, domain.LoanStatusBorrowed, record.Status)
	assert.Nil(t, record.ReturnedAt)
	assert.WithinDuration(t, before.Add(14*24*time.Hour), record.DueDate, time.Minute)

	assert.Equal(t, 1, ts.getBook(t, book.ID).AvailableCopies)
}

func TestCreateLoan_WithDueDate(t *testing.T) {
	ts := setupTestServer(t)
	book := ts.createBook(t, "Dune", "Science Fiction", 1)
	user := ts.createUser(t, "ada")

	due := time.Now().UTC().AddDate(0, 0, 3)
	resp := ts.api.Post("/api/borrow/"+user.ID+"/"+book.ID+"?dueDate="+due.Format("2006-01-02"), ts.authHeader())
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	record := decodeJSON[domain.BorrowRecord](t, resp)
	y, m, d := record.DueDate.UTC().Date()
	wy, wm, wd := due.Date()
	assert.Equal(t, []int{wy, int(wm), wd}, []int{y, int(m), d})
}

func TestCreateLoan_Failures(t *testing.T) {
	ts := setupTestServer(t)
	book := ts.createBook(t, "Dune", "Science Fiction", 1)
	empty := ts.createBook(t, "Emma", "Classics", 1)
	user := ts.createUser(t, "ada")
	other := ts.createUser(t, "grace")
	ts.createLoan(t, other.ID, empty.ID)

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"unknown book", "/api/borrow/" + user.ID + "/book-missing", http.StatusNotFound, "NOT_FOUND"},
		{"unknown user", "/api/borrow/user-missing/" + book.ID, http.StatusNotFound, "NOT_FOUND"},
		{"no copies left", "/api/borrow/" + user.ID + "/" + empty.ID, http.StatusConflict, "CONFLICT"},
		{"due date in the past", "/api/borrow/" + user.ID + "/" + book.ID + "?dueDate=2000-01-01", http.StatusBadRequest, "VALIDATION"},
		{"garbage due date", "/api/borrow/" + user.ID + "/" + book.ID + "?dueDate=next-week", http.StatusBadRequest, "VALIDATION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post(tt.path, ts.authHeader())
			requireAPIError(t, resp, tt.status, tt.code)
		})
	}

	// None of the failures took a copy or wrote a loan.
	assert.Equal(t, 1, ts.getBook(t, book.ID).AvailableCopies)
	assert.Equal(t, 0, ts.getBook(t, empty.ID).AvailableCopies)
	assert.Equal(t, 1, ts.store.Ledger.Len())
}

func TestCreateLoan_PastDueDateDetails(t *testing.T) {
	ts := setupTestServer(t)
	book := ts.createBook(t, "Dune", "Science Fiction", 1)
	user := ts.createUser(t, "ada")

	resp := ts.api.Post("/api/borrow/"+user.ID+"/"+book.ID+"?dueDate=2000-01-01T00:00:00Z", ts.authHeader())
	apiErr := requireAPIError(t, resp, http.StatusBadRequest, "VALIDATION")

	details, ok := apiErr.Details.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "dueDate")
}

func TestReturnLoan(t *testing.T) {
	ts := setupTestServer(t)
	book := ts.createBook(t, "Dune", "Science Fiction", 2)
	user := ts.createUser(t, "ada")
	record := ts.createLoan(t, user.ID, book.ID)

	resp := ts.api.Put("/api/borrow/return/"+record.ID, ts.authHeader())
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	returned := decodeJSON[domain.BorrowRecord](t, resp)
	assert.Equal(t, domain.LoanStatusReturned, returned.Status)
	require.NotNil(t, returned.ReturnedAt)
	assert.Equal(t, 2, ts.getBook(t, book.ID).AvailableCopies)

	// A second return changes nothing.
	resp = ts.api.Put("/api/borrow/return/"+record.ID, ts.authHeader())
	require.Equal(t, http.StatusOK, resp.Code)
	again := decodeJSON[domain.BorrowRecord](t, resp)
	assert.True(t, returned.ReturnedAt.Equal(*again.ReturnedAt))
	assert.Equal(t, 2, ts.getBook(t, book.ID).AvailableCopies)

	resp = ts.api.Put("/api/borrow/return/loan-missing", ts.authHeader())
	requireAPIError(t, resp, http.StatusNotFound, "NOT_FOUND")
}

func TestListLoans(t *testing.T) {
	ts := setupTestServer(t)
	dune := ts.createBook(t, "Dune", "Science Fiction", 1)
	emma := ts.createBook(t, "Emma", "Classics", 1)
	ada := ts.createUser(t, "ada")
	grace := ts.createUser(t, "grace")

	first := ts.createLoan(t, ada.ID, dune.ID)
	ts.createLoan(t, grace.ID, emma.ID)

	resp := ts.api.Put("/api/borrow/return/"+first.ID, ts.authHeader())
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/borrow", ts.authHeader())
	require.Equal(t, http.StatusOK, resp.Code)
	loans := decodeJSON[[]domain.LoanView](t, resp)
	require.Len(t, loans, 2)
	assert.Equal(t, "Dune", loans[0].BookTitle)
	assert.Equal(t, "ada", loans[0].UserName)
	assert.Equal(t, domain.DisplayReturned, loans[0].DisplayStatus)
	assert.Equal(t, domain.DisplayBorrowed, loans[1].DisplayStatus)

	resp = ts.api.Get("/api/borrow?status=borrowed", ts.authHeader())
	require.Equal(t, http.StatusOK, resp.Code)
	loans = decodeJSON[[]domain.LoanView](t, resp)
	require.Len(t, loans, 1)
	assert.Equal(t, "Emma", loans[0].BookTitle)

	resp = ts.api.Get("/api/borrow?search=GRACE", ts.authHeader())
	require.Equal(t, http.StatusOK, resp.Code)
	loans = decodeJSON[[]domain.LoanView](t, resp)
	require.Len(t, loans, 1)
	assert.Equal(t, grace.MembershipID, loans[0].MembershipID)
}

func TestListLoans_DanglingReferences(t *testing.T) {
	ts := setupTestServer(t)
	book := ts.createBook(t, "Dune", "Science Fiction", 1)
	user := ts.createUser(t, "ada")
	record := ts.createLoan(t, user.ID, book.ID)

	require.Equal(t, http.StatusOK, ts.api.Delete("/api/books/"+book.ID, ts.authHeader()).Code)
	require.Equal(t, http.StatusOK, ts.api.Delete("/api/users/"+user.ID, ts.authHeader()).Code)

	resp := ts.api.Get("/api/borrow/"+record.ID, ts.authHeader())
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	loan := decodeJSON[domain.LoanView](t, resp)
	assert.Equal(t, domain.UnknownBookTitle, loan.BookTitle)
	assert.Equal(t, domain.UnknownUserName, loan.UserName)

	// Returning still works; there is no shelf to put the copy back on.
	resp = ts.api.Put("/api/borrow/return/"+record.ID, ts.authHeader())
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestGetLoan_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/borrow/loan-missing", ts.authHeader())
	requireAPIError(t, resp, http.StatusNotFound, "NOT_FOUND")
}
