package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/listenupapp/librarian-server/internal/domain"
	domainerrors "github.com/listenupapp/librarian-server/internal/errors"
	"github.com/listenupapp/librarian-server/internal/id"
	"github.com/listenupapp/librarian-server/internal/normalize"
	"github.com/listenupapp/librarian-server/internal/store"
	"github.com/listenupapp/librarian-server/internal/validation"
)

// DefaultLoanPeriod is used when no loan period is configured.
const DefaultLoanPeriod = 14 * 24 * time.Hour

// loanTerms holds the caller-supplied terms checked before a copy is reserved.
type loanTerms struct {
	DueDate time.Time `json:"dueDate" validate:"future"`
}

// CirculationService lends and takes back books. It is the only writer that
// touches both the catalog and the ledger, and it serializes those writes so
// the two stores never disagree about how many copies are out.
type CirculationService struct {
	mu         sync.RWMutex
	catalog    *store.Catalog
	membership *store.Membership
	ledger     *store.Ledger
	loanPeriod time.Duration
	validator  *validation.Validator
	logger     *slog.Logger
	now        func() time.Time
}

// NewCirculationService creates a new circulation service. A non-positive
// loanPeriod falls back to DefaultLoanPeriod.
func NewCirculationService(s *store.Store, loanPeriod time.Duration, logger *slog.Logger) *CirculationService {
	if loanPeriod <= 0 {
		loanPeriod = DefaultLoanPeriod
	}
	return &CirculationService{
		catalog:    s.Catalog,
		membership: s.Membership,
		ledger:     s.Ledger,
		loanPeriod: loanPeriod,
		validator:  validation.New(),
		logger:     logger,
		now:        time.Now,
	}
}

// CreateLoan lends one copy of a book to a user. A nil dueDate defaults to
// now plus the loan period. On any error neither the catalog nor the ledger
// is changed.
func (s *CirculationService) CreateLoan(ctx context.Context, bookID, userID string, dueDate *time.Time) (*domain.BorrowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if _, err := s.catalog.GetBook(ctx, bookID); err != nil {
		return nil, translate(err, "get book")
	}
	if _, err := s.membership.GetUser(ctx, userID); err != nil {
		return nil, translate(err, "get user")
	}

	due := now.Add(s.loanPeriod)
	if dueDate != nil {
		due = *dueDate
	}
	if err := s.validator.ValidateCtx(validation.AsOf(ctx, now), loanTerms{DueDate: due}); err != nil {
		return nil, err
	}

	loanID, err := id.Generate(id.PrefixLoan)
	if err != nil {
		return nil, fmt.Errorf("generate loan ID: %w", err)
	}

	if _, err := s.catalog.Reserve(ctx, bookID, now); err != nil {
		if errors.Is(err, store.ErrNoCopiesAvailable) {
			return nil, domainerrors.Conflictf("no copies of book %s are available", bookID)
		}
		return nil, translate(err, "reserve copy")
	}

	record := &domain.BorrowRecord{
		ID:         loanID,
		BookID:     bookID,
		UserID:     userID,
		BorrowedAt: now,
		DueDate:    due,
		Status:     domain.LoanStatusBorrowed,
	}

	if err := s.ledger.AppendLoan(ctx, record); err != nil {
		// Put the reserved copy back.
		if _, releaseErr := s.catalog.Release(context.WithoutCancel(ctx), bookID, now); releaseErr != nil {
			s.logger.Error("failed to roll back reservation",
				"book_id", bookID,
				"error", releaseErr,
			)
		}
		return nil, translate(err, "append loan")
	}

	s.logger.Info("loan created",
		"loan_id", record.ID,
		"book_id", bookID,
		"user_id", userID,
		"due_date", due,
	)
	return record, nil
}

// readConsistent runs fn while no loan is halfway between the catalog and
// the ledger.
func (s *CirculationService) readConsistent(fn func() error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn()
}

// ReturnLoan closes a loan and puts the copy back on the shelf. Returning an
// already returned loan changes nothing and returns the record as stored.
func (s *CirculationService) ReturnLoan(ctx context.Context, loanID string) (*domain.BorrowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	record, changed, err := s.ledger.MarkReturned(ctx, loanID, now)
	if err != nil {
		return nil, translate(err, "mark returned")
	}
	if !changed {
		s.logger.Debug("loan already returned", "loan_id", loanID)
		return record, nil
	}

	if _, err := s.catalog.Release(context.WithoutCancel(ctx), record.BookID, now); err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			s.logger.Warn("returned loan references a deleted book",
				"loan_id", loanID,
				"book_id", record.BookID,
			)
		} else {
			return nil, fmt.Errorf("release copy: %w", err)
		}
	}

	s.logger.Info("loan returned",
		"loan_id", loanID,
		"book_id", record.BookID,
		"user_id", record.UserID,
	)
	return record, nil
}

// GetLoan returns a loan with its references resolved.
func (s *CirculationService) GetLoan(ctx context.Context, loanID string) (*domain.LoanView, error) {
	record, err := s.ledger.GetLoan(ctx, loanID)
	if err != nil {
		return nil, translate(err, "get loan")
	}

	book, err := s.catalog.GetBook(ctx, record.BookID)
	if err != nil && !errors.Is(err, store.ErrBookNotFound) {
		return nil, fmt.Errorf("get book: %w", err)
	}
	user, err := s.membership.GetUser(ctx, record.UserID)
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		return nil, fmt.Errorf("get user: %w", err)
	}

	view := domain.ResolveLoan(record, book, user, s.now())
	return &view, nil
}

// FilterLoans returns resolved loans whose book title, isbn, user name or
// membership ID contains search and whose stored status matches. Dangling
// references are matched by their placeholder text.
func (s *CirculationService) FilterLoans(ctx context.Context, search, status string) ([]domain.LoanView, error) {
	records, err := s.ledger.ListLoans(ctx)
	if err != nil {
		return nil, translate(err, "list loans")
	}
	return s.resolve(ctx, records, search, status)
}

// LoansForUser returns a user's loans, optionally narrowed to one stored status.
func (s *CirculationService) LoansForUser(ctx context.Context, userID, status string) ([]domain.LoanView, error) {
	if _, err := s.membership.GetUser(ctx, userID); err != nil {
		return nil, translate(err, "get user")
	}

	records, err := s.ledger.LoansForUser(ctx, userID, status)
	if err != nil {
		return nil, translate(err, "list user loans")
	}
	return s.resolve(ctx, records, "", "")
}

// ActiveLoansForUser returns the loans a user still has out.
func (s *CirculationService) ActiveLoansForUser(ctx context.Context, userID string) ([]domain.LoanView, error) {
	return s.LoansForUser(ctx, userID, string(domain.LoanStatusBorrowed))
}

// DeriveStatus returns the display status of a record right now.
func (s *CirculationService) DeriveStatus(record *domain.BorrowRecord) domain.DisplayStatus {
	return domain.DeriveStatus(record, s.now())
}

func (s *CirculationService) resolve(ctx context.Context, records []*domain.BorrowRecord, search, status string) ([]domain.LoanView, error) {
	books, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, translate(err, "snapshot catalog")
	}
	users, err := s.membership.Snapshot(ctx)
	if err != nil {
		return nil, translate(err, "snapshot membership")
	}

	now := s.now()
	matcher := normalize.NewMatcher(search)

	views := make([]domain.LoanView, 0, len(records))
	for _, record := range records {
		if !record.HasStatus(status) {
			continue
		}
		view := domain.ResolveLoan(record, books[record.BookID], users[record.UserID], now)
		if !matcher.Any(view.BookTitle, view.BookISBN, view.UserName, view.MembershipID) {
			continue
		}
		views = append(views, view)
	}
	return views, nil
}
