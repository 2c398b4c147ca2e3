package store

import (
	"context"
	"sync"
	"time"

	"github.com/listenupapp/librarian-server/internal/domain"
)

// Ledger holds borrow records in the order they were issued.
type Ledger struct {
	mu      sync.RWMutex
	records *orderedMap[*domain.BorrowRecord]
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{records: newOrderedMap[*domain.BorrowRecord]()}
}

// AppendLoan records a new loan.
func (l *Ledger) AppendLoan(ctx context.Context, record *domain.BorrowRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.records.get(record.ID); exists {
		return ErrLoanExists
	}
	l.records.set(record.ID, record.Clone())
	return nil
}

// GetLoan returns a copy of the loan with the given ID.
func (l *Ledger) GetLoan(ctx context.Context, id string) (*domain.BorrowRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	record, ok := l.records.get(id)
	if !ok {
		return nil, ErrLoanNotFound
	}
	return record.Clone(), nil
}

// MarkReturned closes a loan at the given time. changed is false when the loan
// had already been returned, in which case the record is left as it was.
func (l *Ledger) MarkReturned(ctx context.Context, id string, at time.Time) (record *domain.BorrowRecord, changed bool, err error) {
	if err = ctx.Err(); err != nil {
		return nil, false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	stored, ok := l.records.get(id)
	if !ok {
		return nil, false, ErrLoanNotFound
	}
	changed = stored.MarkReturned(at)
	return stored.Clone(), changed, nil
}

// ListLoans returns every loan in issue order.
func (l *Ledger) ListLoans(ctx context.Context) ([]*domain.BorrowRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	records := make([]*domain.BorrowRecord, 0, l.records.len())
	for _, record := range l.records.all() {
		records = append(records, record.Clone())
	}
	return records, nil
}

// LoansForUser returns the loans issued to a user, optionally filtered by stored status.
func (l *Ledger) LoansForUser(ctx context.Context, userID, status string) ([]*domain.BorrowRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	records := make([]*domain.BorrowRecord, 0)
	for _, record := range l.records.all() {
		if record.UserID == userID && record.HasStatus(status) {
			records = append(records, record.Clone())
		}
	}
	return records, nil
}

// LoanCounts returns how many loans are stored as borrowed and how many of
// those are overdue at now.
func (l *Ledger) LoanCounts(ctx context.Context, now time.Time) (borrowed, overdue int, err error) {
	if err = ctx.Err(); err != nil {
		return 0, 0, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, record := range l.records.all() {
		if record.Status == domain.LoanStatusBorrowed {
			borrowed++
		}
		if domain.DeriveStatus(record, now) == domain.DisplayOverdue {
			overdue++
		}
	}
	return borrowed, overdue, nil
}

// Len returns the number of loans ever issued.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.records.len()
}
