package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/librarian-server/internal/domain"
)

func createTestLoan(id, bookID, userID string, due time.Time) *domain.BorrowRecord {
	return &domain.BorrowRecord{
		ID:         id,
		BookID:     bookID,
		UserID:     userID,
		BorrowedAt: due.Add(-14 * 24 * time.Hour),
		DueDate:    due,
		Status:     domain.LoanStatusBorrowed,
	}
}

func TestLedger_AppendAndGet(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	due := time.Now().Add(24 * time.Hour)

	require.NoError(t, ledger.AppendLoan(ctx, createTestLoan("l1", "b1", "u1", due)))
	assert.ErrorIs(t, ledger.AppendLoan(ctx, createTestLoan("l1", "b1", "u1", due)), ErrLoanExists)

	got, err := ledger.GetLoan(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "b1", got.BookID)
	assert.Equal(t, 1, ledger.Len())

	_, err = ledger.GetLoan(ctx, "missing")
	assert.ErrorIs(t, err, ErrLoanNotFound)
}

func TestLedger_MarkReturned(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	require.NoError(t, ledger.AppendLoan(ctx, createTestLoan("l1", "b1", "u1", time.Now().Add(time.Hour))))

	returnedAt := time.Now()
	record, changed, err := ledger.MarkReturned(ctx, "l1", returnedAt)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.LoanStatusReturned, record.Status)
	require.NotNil(t, record.ReturnedAt)
	assert.True(t, returnedAt.Equal(*record.ReturnedAt))

	// Second return leaves the record as it was.
	record, changed, err = ledger.MarkReturned(ctx, "l1", returnedAt.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, returnedAt.Equal(*record.ReturnedAt))

	_, _, err = ledger.MarkReturned(ctx, "missing", returnedAt)
	assert.ErrorIs(t, err, ErrLoanNotFound)
}

func TestLedger_ListLoans_IssueOrder(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	due := time.Now().Add(time.Hour)

	for _, id := range []string{"l3", "l1", "l2"} {
		require.NoError(t, ledger.AppendLoan(ctx, createTestLoan(id, "b1", "u1", due)))
	}

	loans, err := ledger.ListLoans(ctx)
	require.NoError(t, err)
	require.Len(t, loans, 3)
	assert.Equal(t, "l3", loans[0].ID)
	assert.Equal(t, "l1", loans[1].ID)
	assert.Equal(t, "l2", loans[2].ID)
}

func TestLedger_LoansForUser(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	due := time.Now().Add(time.Hour)

	require.NoError(t, ledger.AppendLoan(ctx, createTestLoan("l1", "b1", "u1", due)))
	require.NoError(t, ledger.AppendLoan(ctx, createTestLoan("l2", "b2", "u2", due)))
	require.NoError(t, ledger.AppendLoan(ctx, createTestLoan("l3", "b3", "u1", due)))
	_, _, err := ledger.MarkReturned(ctx, "l3", time.Now())
	require.NoError(t, err)

	all, err := ledger.LoansForUser(ctx, "u1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := ledger.LoansForUser(ctx, "u1", string(domain.LoanStatusBorrowed))
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "l1", active[0].ID)
}

func TestLedger_LoanCounts(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	now := time.Now()

	require.NoError(t, ledger.AppendLoan(ctx, createTestLoan("l1", "b1", "u1", now.Add(time.Hour))))
	require.NoError(t, ledger.AppendLoan(ctx, createTestLoan("l2", "b2", "u1", now.Add(-time.Hour))))
	require.NoError(t, ledger.AppendLoan(ctx, createTestLoan("l3", "b3", "u1", now.Add(-2*time.Hour))))
	_, _, err := ledger.MarkReturned(ctx, "l3", now)
	require.NoError(t, err)

	borrowed, overdue, err := ledger.LoanCounts(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, borrowed)
	assert.Equal(t, 1, overdue, "returned loans are never overdue")
}
