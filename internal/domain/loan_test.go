package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoan(borrowedAt, due time.Time) *BorrowRecord {
	return &BorrowRecord{
		ID:         "loan-1",
		BookID:     "b1",
		UserID:     "u1",
		BorrowedAt: borrowedAt,
		DueDate:    due,
		Status:     LoanStatusBorrowed,
	}
}

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	returnedAt := now.Add(-time.Hour)

	tests := []struct {
		name   string
		record *BorrowRecord
		want   DisplayStatus
	}{
		{
			name:   "borrowed before due date",
			record: newLoan(now.Add(-24*time.Hour), now.Add(24*time.Hour)),
			want:   DisplayBorrowed,
		},
		{
			name:   "borrowed exactly at due date is not overdue",
			record: newLoan(now.Add(-24*time.Hour), now),
			want:   DisplayBorrowed,
		},
		{
			name:   "borrowed past due date",
			record: newLoan(now.Add(-48*time.Hour), now.Add(-time.Second)),
			want:   DisplayOverdue,
		},
		{
			name: "returned past due date stays returned",
			record: &BorrowRecord{
				DueDate:    now.Add(-48 * time.Hour),
				ReturnedAt: &returnedAt,
				Status:     LoanStatusReturned,
			},
			want: DisplayReturned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.record, now))
		})
	}
}

func TestDeriveStatus_IsPure(t *testing.T) {
	now := time.Now()
	record := newLoan(now.Add(-72*time.Hour), now.Add(-time.Hour))
	before := *record

	first := DeriveStatus(record, now)
	second := DeriveStatus(record, now)

	assert.Equal(t, DisplayOverdue, first)
	assert.Equal(t, first, second)
	assert.Equal(t, before, *record)
	assert.Equal(t, LoanStatusBorrowed, record.Status, "overdue is never stored")
}

func TestMarkReturned_Idempotent(t *testing.T) {
	now := time.Now()
	record := newLoan(now.Add(-time.Hour), now.Add(time.Hour))

	require.True(t, record.MarkReturned(now))
	require.NotNil(t, record.ReturnedAt)
	firstReturn := *record.ReturnedAt

	assert.False(t, record.MarkReturned(now.Add(time.Hour)))
	assert.Equal(t, firstReturn, *record.ReturnedAt)
	assert.Equal(t, LoanStatusReturned, record.Status)
}

func TestBorrowRecord_Clone(t *testing.T) {
	now := time.Now()
	record := newLoan(now, now.Add(time.Hour))
	record.MarkReturned(now)

	clone := record.Clone()
	*clone.ReturnedAt = now.Add(time.Hour)

	assert.Equal(t, now, *record.ReturnedAt)
}

func TestBorrowRecord_HasStatus(t *testing.T) {
	record := newLoan(time.Now(), time.Now().Add(time.Hour))

	assert.True(t, record.HasStatus(""))
	assert.True(t, record.HasStatus(LoanStatusAll))
	assert.True(t, record.HasStatus("borrowed"))
	assert.False(t, record.HasStatus("returned"))
	assert.False(t, record.HasStatus("overdue"))
}

func TestResolveLoan(t *testing.T) {
	now := time.Now()
	record := newLoan(now, now.Add(time.Hour))
	book := &Book{ID: "b1", Title: "Dune", ISBN: "978-0441013593"}
	user := &User{ID: "u1", Name: "Ada", MembershipID: "LIB001"}

	view := ResolveLoan(record, book, user, now)
	assert.Equal(t, "Dune", view.BookTitle)
	assert.Equal(t, "978-0441013593", view.BookISBN)
	assert.Equal(t, "Ada", view.UserName)
	assert.Equal(t, "LIB001", view.MembershipID)
	assert.Equal(t, DisplayBorrowed, view.DisplayStatus)

	dangling := ResolveLoan(record, nil, nil, now)
	assert.Equal(t, UnknownBookTitle, dangling.BookTitle)
	assert.Empty(t, dangling.BookISBN)
	assert.Equal(t, UnknownUserName, dangling.UserName)
	assert.Equal(t, UnknownMembershipID, dangling.MembershipID)
}
