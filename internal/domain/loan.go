package domain

import "time"

// LoanStatus is the stored state of a BorrowRecord. Only borrowed and returned
// are ever stored; overdue is derived at read time.
type LoanStatus string

const (
	// LoanStatusBorrowed marks a loan whose copy is still out.
	LoanStatusBorrowed LoanStatus = "borrowed"
	// LoanStatusReturned marks a closed loan. Terminal.
	LoanStatusReturned LoanStatus = "returned"
)

// LoanStatusAll is the filter value that matches every stored status.
const LoanStatusAll = "all"

// DisplayStatus is the label shown for a loan at a point in time.
type DisplayStatus string

// Display labels.
const (
	DisplayBorrowed DisplayStatus = "Borrowed"
	DisplayReturned DisplayStatus = "Returned"
	DisplayOverdue  DisplayStatus = "Overdue"
)

// Placeholders used when a loan references a deleted book or user.
const (
	UnknownBookTitle    = "Unknown Book"
	UnknownUserName     = "Unknown User"
	UnknownMembershipID = "Unknown ID"
)

// BorrowRecord is one loan of one copy of a book to a user.
// BookID and UserID are references; the book or user may since have been deleted.
type BorrowRecord struct {
	ID         string     `json:"id"`
	BookID     string     `json:"bookId"`
	UserID     string     `json:"userId"`
	BorrowedAt time.Time  `json:"borrowedAt"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
	Status     LoanStatus `json:"status"`
}

// IsReturned reports whether the loan is closed.
func (r *BorrowRecord) IsReturned() bool {
	return r.Status == LoanStatusReturned
}

// MarkReturned closes the loan at the given time. It returns false, leaving the
// record untouched, when the loan was already returned.
func (r *BorrowRecord) MarkReturned(at time.Time) bool {
	if r.IsReturned() {
		return false
	}
	r.Status = LoanStatusReturned
	r.ReturnedAt = &at
	return true
}

// HasStatus reports whether the stored status matches a filter.
// An empty filter or LoanStatusAll matches everything.
func (r *BorrowRecord) HasStatus(status string) bool {
	return status == "" || status == LoanStatusAll || string(r.Status) == status
}

// Clone returns a copy that shares no state with r.
func (r *BorrowRecord) Clone() *BorrowRecord {
	c := *r
	if r.ReturnedAt != nil {
		at := *r.ReturnedAt
		c.ReturnedAt = &at
	}
	return &c
}

// DeriveStatus computes the display label for r at now. It never mutates r.
func DeriveStatus(r *BorrowRecord, now time.Time) DisplayStatus {
	if r.IsReturned() {
		return DisplayReturned
	}
	if now.After(r.DueDate) {
		return DisplayOverdue
	}
	return DisplayBorrowed
}

// LoanView is a BorrowRecord with its references resolved for display.
type LoanView struct {
	BorrowRecord
	BookTitle     string        `json:"bookTitle"`
	BookISBN      string        `json:"bookIsbn"`
	UserName      string        `json:"userName"`
	MembershipID  string        `json:"membershipId"`
	DisplayStatus DisplayStatus `json:"displayStatus"`
}

// ResolveLoan builds the display view of r. A nil book or user resolves to the
// placeholder values.
func ResolveLoan(r *BorrowRecord, book *Book, user *User, now time.Time) LoanView {
	v := LoanView{
		BorrowRecord:  *r.Clone(),
		BookTitle:     UnknownBookTitle,
		UserName:      UnknownUserName,
		MembershipID:  UnknownMembershipID,
		DisplayStatus: DeriveStatus(r, now),
	}
	if book != nil {
		v.BookTitle = book.Title
		v.BookISBN = book.ISBN
	}
	if user != nil {
		v.UserName = user.Name
		v.MembershipID = user.MembershipID
	}
	return v
}
