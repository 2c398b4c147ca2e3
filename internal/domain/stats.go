package domain

// LibraryStats are the dashboard counters. They are derived on every read.
type LibraryStats struct {
	TotalBooks     int `json:"totalBooks"`
	AvailableBooks int `json:"availableBooks"`
	BorrowedBooks  int `json:"borrowedBooks"`
	TotalMembers   int `json:"totalMembers"`
	OverdueBooks   int `json:"overdueBooks"`
}
