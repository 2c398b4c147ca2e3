// Package domain holds the library's entities and the pure rules over them.
package domain

// CategoryAll is the filter value that matches every category.
const CategoryAll = "all"

// Book is a catalog title with its copy accounting.
// Invariant: 0 <= AvailableCopies <= TotalCopies and TotalCopies >= 1.
type Book struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	Category        string `json:"category"`
	Description     string `json:"description"`
	PublishedYear   int    `json:"publishedYear,omitempty"`
	TotalCopies     int    `json:"totalCopies"`
	AvailableCopies int    `json:"availableCopies"`
	CoverImage      string `json:"coverImage,omitempty"`
	Timestamps
}

// IsAvailable reports whether at least one copy can be lent.
func (b *Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}

// CopiesOut returns the number of copies currently lent.
func (b *Book) CopiesOut() int {
	return b.TotalCopies - b.AvailableCopies
}

// InCategory reports whether the book matches a category filter.
// An empty filter or CategoryAll matches everything.
func (b *Book) InCategory(category string) bool {
	return category == "" || category == CategoryAll || b.Category == category
}

// Clone returns a copy that shares no state with b.
func (b *Book) Clone() *Book {
	c := *b
	return &c
}
