package store

import "errors"

// Sentinel errors returned by the stores. Services translate them into coded
// domain errors.
var (
	ErrBookNotFound      = errors.New("book not found")
	ErrBookExists        = errors.New("book already exists")
	ErrNoCopiesAvailable = errors.New("no copies available")
	ErrInvalidCopies     = errors.New("available copies must be between 0 and total copies")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserExists        = errors.New("user already exists")
	ErrMembershipIDTaken = errors.New("membership id already in use")
	ErrLoanNotFound      = errors.New("loan not found")
	ErrLoanExists        = errors.New("loan already exists")
	ErrAccountNotFound   = errors.New("account not found")
	ErrUsernameTaken     = errors.New("username already in use")
)

// IsNotFound reports whether err is one of the store's not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBookNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrLoanNotFound) ||
		errors.Is(err, ErrAccountNotFound)
}
