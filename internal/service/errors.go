package service

import (
	"errors"
	"fmt"

	domainerrors "github.com/listenupapp/librarian-server/internal/errors"
	"github.com/listenupapp/librarian-server/internal/store"
)

// translate converts store sentinels into coded domain errors. Anything the
// stores do not name is wrapped with op and surfaces as an internal error.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case store.IsNotFound(err):
		return domainerrors.NotFound(err.Error())
	case errors.Is(err, store.ErrNoCopiesAvailable),
		errors.Is(err, store.ErrMembershipIDTaken),
		errors.Is(err, store.ErrBookExists),
		errors.Is(err, store.ErrUserExists),
		errors.Is(err, store.ErrLoanExists):
		return domainerrors.Conflict(err.Error())
	case errors.Is(err, store.ErrUsernameTaken):
		return domainerrors.AlreadyExistsf("%s", err.Error())
	case errors.Is(err, store.ErrInvalidCopies):
		return domainerrors.ValidationWithDetails("validation failed", map[string]string{
			"availableCopies": err.Error(),
		})
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
