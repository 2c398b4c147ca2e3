package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/librarian-server/internal/domain"
	domainerrors "github.com/listenupapp/librarian-server/internal/errors"
)

func TestMembershipService_AddUser_Defaults(t *testing.T) {
	ts := setupServices(t)

	user, err := ts.membership.AddUser(context.Background(), NewUserInput{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	})
	require.NoError(t, err)

	assert.Contains(t, user.ID, "user-")
	assert.Equal(t, domain.RoleMember, user.Role)
	assert.Equal(t, "LIB001", user.MembershipID)
	assert.True(t, user.IsActive)
	assert.True(t, testNow.Equal(user.JoinedAt))
}

func TestMembershipService_AddUser_SequentialMembershipIDs(t *testing.T) {
	ts := setupServices(t)

	a := ts.addUser(t, "a")
	b := ts.addUser(t, "b")
	assert.Equal(t, "LIB001", a.MembershipID)
	assert.Equal(t, "LIB002", b.MembershipID)
}

func TestMembershipService_AddUser_DuplicateMembershipID(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	_, err := ts.membership.AddUser(ctx, NewUserInput{Name: "A", Email: "a@example.com", MembershipID: "CARD-1"})
	require.NoError(t, err)

	_, err = ts.membership.AddUser(ctx, NewUserInput{Name: "B", Email: "b@example.com", MembershipID: "CARD-1"})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestMembershipService_AddUser_Validation(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   NewUserInput
	}{
		{"missing name", NewUserInput{Email: "a@example.com"}},
		{"bad email", NewUserInput{Name: "A", Email: "not-an-email"}},
		{"unknown role", NewUserInput{Name: "A", Email: "a@example.com", Role: "janitor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.membership.AddUser(ctx, tt.in)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
		})
	}
}

func TestMembershipService_UpdateUser_MergesProvidedFields(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	user := ts.addUser(t, "ada")

	updated, err := ts.membership.UpdateUser(ctx, user.ID, UserUpdate{
		Name: ptr("Ada King"),
		Role: ptr(domain.RoleLibrarian),
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada King", updated.Name)
	assert.Equal(t, domain.RoleLibrarian, updated.Role)
	assert.Equal(t, user.Email, updated.Email)
	assert.Equal(t, user.MembershipID, updated.MembershipID)
	assert.True(t, updated.IsActive)
}

func TestMembershipService_UpdateUser_Errors(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	a := ts.addUser(t, "a")
	b := ts.addUser(t, "b")

	_, err := ts.membership.UpdateUser(ctx, b.ID, UserUpdate{MembershipID: ptr(a.MembershipID)})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	_, err = ts.membership.UpdateUser(ctx, a.ID, UserUpdate{Name: ptr("  ")})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = ts.membership.UpdateUser(ctx, "user-missing", UserUpdate{Name: ptr("x")})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestMembershipService_ActiveFlag(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()
	user := ts.addUser(t, "ada")

	got, err := ts.membership.SetActive(ctx, user.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	got, err = ts.membership.ToggleActive(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	_, err = ts.membership.ToggleActive(ctx, "user-missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestMembershipService_FilterUsers(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	ada := ts.addUser(t, "ada")
	_, err := ts.membership.AddUser(ctx, NewUserInput{Name: "Melvil", Email: "melvil@example.com", Role: domain.RoleLibrarian})
	require.NoError(t, err)

	all, err := ts.membership.FilterUsers(ctx, "", "all")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	members, err := ts.membership.FilterUsers(ctx, "", "member")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, ada.ID, members[0].ID)

	byCard, err := ts.membership.FilterUsers(ctx, "lib002", "")
	require.NoError(t, err)
	require.Len(t, byCard, 1)
	assert.Equal(t, "Melvil", byCard[0].Name)
}

func TestMembershipService_DeleteUser_KeepsLoans(t *testing.T) {
	ts := setupServices(t)
	ctx := context.Background()

	book := ts.addBook(t, "Dune", 1)
	user := ts.addUser(t, "ada")
	loan, err := ts.circulation.CreateLoan(ctx, book.ID, user.ID, nil)
	require.NoError(t, err)

	require.NoError(t, ts.membership.DeleteUser(ctx, user.ID))

	view, err := ts.circulation.GetLoan(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownUserName, view.UserName)
	assert.Equal(t, domain.UnknownMembershipID, view.MembershipID)

	assert.ErrorIs(t, ts.membership.DeleteUser(ctx, user.ID), domainerrors.ErrNotFound)
}
