package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleMember.Valid())
	assert.True(t, RoleLibrarian.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("visitor").Valid())
	assert.False(t, Role("").Valid())
}

func TestUser_HasRole(t *testing.T) {
	u := &User{Role: RoleLibrarian}

	assert.True(t, u.HasRole(""))
	assert.True(t, u.HasRole(RoleAll))
	assert.True(t, u.HasRole("librarian"))
	assert.False(t, u.HasRole("member"))
	assert.False(t, u.IsMember())
}

func TestFormatMembershipID(t *testing.T) {
	assert.Equal(t, "LIB001", FormatMembershipID(1))
	assert.Equal(t, "LIB042", FormatMembershipID(42))
	assert.Equal(t, "LIB1234", FormatMembershipID(1234))
}
