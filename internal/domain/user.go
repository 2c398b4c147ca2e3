package domain

import (
	"fmt"
	"time"
)

// Role is a library user's function.
type Role string

const (
	// RoleMember borrows books.
	RoleMember Role = "member"
	// RoleLibrarian runs the circulation desk.
	RoleLibrarian Role = "librarian"
	// RoleAdmin manages the catalog and membership.
	RoleAdmin Role = "admin"
)

// RoleAll is the filter value that matches every role.
const RoleAll = "all"

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleLibrarian, RoleAdmin:
		return true
	default:
		return false
	}
}

// User is a registered library user. MembershipID is unique across users.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	MembershipID string    `json:"membershipId"`
	Role         Role      `json:"role"`
	JoinedAt     time.Time `json:"joinedAt"`
	IsActive     bool      `json:"isActive"`
}

// HasRole reports whether the user matches a role filter.
// An empty filter or RoleAll matches everything.
func (u *User) HasRole(role string) bool {
	return role == "" || role == RoleAll || string(u.Role) == role
}

// IsMember reports whether the user holds the member role.
func (u *User) IsMember() bool {
	return u.Role == RoleMember
}

// Clone returns a copy that shares no state with u.
func (u *User) Clone() *User {
	c := *u
	return &c
}

// FormatMembershipID renders the library card number for sequence n, e.g. LIB007.
func FormatMembershipID(n int) string {
	return fmt.Sprintf("LIB%03d", n)
}
