package domain

import "time"

// AccountRole is the role attached to login credentials.
type AccountRole string

const (
	// AccountRoleUser is the default role for self-registered accounts.
	AccountRoleUser AccountRole = "USER"
	// AccountRoleAdmin marks staff accounts.
	AccountRoleAdmin AccountRole = "ADMIN"
)

// Account holds login credentials. Accounts are separate from library users:
// a member does not need an account and an account need not be a member.
type Account struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	Role         AccountRole `json:"role"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// Clone returns a copy that shares no state with a.
func (a *Account) Clone() *Account {
	c := *a
	return &c
}
