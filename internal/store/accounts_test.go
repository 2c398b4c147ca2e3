package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/librarian-server/internal/domain"
)

func TestAccounts_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	accounts := NewAccounts()

	account := &domain.Account{
		ID:           "acct-1",
		Username:     "Librarian",
		PasswordHash: "hash",
		Role:         domain.AccountRoleAdmin,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, accounts.CreateAccount(ctx, account))

	byID, err := accounts.GetAccount(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "Librarian", byID.Username)

	byName, err := accounts.GetAccountByUsername(ctx, "librarian")
	require.NoError(t, err)
	assert.Equal(t, "acct-1", byName.ID)

	_, err = accounts.GetAccountByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccounts_UsernameUniqueIgnoringCase(t *testing.T) {
	ctx := context.Background()
	accounts := NewAccounts()

	require.NoError(t, accounts.CreateAccount(ctx, &domain.Account{ID: "a1", Username: "alice"}))
	err := accounts.CreateAccount(ctx, &domain.Account{ID: "a2", Username: "ALICE"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}
