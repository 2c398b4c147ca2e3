package store

import (
	"context"
	"strings"
	"sync"

	"github.com/listenupapp/librarian-server/internal/domain"
)

// Accounts holds login credentials. Usernames are unique, compared case-insensitively.
type Accounts struct {
	mu         sync.RWMutex
	accounts   *orderedMap[*domain.Account]
	byUsername map[string]string // lowercased username -> account ID
}

// NewAccounts creates an empty account store.
func NewAccounts() *Accounts {
	return &Accounts{
		accounts:   newOrderedMap[*domain.Account](),
		byUsername: make(map[string]string),
	}
}

// CreateAccount stores a new account.
func (a *Accounts) CreateAccount(ctx context.Context, account *domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := strings.ToLower(account.Username)

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, taken := a.byUsername[key]; taken {
		return ErrUsernameTaken
	}
	a.accounts.set(account.ID, account.Clone())
	a.byUsername[key] = account.ID
	return nil
}

// GetAccount returns a copy of the account with the given ID.
func (a *Accounts) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	account, ok := a.accounts.get(id)
	if !ok {
		return nil, ErrAccountNotFound
	}
	return account.Clone(), nil
}

// GetAccountByUsername looks an account up by username.
func (a *Accounts) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	id, ok := a.byUsername[strings.ToLower(username)]
	if !ok {
		return nil, ErrAccountNotFound
	}
	account, _ := a.accounts.get(id)
	return account.Clone(), nil
}
