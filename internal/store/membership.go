package store

import (
	"context"
	"sync"

	"github.com/listenupapp/librarian-server/internal/domain"
	"github.com/listenupapp/librarian-server/internal/normalize"
)

// UserFilter selects users from the membership store.
type UserFilter struct {
	// Search is matched case-insensitively against name, email and membership ID.
	Search string
	// Role is matched exactly; "" and "all" match everything.
	Role string
}

// Membership holds registered library users. Membership IDs are unique.
type Membership struct {
	mu             sync.RWMutex
	users          *orderedMap[*domain.User]
	byMembershipID map[string]string // membership ID -> user ID
}

// NewMembership creates an empty membership store.
func NewMembership() *Membership {
	return &Membership{
		users:          newOrderedMap[*domain.User](),
		byMembershipID: make(map[string]string),
	}
}

// CreateUser adds a user. An empty MembershipID is filled with the next free
// library card number; the assigned value is written back to user.
func (m *Membership) CreateUser(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users.get(user.ID); exists {
		return ErrUserExists
	}

	if user.MembershipID == "" {
		user.MembershipID = m.nextMembershipIDLocked()
	} else if _, taken := m.byMembershipID[user.MembershipID]; taken {
		return ErrMembershipIDTaken
	}

	m.users.set(user.ID, user.Clone())
	m.byMembershipID[user.MembershipID] = user.ID
	return nil
}

// GetUser returns a copy of the user with the given ID.
func (m *Membership) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users.get(id)
	if !ok {
		return nil, ErrUserNotFound
	}
	return user.Clone(), nil
}

// UpdateUser applies fn to a copy of the stored user and saves the result,
// keeping the membership index in step. fn runs under the write lock. An error
// from fn leaves the user unchanged. ID and JoinedAt cannot be changed.
func (m *Membership) UpdateUser(ctx context.Context, id string, fn func(user *domain.User) error) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.users.get(id)
	if !ok {
		return nil, ErrUserNotFound
	}

	updated := existing.Clone()
	if err := fn(updated); err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.JoinedAt = existing.JoinedAt

	if updated.MembershipID != existing.MembershipID {
		if _, taken := m.byMembershipID[updated.MembershipID]; taken {
			return nil, ErrMembershipIDTaken
		}
		delete(m.byMembershipID, existing.MembershipID)
		m.byMembershipID[updated.MembershipID] = id
	}

	m.users.set(id, updated)
	return updated.Clone(), nil
}

// DeleteUser removes a user. Loans that reference the user are left alone.
func (m *Membership) DeleteUser(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users.get(id)
	if !ok {
		return ErrUserNotFound
	}
	m.users.delete(id)
	delete(m.byMembershipID, user.MembershipID)
	return nil
}

// ListUsers returns users matching filter in insertion order.
func (m *Membership) ListUsers(ctx context.Context, filter UserFilter) ([]*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matcher := normalize.NewMatcher(filter.Search)

	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]*domain.User, 0, m.users.len())
	for _, user := range m.users.all() {
		if !user.HasRole(filter.Role) {
			continue
		}
		if !matcher.Any(user.Name, user.Email, user.MembershipID) {
			continue
		}
		users = append(users, user.Clone())
	}
	return users, nil
}

// CountUsers counts users, optionally only those with the member role.
func (m *Membership) CountUsers(ctx context.Context, membersOnly bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if !membersOnly {
		return m.users.len(), nil
	}

	count := 0
	for _, user := range m.users.all() {
		if user.IsMember() {
			count++
		}
	}
	return count, nil
}

// Snapshot returns copies of every user keyed by ID.
func (m *Membership) Snapshot(ctx context.Context) (map[string]*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]*domain.User, m.users.len())
	for id, user := range m.users.all() {
		out[id] = user.Clone()
	}
	return out, nil
}

// nextMembershipIDLocked numbers cards from the current user count, skipping
// numbers still held after deletions. Caller must hold m.mu.
func (m *Membership) nextMembershipIDLocked() string {
	for n := m.users.len() + 1; ; n++ {
		candidate := domain.FormatMembershipID(n)
		if _, taken := m.byMembershipID[candidate]; !taken {
			return candidate
		}
	}
}
