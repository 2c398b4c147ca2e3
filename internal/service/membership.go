package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/listenupapp/librarian-server/internal/domain"
	"github.com/listenupapp/librarian-server/internal/id"
	"github.com/listenupapp/librarian-server/internal/store"
	"github.com/listenupapp/librarian-server/internal/validation"
)

// NewUserInput carries the fields for registering a library user.
type NewUserInput struct {
	Name  string `json:"name" validate:"required,notblank,max=200"`
	Email string `json:"email" validate:"required,email"`
	// MembershipID is generated as LIBnnn when empty.
	MembershipID string      `json:"membershipId,omitempty" validate:"omitempty,max=32"`
	Role         domain.Role `json:"role,omitempty" validate:"omitempty,oneof=member librarian admin"`
}

// UserUpdate is a partial update. Nil fields are left unchanged.
type UserUpdate struct {
	Name         *string      `json:"name,omitempty" validate:"omitnil,notblank,max=200"`
	Email        *string      `json:"email,omitempty" validate:"omitnil,email"`
	MembershipID *string      `json:"membershipId,omitempty" validate:"omitnil,notblank,max=32"`
	Role         *domain.Role `json:"role,omitempty" validate:"omitnil,oneof=member librarian admin"`
	IsActive     *bool        `json:"isActive,omitempty"`
}

func (u UserUpdate) apply(user *domain.User) {
	if u.Name != nil {
		user.Name = *u.Name
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.MembershipID != nil {
		user.MembershipID = *u.MembershipID
	}
	if u.Role != nil {
		user.Role = *u.Role
	}
	if u.IsActive != nil {
		user.IsActive = *u.IsActive
	}
}

// MembershipService handles business logic for library users.
type MembershipService struct {
	membership *store.Membership
	logger     *slog.Logger
	validator  *validation.Validator
	now        func() time.Time
}

// NewMembershipService creates a new membership service.
func NewMembershipService(membership *store.Membership, logger *slog.Logger) *MembershipService {
	return &MembershipService{
		membership: membership,
		logger:     logger,
		validator:  validation.New(),
		now:        time.Now,
	}
}

// AddUser registers a user. New users are active and default to the member role.
func (s *MembershipService) AddUser(ctx context.Context, in NewUserInput) (*domain.User, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	userID, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	role := in.Role
	if role == "" {
		role = domain.RoleMember
	}

	user := &domain.User{
		ID:           userID,
		Name:         in.Name,
		Email:        in.Email,
		MembershipID: in.MembershipID,
		Role:         role,
		JoinedAt:     s.now(),
		IsActive:     true,
	}

	if err := s.membership.CreateUser(ctx, user); err != nil {
		return nil, translate(err, "create user")
	}

	s.logger.Info("user added",
		"user_id", user.ID,
		"membership_id", user.MembershipID,
		"role", user.Role,
	)
	return user, nil
}

// UpdateUser merges the provided fields into a user.
func (s *MembershipService) UpdateUser(ctx context.Context, userID string, update UserUpdate) (*domain.User, error) {
	if err := s.validator.Validate(update); err != nil {
		return nil, err
	}

	user, err := s.membership.UpdateUser(ctx, userID, func(u *domain.User) error {
		update.apply(u)
		return nil
	})
	if err != nil {
		return nil, translate(err, "update user")
	}

	s.logger.Info("user updated", "user_id", user.ID)
	return user, nil
}

// SetActive sets a user's active flag.
func (s *MembershipService) SetActive(ctx context.Context, userID string, active bool) (*domain.User, error) {
	return s.UpdateUser(ctx, userID, UserUpdate{IsActive: &active})
}

// ToggleActive flips a user's active flag.
func (s *MembershipService) ToggleActive(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.membership.UpdateUser(ctx, userID, func(u *domain.User) error {
		u.IsActive = !u.IsActive
		return nil
	})
	if err != nil {
		return nil, translate(err, "toggle active")
	}

	s.logger.Info("user active flag toggled", "user_id", user.ID, "is_active", user.IsActive)
	return user, nil
}

// GetUser returns a single user.
func (s *MembershipService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.membership.GetUser(ctx, userID)
	if err != nil {
		return nil, translate(err, "get user")
	}
	return user, nil
}

// DeleteUser removes a user. Their loans stay in the ledger.
func (s *MembershipService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.membership.DeleteUser(ctx, userID); err != nil {
		return translate(err, "delete user")
	}
	s.logger.Info("user deleted", "user_id", userID)
	return nil
}

// FilterUsers returns users whose name, email or membership ID contains
// search and whose role matches. An empty or "all" role matches every user.
func (s *MembershipService) FilterUsers(ctx context.Context, search, role string) ([]*domain.User, error) {
	users, err := s.membership.ListUsers(ctx, store.UserFilter{Search: search, Role: role})
	if err != nil {
		return nil, translate(err, "list users")
	}
	return users, nil
}
