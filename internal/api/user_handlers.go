package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/librarian-server/internal/domain"
	"github.com/listenupapp/librarian-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/users",
		Summary:     "List users",
		Description: "Lists library users, optionally filtered by search text and role",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/users/{id}",
		Summary:     "Get user",
		Description: "Returns a library user by ID",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createUser",
		Method:        http.MethodPost,
		Path:          "/api/users",
		Summary:       "Register user",
		Description:   "Registers a library user. A membership ID is assigned when none is given.",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateUser",
		Method:      http.MethodPatch,
		Path:        "/api/users/{id}",
		Summary:     "Update user",
		Description: "Applies a partial update. Omitted fields are left unchanged.",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "setUserActive",
		Method:      http.MethodPut,
		Path:        "/api/users/{id}/active",
		Summary:     "Set user active flag",
		Description: "Activates or deactivates a library user",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSetUserActive)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleUserActive",
		Method:      http.MethodPost,
		Path:        "/api/users/{id}/toggle-active",
		Summary:     "Toggle user active flag",
		Description: "Flips a library user between active and inactive",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleToggleUserActive)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUserLoans",
		Method:      http.MethodGet,
		Path:        "/api/users/{id}/loans",
		Summary:     "List a user's loans",
		Description: "Lists the loans issued to a user, optionally filtered by stored status",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListUserLoans)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteUser",
		Method:      http.MethodDelete,
		Path:        "/api/users/{id}",
		Summary:     "Delete user",
		Description: "Removes a library user. Their loans stay in the ledger.",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteUser)
}

// === DTOs ===

// ListUsersInput contains parameters for listing users.
type ListUsersInput struct {
	Search string `query:"search" doc:"Case-insensitive match on name, email or membership ID"`
	Role   string `query:"role" doc:"Exact role; empty or 'all' matches every user"`
}

// UserIDInput identifies a single user.
type UserIDInput struct {
	ID string `path:"id" doc:"User ID"`
}

// CreateUserRequest is the request body for registering a user.
type CreateUserRequest struct {
	_            struct{}    `json:"-" additionalProperties:"true"`
	Name         string      `json:"name" doc:"Full name"`
	Email        string      `json:"email" doc:"Email address"`
	MembershipID string      `json:"membershipId,omitempty" doc:"Library card number, generated as LIBnnn when omitted"`
	Role         domain.Role `json:"role,omitempty" doc:"member, librarian or admin; member when omitted"`
}

// CreateUserInput wraps the create request for Huma.
type CreateUserInput struct {
	Body CreateUserRequest
}

// UpdateUserRequest is the request body for a partial user update.
type UpdateUserRequest struct {
	_            struct{}     `json:"-" additionalProperties:"true"`
	Name         *string      `json:"name,omitempty" doc:"Full name"`
	Email        *string      `json:"email,omitempty" doc:"Email address"`
	MembershipID *string      `json:"membershipId,omitempty" doc:"Library card number"`
	Role         *domain.Role `json:"role,omitempty" doc:"member, librarian or admin"`
	IsActive     *bool        `json:"isActive,omitempty" doc:"Whether the user may borrow"`
}

// UpdateUserInput wraps the update request for Huma.
type UpdateUserInput struct {
	ID   string `path:"id" doc:"User ID"`
	Body UpdateUserRequest
}

// SetActiveRequest is the request body for setting the active flag.
type SetActiveRequest struct {
	IsActive bool `json:"isActive" doc:"New active flag"`
}

// SetActiveInput wraps the set-active request for Huma.
type SetActiveInput struct {
	ID   string `path:"id" doc:"User ID"`
	Body SetActiveRequest
}

// ListUserLoansInput contains parameters for listing a user's loans.
type ListUserLoansInput struct {
	ID     string `path:"id" doc:"User ID"`
	Status string `query:"status" doc:"Stored status: borrowed, returned or all"`
}

// UserOutput wraps a single user for Huma.
type UserOutput struct {
	Body *domain.User
}

// UserListOutput wraps a list of users for Huma.
type UserListOutput struct {
	Body []*domain.User
}

// === Handlers ===

func (s *Server) handleListUsers(ctx context.Context, input *ListUsersInput) (*UserListOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	users, err := s.services.Membership.FilterUsers(ctx, input.Search, input.Role)
	if err != nil {
		return nil, err
	}
	return &UserListOutput{Body: users}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *UserIDInput) (*UserOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	user, err := s.services.Membership.GetUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleCreateUser(ctx context.Context, input *CreateUserInput) (*UserOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	user, err := s.services.Membership.AddUser(ctx, service.NewUserInput{
		Name:         input.Body.Name,
		Email:        input.Body.Email,
		MembershipID: input.Body.MembershipID,
		Role:         input.Body.Role,
	})
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleUpdateUser(ctx context.Context, input *UpdateUserInput) (*UserOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	user, err := s.services.Membership.UpdateUser(ctx, input.ID, service.UserUpdate{
		Name:         input.Body.Name,
		Email:        input.Body.Email,
		MembershipID: input.Body.MembershipID,
		Role:         input.Body.Role,
		IsActive:     input.Body.IsActive,
	})
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleSetUserActive(ctx context.Context, input *SetActiveInput) (*UserOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	user, err := s.services.Membership.SetActive(ctx, input.ID, input.Body.IsActive)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleToggleUserActive(ctx context.Context, input *UserIDInput) (*UserOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	user, err := s.services.Membership.ToggleActive(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleListUserLoans(ctx context.Context, input *ListUserLoansInput) (*LoanListOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	loans, err := s.services.Circulation.LoansForUser(ctx, input.ID, input.Status)
	if err != nil {
		return nil, err
	}
	return &LoanListOutput{Body: loans}, nil
}

func (s *Server) handleDeleteUser(ctx context.Context, input *UserIDInput) (*MessageOutput, error) {
	if _, err := GetAccount(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Membership.DeleteUser(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "User deleted"}}, nil
}
