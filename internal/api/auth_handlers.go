package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/librarian-server/internal/domain"
	"github.com/listenupapp/librarian-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	limit := huma.Middlewares{s.rateLimited(s.authRateLimiter)}

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "Log in",
		Description: "Checks credentials and returns a PASETO access token",
		Tags:        []string{"Authentication"},
		Middlewares: limit,
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/api/auth/register",
		Summary:       "Register account",
		Description:   "Creates a staff account that can log in to the API",
		Tags:          []string{"Authentication"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   limit,
	}, s.handleRegister)
}

// === DTOs ===

// LoginRequest is the request body for login.
type LoginRequest struct {
	Username string `json:"username" maxLength:"64" doc:"Account username"`
	Password string `json:"password" maxLength:"1024" doc:"Account password"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body LoginRequest
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token string `json:"token" doc:"PASETO access token"`
}

// LoginOutput wraps the login response for Huma.
type LoginOutput struct {
	Body LoginResponse
}

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Username string             `json:"username" maxLength:"64" doc:"Account username"`
	Password string             `json:"password" maxLength:"1024" doc:"Account password (at least 8 characters)"`
	Role     domain.AccountRole `json:"role,omitempty" enum:"USER,ADMIN" doc:"Account role, USER when omitted"`
}

// RegisterInput wraps the register request for Huma.
type RegisterInput struct {
	Body RegisterRequest
}

// AccountResponse describes an account without its credentials.
type AccountResponse struct {
	ID        string             `json:"id" doc:"Account ID"`
	Username  string             `json:"username" doc:"Account username"`
	Role      domain.AccountRole `json:"role" doc:"Account role"`
	CreatedAt time.Time          `json:"createdAt" doc:"Creation timestamp"`
}

// AccountOutput wraps the account response for Huma.
type AccountOutput struct {
	Body AccountResponse
}

// === Handlers ===

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &LoginOutput{Body: LoginResponse{Token: resp.Token}}, nil
}

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*AccountOutput, error) {
	account, err := s.services.Auth.Register(ctx, service.RegisterRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
		Role:     input.Body.Role,
	})
	if err != nil {
		return nil, err
	}

	return &AccountOutput{Body: AccountResponse{
		ID:        account.ID,
		Username:  account.Username,
		Role:      account.Role,
		CreatedAt: account.CreatedAt,
	}}, nil
}
