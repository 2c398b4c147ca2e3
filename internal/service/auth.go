package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/listenupapp/librarian-server/internal/auth"
	"github.com/listenupapp/librarian-server/internal/domain"
	domainerrors "github.com/listenupapp/librarian-server/internal/errors"
	"github.com/listenupapp/librarian-server/internal/id"
	"github.com/listenupapp/librarian-server/internal/store"
	"github.com/listenupapp/librarian-server/internal/validation"
)

// RegisterRequest contains the data for creating login credentials.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,notblank,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
	// Role defaults to USER.
	Role domain.AccountRole `json:"role,omitempty" validate:"omitempty,oneof=USER ADMIN"`
}

// LoginRequest contains account credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token string `json:"token"`
}

// AuthService handles account registration, login and token verification.
type AuthService struct {
	accounts     *store.Accounts
	tokenService *auth.TokenService
	logger       *slog.Logger
	validator    *validation.Validator
	now          func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(accounts *store.Accounts, tokenService *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		accounts:     accounts,
		tokenService: tokenService,
		logger:       logger,
		validator:    validation.New(),
		now:          time.Now,
	}
}

// Register creates an account with an argon2id password hash.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.Account, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	accountID, err := id.Generate(id.PrefixAccount)
	if err != nil {
		return nil, fmt.Errorf("generate account ID: %w", err)
	}

	role := req.Role
	if role == "" {
		role = domain.AccountRoleUser
	}

	account := &domain.Account{
		ID:           accountID,
		Username:     req.Username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    s.now(),
	}

	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return nil, domainerrors.AlreadyExistsf("username %q is already in use", req.Username)
		}
		return nil, translate(err, "create account")
	}

	s.logger.Info("account registered",
		"account_id", account.ID,
		"username", account.Username,
		"role", account.Role,
	)
	return account, nil
}

// Login checks credentials and issues an access token. Unknown usernames and
// wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetAccountByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			s.logger.Warn("login failed", "username", req.Username, "reason", "unknown username")
			return nil, domainerrors.InvalidCredentials("invalid username or password")
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	if !auth.VerifyPassword(account.PasswordHash, req.Password) {
		s.logger.Warn("login failed", "username", req.Username, "reason", "wrong password")
		return nil, domainerrors.InvalidCredentials("invalid username or password")
	}

	token, err := s.tokenService.GenerateAccessToken(account)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	s.logger.Info("login succeeded", "account_id", account.ID)
	return &LoginResponse{Token: token}, nil
}

// VerifyToken validates an access token and returns the account it was issued to.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*domain.Account, error) {
	claims, err := s.tokenService.VerifyAccessToken(token)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired access token").WithCause(err)
	}

	account, err := s.accounts.GetAccount(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return nil, domainerrors.Unauthorized("account no longer exists")
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}
