package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/identity"
	"github.com/warehouse/backend/internal/domain/shared"
)

// TokenIssuer signs tokens for authenticated users
type TokenIssuer interface {
	Generate(user *identity.User) (string, time.Time, error)
}

// AuthService handles registration and login. Registration mints a fresh
// tenant ID and creates its first admin user; there is no separate tenant
// entity, the ID on the user is the tenant.
type AuthService struct {
	users  identity.UserRepository
	tokens TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(users identity.UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a new tenant and its admin user, returning a signed token
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	user, err := identity.NewUser(uuid.New(), req.Email, req.Name, req.Password, identity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Login authenticates a user and returns a signed token. Invalid email and
// invalid password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if !user.Active || !user.CheckPassword(req.Password) {
		return nil, shared.ErrUnauthorized
	}
	return s.issue(user)
}

// Me returns the authenticated user's profile
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// ChangePassword replaces the caller's password after verifying the
// current one
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(req.CurrentPassword) {
		return shared.ErrUnauthorized
	}
	if err := user.ChangePassword(req.NewPassword); err != nil {
		return err
	}
	return s.users.Save(ctx, user)
}

func (s *AuthService) issue(user *identity.User) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserResponse(user),
	}, nil
}
