package identity

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/indolink/backend/internal/domain/identity"
	"github.com/indolink/backend/internal/domain/shared"
)

// TokenIssuer signs tokens for authenticated users
type TokenIssuer interface {
	Generate(user *identity.User) (string, time.Time, error)
}

// AuthService handles account registration and login
type AuthService struct {
	userRepo identity.UserRepository
	tokens   TokenIssuer
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates a seller or buyer account and signs it in. Admin
// accounts cannot self-register; they are seeded at deploy time.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	role, ok := identity.ParseRole(req.Role)
	if !ok {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be one of SELLER, BUYER")
	}
	if role == identity.RoleAdmin {
		return nil, shared.NewDomainError("INVALID_ROLE", "Admin accounts cannot self-register")
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}
	registered, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(req.Username, req.Email, string(hash), role)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()),
	)
	return s.issue(user)
}

// Login authenticates by username and password
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		// Same error for unknown user and wrong password
		return nil, invalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, invalidCredentials()
	}

	return s.issue(user)
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

func invalidCredentials() error {
	return shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
}
