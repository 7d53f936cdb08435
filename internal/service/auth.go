package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/auth"
	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/models"
	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/repository"
)

var (
	// ErrInvalidCredentials is returned for a wrong password and for an
	// unknown email alike, so responses cannot be used to enumerate users.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrEmailAlreadyRegistered is the registration conflict.
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	// ErrUnauthenticated means the presented token is missing or invalid.
	ErrUnauthenticated = errors.New("invalid token")
	// ErrUserNotFound means the token was structurally valid but its subject
	// no longer resolves to a user. Kept distinct from ErrUnauthenticated.
	ErrUserNotFound = errors.New("user not found")
)

type AuthService interface {
	Register(ctx context.Context, email, password, name string, role models.Role, isActive *bool) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

type authService struct {
	repo   repository.UserRepository
	hasher *auth.Hasher
	tokens *auth.TokenService
	logger *zap.Logger
}

func NewAuthService(repo repository.UserRepository, hasher *auth.Hasher, tokens *auth.TokenService, logger *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new account. Role and active flag default server-side
// (standard user, active) when the caller leaves them unset.
func (s *authService) Register(ctx context.Context, email, password, name string, role models.Role, isActive *bool) (*models.User, error) {
	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyRegistered
	} else if !errors.Is(err, sql.ErrNoRows) {
		s.logger.Error("Failed to look up email during registration", zap.Error(err))
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}

	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	active := true
	if isActive != nil {
		active = *isActive
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:           name,
		Email:          email,
		HashedPassword: hashed,
		Role:           role,
		IsActive:       active,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates email/password and returns a signed access token.
// A successful login opportunistically rehashes credentials stored under a
// legacy scheme; that write is best-effort and never fails the login.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Debug("Login failed: user not found", zap.String("email", email))
			return "", ErrInvalidCredentials
		}
		s.logger.Error("Failed to get user by email", zap.Error(err))
		return "", fmt.Errorf("failed to retrieve user: %w", err)
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		s.logger.Debug("Login failed: password mismatch", zap.String("email", email))
		return "", ErrInvalidCredentials
	}

	if s.hasher.NeedsUpgrade(user.HashedPassword) {
		s.rehash(ctx, user, password)
	}

	token, err := s.tokens.Issue(user.ID, user.Role, 0)
	if err != nil {
		s.logger.Error("Failed to issue access token", zap.Error(err))
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// rehash replaces the user's stored hash with one from the preferred scheme.
// Failures are logged and swallowed; the enclosing login proceeds.
func (s *authService) rehash(ctx context.Context, user *models.User, password string) {
	s.logger.Info("Rehashing password to preferred scheme", zap.String("email", user.Email))
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("Failed to rehash password", zap.String("email", user.Email), zap.Error(err))
		return
	}
	user.HashedPassword = hashed
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		s.logger.Error("Failed to persist rehashed password", zap.String("email", user.Email), zap.Error(err))
	}
}

// CurrentUser resolves a bearer token to its user record.
func (s *authService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Decode(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	if claims.Subject == "" {
		return nil, ErrUnauthenticated
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Failed to get user by id", zap.Int64("id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}
