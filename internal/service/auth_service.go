package service

import (
	"context"
	"fmt"

	"github.com/article-share-api/internal/auth"
	"github.com/article-share-api/internal/models"
	"github.com/article-share-api/internal/repository"
	"github.com/rs/zerolog"
)

// authService is the concrete implementation of AuthService
type authService struct {
	users         repository.UserRepository
	hasher        auth.Hasher
	tokens        auth.TokenCodec
	adminPassword string
	log           zerolog.Logger
}

func newAuthService(users repository.UserRepository, hasher auth.Hasher, tokens auth.TokenCodec, adminPassword string, log zerolog.Logger) *authService {
	return &authService{
		users:         users,
		hasher:        hasher,
		tokens:        tokens,
		adminPassword: adminPassword,
		log:           log.With().Str("component", "auth_service").Logger(),
	}
}

// Register creates a new user and issues a session token. Input length
// constraints are validated by the handler before this is called.
func (s *authService) Register(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	exists, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, ErrDuplicateUsername
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index catches the race between the existence check
		// and the insert.
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("User registered")

	return &models.AuthResponse{Token: token, User: user.Public()}, nil
}

// Login verifies the credentials and issues a session token. Absent user
// and wrong password yield the same generic ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &models.AuthResponse{Token: token, User: user.Public()}, nil
}

// EnsureAdmin bootstraps the admin account on an empty store. Runs once at
// startup; a store that already holds any user is left untouched.
func (s *authService) EnsureAdmin(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := s.hasher.Hash(s.adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Username:     models.AdminUsername,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if repository.IsUniqueViolation(err) {
			// Another instance bootstrapped first.
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	s.log.Info().Int64("user_id", admin.ID).Msg("Admin user created")
	return nil
}
