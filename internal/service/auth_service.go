package service

import (
	"context"
	"fmt"
	"strings"

	tl "todo_list"
	"todo_list/internal/models"
	"todo_list/internal/repository"
)

// AuthService handles user auth logic
type AuthService struct {
	repos  repository.Provider
	tokens *TokenManager
}

func NewAuthService(repos repository.Provider, tokens *TokenManager) *AuthService {
	return &AuthService{repos: repos, tokens: tokens}
}

var _ Authorization = (*AuthService)(nil)

// Register creates an account and returns its id. The lookup before insert only
// gives an early answer; a concurrent registration that slips past it is still
// rejected by the unique index and surfaces as ErrDuplicateUsername.
func (s *AuthService) Register(ctx context.Context, username, password string) (uint, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, tl.NewValidationError("username", "must not be empty")
	}

	repos := s.repos.Repositories()
	existing, err := repos.Users.GetByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, fmt.Errorf("register %q: %w", username, tl.ErrDuplicateUsername)
	}

	u, err := models.NewUser(username, password)
	if err != nil {
		return 0, err
	}
	if err := repos.Users.Add(ctx, u); err != nil {
		return 0, err
	}
	return u.ID, nil
}

// Login returns the user whose stored credential matches password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, tl.NewValidationError("username", "must not be empty")
	}
	if password == "" {
		return nil, tl.NewValidationError("password", "must not be empty")
	}

	u, err := s.repos.Repositories().Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &tl.AuthenticationError{Reason: "unknown user", Err: tl.ErrInvalidCredentials}
	}
	if !u.CheckPassword(password) {
		return nil, &tl.AuthenticationError{Reason: "password mismatch", Err: tl.ErrInvalidCredentials}
	}
	return u, nil
}

// ListUsers returns every registered account.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repos.Repositories().Users.List(ctx)
}

func (s *AuthService) GenerateToken(userID uint) (string, error) {
	return s.tokens.Issue(userID)
}

// ParseToken parses JWT and returns userID
func (s *AuthService) ParseToken(accessToken string) (uint, error) {
	id, err := s.tokens.Parse(accessToken)
	if err != nil {
		return 0, &tl.AuthenticationError{Reason: err.Error(), Err: tl.ErrUnauthenticated}
	}
	return id, nil
}
