package service

import (
	"context"

	"todo_list/internal/models"
	"todo_list/internal/repository"
)

// Authorization covers account registration, credential checks and API tokens.
type Authorization interface {
	Register(ctx context.Context, username, password string) (uint, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GenerateToken(userID uint) (string, error)
	ParseToken(accessToken string) (uint, error)
}

// Todos exposes the owner-scoped todo operations.
type Todos interface {
	Create(ctx context.Context, userID uint, in TodoInput) (*models.Todo, error)
	List(ctx context.Context, userID uint) ([]models.Todo, error)
	Get(ctx context.Context, userID, id uint) (*models.Todo, error)
	Delete(ctx context.Context, userID, id uint) error
}

// Feed lets long-lived connections wait for changes to one user's list.
type Feed interface {
	Subscribe(userID uint) (<-chan struct{}, func())
	Publish(userID uint)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Todos
	Feed
}

// NewService wires the store into concrete services. Every call into a service
// takes fresh repositories from repos, so no unit of work is shared between requests.
func NewService(repos repository.Provider, tokens *TokenManager) *Service {
	feed := NewFeedService()
	return &Service{
		Authorization: NewAuthService(repos, tokens),
		Todos:         NewTodoService(repos, feed),
		Feed:          feed,
	}
}
