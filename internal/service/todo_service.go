package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	tl "todo_list"
	"todo_list/internal/models"
	"todo_list/internal/repository"
)

// Column sizes of the todos table.
const (
	maxTitleLen       = 120
	maxDescriptionLen = 500
)

// TodoInput carries the caller-supplied fields of a new todo.
type TodoInput struct {
	Title       string
	Description *string // nil or blank means no description
}

type TodoService struct {
	repos repository.Provider
	feed  Feed
}

func NewTodoService(repos repository.Provider, feed Feed) *TodoService {
	return &TodoService{repos: repos, feed: feed}
}

var _ Todos = (*TodoService)(nil)

// Create stores a new todo owned by userID.
func (s *TodoService) Create(ctx context.Context, userID uint, in TodoInput) (*models.Todo, error) {
	todo, err := normalizeTodo(in)
	if err != nil {
		return nil, err
	}
	todo.UserID = userID

	if err := s.repos.Repositories().Todos.Add(ctx, todo); err != nil {
		return nil, err
	}
	s.publish(userID)
	return todo, nil
}

// List returns the todos of userID in creation order.
func (s *TodoService) List(ctx context.Context, userID uint) ([]models.Todo, error) {
	return s.repos.Repositories().Todos.GetByUserID(ctx, userID)
}

// Get returns one todo of userID. A todo that exists but belongs to someone else
// is reported as ErrNotFound so ids of other users do not leak.
func (s *TodoService) Get(ctx context.Context, userID, id uint) (*models.Todo, error) {
	return s.owned(ctx, s.repos.Repositories(), userID, id)
}

// Delete removes one todo of userID.
func (s *TodoService) Delete(ctx context.Context, userID, id uint) error {
	repos := s.repos.Repositories()
	todo, err := s.owned(ctx, repos, userID, id)
	if err != nil {
		return err
	}
	if err := repos.Todos.Remove(ctx, todo); err != nil {
		return err
	}
	s.publish(userID)
	return nil
}

func (s *TodoService) owned(ctx context.Context, repos *repository.Repository, userID, id uint) (*models.Todo, error) {
	todo, err := repos.Todos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo == nil || todo.UserID != userID {
		return nil, fmt.Errorf("todo %d: %w", id, tl.ErrNotFound)
	}
	return todo, nil
}

func (s *TodoService) publish(userID uint) {
	if s.feed != nil {
		s.feed.Publish(userID)
	}
}

// normalizeTodo trims the input and checks it against the column limits.
func normalizeTodo(in TodoInput) (*models.Todo, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, tl.NewValidationError("title", "must not be empty")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return nil, tl.NewValidationError("title", fmt.Sprintf("must be at most %d characters", maxTitleLen))
	}

	todo := &models.Todo{Title: title}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if utf8.RuneCountInString(desc) > maxDescriptionLen {
			return nil, tl.NewValidationError("description", fmt.Sprintf("must be at most %d characters", maxDescriptionLen))
		}
		if desc != "" {
			todo.Description = &desc
		}
	}
	return todo, nil
}
