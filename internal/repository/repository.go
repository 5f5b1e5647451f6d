package repository

import (
	"context"

	"todo_list/internal/models"
)

// UserRepo is the typed façade over users.
type UserRepo interface {
	Add(ctx context.Context, u *models.User) error
	Remove(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// TodoRepo is the typed façade over todos.
type TodoRepo interface {
	Add(ctx context.Context, t *models.Todo) error
	Remove(ctx context.Context, t *models.Todo) error
	GetByID(ctx context.Context, id uint) (*models.Todo, error)
	GetByUserID(ctx context.Context, userID uint) ([]models.Todo, error)
}

// Repository groups the repositories that share one session.
type Repository struct {
	Users UserRepo
	Todos TodoRepo
}

// New binds both repositories to sess.
func New(sess *Session) *Repository {
	return &Repository{
		Users: NewUserRepository(sess),
		Todos: NewTodoRepository(sess),
	}
}

// Provider hands out a Repository backed by a fresh unit of work. Services call
// it once per operation so no session outlives a request.
type Provider interface {
	Repositories() *Repository
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() *Repository

func (f ProviderFunc) Repositories() *Repository { return f() }

var _ Provider = (*Store)(nil)
