package service

import (
	"context"

	"todo_list/internal/models"
	"todo_list/internal/repository"
)

// mockUserRepo is a lightweight in-test mock for repository.UserRepo.
type mockUserRepo struct {
	AddFn           func(u *models.User) error
	GetByUsernameFn func(username string) (*models.User, error)
	ListFn          func() ([]models.User, error)

	added    []*models.User
	getCalls []string
}

func (m *mockUserRepo) Add(_ context.Context, u *models.User) error {
	m.added = append(m.added, u)
	if m.AddFn == nil {
		u.ID = uint(len(m.added))
		return nil
	}
	return m.AddFn(u)
}

func (m *mockUserRepo) Remove(context.Context, *models.User) error { return nil }

func (m *mockUserRepo) GetByID(context.Context, uint) (*models.User, error) { return nil, nil }

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.getCalls = append(m.getCalls, username)
	if m.GetByUsernameFn == nil {
		return nil, nil
	}
	return m.GetByUsernameFn(username)
}

func (m *mockUserRepo) List(context.Context) ([]models.User, error) {
	if m.ListFn == nil {
		return []models.User{}, nil
	}
	return m.ListFn()
}

// mockTodoRepo keeps todos in a slice and can be told to fail.
type mockTodoRepo struct {
	todos  []models.Todo
	addErr error
	getErr error

	removed []uint
}

func (m *mockTodoRepo) Add(_ context.Context, t *models.Todo) error {
	if m.addErr != nil {
		return m.addErr
	}
	t.ID = uint(len(m.todos) + 1)
	m.todos = append(m.todos, *t)
	return nil
}

func (m *mockTodoRepo) Remove(_ context.Context, t *models.Todo) error {
	m.removed = append(m.removed, t.ID)
	return nil
}

func (m *mockTodoRepo) GetByID(_ context.Context, id uint) (*models.Todo, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for i := range m.todos {
		if m.todos[i].ID == id {
			t := m.todos[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (m *mockTodoRepo) GetByUserID(_ context.Context, userID uint) ([]models.Todo, error) {
	out := []models.Todo{}
	for _, t := range m.todos {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func provider(users repository.UserRepo, todos repository.TodoRepo) repository.Provider {
	return repository.ProviderFunc(func() *repository.Repository {
		return &repository.Repository{Users: users, Todos: todos}
	})
}

// recordingFeed counts Publish calls per user.
type recordingFeed struct {
	published []uint
}

func (f *recordingFeed) Subscribe(uint) (<-chan struct{}, func()) {
	return make(chan struct{}), func() {}
}

func (f *recordingFeed) Publish(userID uint) { f.published = append(f.published, userID) }
