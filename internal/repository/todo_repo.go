package repository

import (
	"context"
	"errors"
	"fmt"

	"todo_list/internal/models"

	"gorm.io/gorm"
)

type TodoRepository struct {
	sess *Session
}

func NewTodoRepository(sess *Session) *TodoRepository {
	return &TodoRepository{sess: sess}
}

var _ TodoRepo = (*TodoRepository)(nil)

// Add inserts t and commits. An owner id that references no user is rejected by
// the store's foreign key and leaves no row behind.
func (r *TodoRepository) Add(ctx context.Context, t *models.Todo) error {
	r.sess.Add(t)
	if err := r.sess.Commit(ctx); err != nil {
		return fmt.Errorf("insert todo for user %d: %w", t.UserID, err)
	}
	return nil
}

// Remove deletes t and commits.
func (r *TodoRepository) Remove(ctx context.Context, t *models.Todo) error {
	r.sess.Remove(t)
	if err := r.sess.Commit(ctx); err != nil {
		return fmt.Errorf("delete todo %d: %w", t.ID, err)
	}
	return nil
}

// GetByID fetches a todo by id. Returns (nil, nil) if not found.
func (r *TodoRepository) GetByID(ctx context.Context, id uint) (*models.Todo, error) {
	var t models.Todo
	err := r.sess.Query(ctx, &models.Todo{}).Where("id = ?", id).Take(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("select todo %d: %w", id, err)
	}
	return &t, nil
}

// GetByUserID returns the user's todos in insertion order.
func (r *TodoRepository) GetByUserID(ctx context.Context, userID uint) ([]models.Todo, error) {
	todos := make([]models.Todo, 0, 16)
	err := r.sess.Query(ctx, &models.Todo{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("select todos for user %d: %w", userID, err)
	}
	return todos, nil
}
