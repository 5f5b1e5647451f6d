package repository

import (
	"context"
	"errors"
	"fmt"

	tl "todo_list"
	"todo_list/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	sess *Session
}

func NewUserRepository(sess *Session) *UserRepository {
	return &UserRepository{sess: sess}
}

// Ensure implementation of UserRepo interface at compile time.
var _ UserRepo = (*UserRepository)(nil)

// Add inserts u and commits. On success u.ID holds the store-assigned id.
// A taken username is reported as a duplicate PersistenceError that also
// matches todo_list.ErrDuplicateUsername.
func (r *UserRepository) Add(ctx context.Context, u *models.User) error {
	r.sess.Add(u)
	if err := r.sess.Commit(ctx); err != nil {
		if tl.IsPersistence(err, tl.KindDuplicate) {
			return fmt.Errorf("insert user %q: %w: %w", u.Username, tl.ErrDuplicateUsername, err)
		}
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	return nil
}

// Remove deletes u and commits.
func (r *UserRepository) Remove(ctx context.Context, u *models.User) error {
	r.sess.Remove(u)
	if err := r.sess.Commit(ctx); err != nil {
		return fmt.Errorf("delete user %d: %w", u.ID, err)
	}
	return nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := r.sess.Query(ctx, &models.User{}).Where("id = ?", id).Take(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return &u, nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.sess.Query(ctx, &models.User{}).Where("username = ?", username).Take(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}

// List returns every user ordered by id.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0, 16)
	if err := r.sess.Query(ctx, &models.User{}).Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
