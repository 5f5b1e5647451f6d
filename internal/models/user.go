package models

import "time"

// User is an account that owns todos.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"uniqueIndex;size:80;not null" json:"username"`
	Credential           // don’t expose hash or salt
	CreatedAt  time.Time `json:"-"`
}

// Ensure User exposes the password capability at compile time.
var _ PasswordHolder = (*User)(nil)

// NewUser builds a user with a hashed credential for password.
func NewUser(username, password string) (*User, error) {
	u := &User{Username: username}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}
