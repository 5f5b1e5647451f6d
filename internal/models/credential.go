package models

import (
	"strings"

	tl "todo_list"
)

// PasswordHolder is implemented by any account type that keeps a password credential.
type PasswordHolder interface {
	SetPassword(plaintext string) error
	CheckPassword(plaintext string) bool
}

var _ PasswordHolder = (*Credential)(nil)

// Credential is the stored form of a password: digest, salt and the algorithm that
// produced them. It is embedded in User and mapped onto the users table.
type Credential struct {
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	PasswordSalt string `gorm:"column:password_salt" json:"-"`
	PasswordAlgo string `gorm:"column:password_algo;size:16;not null" json:"-"`
}

// SetPassword replaces the credential with a fresh salted digest of plaintext.
func (c *Credential) SetPassword(plaintext string) error {
	if strings.TrimSpace(plaintext) == "" {
		return tl.NewValidationError("password", "must not be empty")
	}
	h := DefaultHasher()
	hash, salt, err := h.Hash(plaintext)
	if err != nil {
		return err
	}
	c.PasswordHash = hash
	c.PasswordSalt = salt
	c.PasswordAlgo = h.Algorithm()
	return nil
}

// CheckPassword reports whether plaintext matches the stored digest.
func (c *Credential) CheckPassword(plaintext string) bool {
	if c.PasswordHash == "" {
		return false
	}
	h, ok := HasherFor(c.PasswordAlgo)
	if !ok {
		return false
	}
	return h.Verify(plaintext, c.PasswordHash, c.PasswordSalt)
}
