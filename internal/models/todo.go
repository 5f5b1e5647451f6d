package models

import "time"

// Todo is a single item on a user's list.
type Todo struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:120;not null" json:"title"`
	Description *string   `gorm:"size:500" json:"description"` // nullable
	UserID      uint      `gorm:"index;not null" json:"-"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	CreatedAt   time.Time `json:"-"`
}

// DescriptionOrEmpty returns the description, or "" when it is NULL.
func (t Todo) DescriptionOrEmpty() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}
