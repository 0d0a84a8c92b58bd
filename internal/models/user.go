package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is consumed read-only by the post core: only the display name is
// needed, for comment snapshots and notification messages.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"not null" json:"fullname"`
	Email     string    `gorm:"unique" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
