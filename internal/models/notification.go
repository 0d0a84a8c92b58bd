package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimestampLayout is the wire format for notification timestamps (local time,
// no timezone), kept for compatibility with existing clients.
const TimestampLayout = "2006-01-02 15:04:05"

// Notification is an activity record targeted at a post's owner. It is
// created as a side effect of likes and comments by other users and is
// never mutated by the post core (only marked read or deleted by its owner).
type Notification struct {
	ID        string `gorm:"primaryKey" json:"id"`
	UserID    string `gorm:"not null;index" json:"userID"`
	Message   string `gorm:"not null" json:"message"`
	Read      bool   `gorm:"not null;default:false" json:"read"`
	CreatedAt string `json:"createdAt"`
}

func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
