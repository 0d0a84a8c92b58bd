// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Post is the primary content entity. Media URLs, the per-user like map and
// the comment list are stored as JSON columns so the whole post reads and
// writes as one document.
type Post struct {
	ID          string                              `gorm:"primaryKey" json:"id"`
	UserID      string                              `gorm:"not null;index" json:"userID"`
	Title       string                              `gorm:"not null" json:"title"`
	Description string                              `gorm:"type:text" json:"description"`
	Category    string                              `json:"category"`
	Media       datatypes.JSONSlice[string]         `json:"media"`
	Likes       datatypes.JSONType[map[string]bool] `json:"likes"`
	Comments    datatypes.JSONSlice[Comment]        `json:"comments"`
	CreatedAt   time.Time                           `json:"created_at"`
	UpdatedAt   time.Time                           `json:"updated_at"`
}

// Comment lives inside a post document. UserFullName is a display-name
// snapshot taken at creation time and never refreshed.
type Comment struct {
	ID           string `json:"id"`
	UserID       string `json:"userID"`
	UserFullName string `json:"userFullName"`
	Content      string `json:"content"`
}

// BeforeCreate assigns a fresh UUID when the store generates the identifier.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// LikedBy reports the current like state for a user (absent means false).
func (p *Post) LikedBy(userID string) bool {
	return p.Likes.Data()[userID]
}

// ToggleLike flips the like flag for a user and returns the new state.
func (p *Post) ToggleLike(userID string) bool {
	likes := p.Likes.Data()
	if likes == nil {
		likes = make(map[string]bool)
	}
	likes[userID] = !likes[userID]
	p.Likes = datatypes.NewJSONType(likes)
	return likes[userID]
}

// RemoveMedia drops the first occurrence of url from the media list.
// It reports whether the url was present.
func (p *Post) RemoveMedia(url string) bool {
	for i, m := range p.Media {
		if m == url {
			p.Media = append(p.Media[:i], p.Media[i+1:]...)
			return true
		}
	}
	return false
}
