package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Story is a generated narrative owned by exactly one user.
type Story struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_stories_user_idempotency,priority:1" json:"userId"`
	Title          string    `gorm:"size:255" json:"title"`
	Text           string    `gorm:"type:text;not null" json:"text"`
	AudioBase64    *string   `gorm:"type:text" json:"audioBase64"`
	ImageBase64    *string   `gorm:"type:text" json:"imageBase64"`
	SavedToGallery bool      `gorm:"not null;default:false;index" json:"savedToGallery"`
	IdempotencyKey *string   `gorm:"size:128;uniqueIndex:idx_stories_user_idempotency,priority:2" json:"-"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (s *Story) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
