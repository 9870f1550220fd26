package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultGenre       = "Fantasy"
	DefaultStoryLength = "Short"
	DefaultTheme       = "Gradient"
	DefaultAudioSpeed  = "1x"
	DefaultVoice       = "Default"
)

// User is an account plus its storytelling preferences.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string         `gorm:"size:120;not null" json:"name"`
	Email        string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password     string         `gorm:"not null" json:"-"`
	ProfilePic   string         `gorm:"size:1024;default:''" json:"profilePic"`
	DefaultGenre string         `gorm:"size:50;default:'Fantasy'" json:"defaultGenre"`
	StoryLength  string         `gorm:"size:30;default:'Short'" json:"storyLength"`
	AutoRefine   bool           `gorm:"default:false" json:"autoRefine"`
	Theme        string         `gorm:"size:30;default:'Gradient'" json:"theme"`
	AudioSpeed   string         `gorm:"size:10;default:'1x'" json:"audioSpeed"`
	Voice        string         `gorm:"size:50;default:'Default'" json:"voice"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// ApplyDefaultPreferences fills unset preferences with the account defaults.
func (u *User) ApplyDefaultPreferences() {
	if u.DefaultGenre == "" {
		u.DefaultGenre = DefaultGenre
	}
	if u.StoryLength == "" {
		u.StoryLength = DefaultStoryLength
	}
	if u.Theme == "" {
		u.Theme = DefaultTheme
	}
	if u.AudioSpeed == "" {
		u.AudioSpeed = DefaultAudioSpeed
	}
	if u.Voice == "" {
		u.Voice = DefaultVoice
	}
}
