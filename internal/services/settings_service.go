package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Anway001/AI-Memory-Space/internal/dto"
	"github.com/Anway001/AI-Memory-Space/internal/media"
	"github.com/Anway001/AI-Memory-Space/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SettingsService manages a user's storytelling preferences and avatar.
type SettingsService struct {
	db       *gorm.DB
	auth     *AuthService
	uploader media.Uploader
}

func NewSettingsService(db *gorm.DB, auth *AuthService, uploader media.Uploader) *SettingsService {
	if uploader == nil {
		uploader = media.Disabled()
	}
	return &SettingsService{db: db, auth: auth, uploader: uploader}
}

func (s *SettingsService) Get(userID uuid.UUID) (*models.User, error) {
	return s.auth.GetUser(userID)
}

// Update applies non-empty fields; autoRefine is applied whenever present.
func (s *SettingsService) Update(userID uuid.UUID, req *dto.UpdateSettingsRequest) (*models.User, error) {
	user, err := s.auth.GetUser(userID)
	if err != nil {
		return nil, err
	}

	setIfPresent(&user.Name, req.Name)
	setIfPresent(&user.DefaultGenre, req.DefaultGenre)
	setIfPresent(&user.StoryLength, req.StoryLength)
	setIfPresent(&user.Theme, req.Theme)
	setIfPresent(&user.AudioSpeed, req.AudioSpeed)
	setIfPresent(&user.Voice, req.Voice)
	if req.AutoRefine != nil {
		user.AutoRefine = *req.AutoRefine
	}
	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < minPasswordLength {
			return nil, ErrInvalidAccount
		}
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return user, nil
}

// SetProfilePicture stores the image and points the user's profilePic at it.
func (s *SettingsService) SetProfilePicture(ctx context.Context, userID uuid.UUID, filename, contentType string, size int64, body io.Reader) (string, error) {
	user, err := s.auth.GetUser(userID)
	if err != nil {
		return "", err
	}

	result, err := s.uploader.Upload(ctx, media.UploadInput{
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
		Body:        body,
	})
	if err != nil {
		return "", err
	}

	if err := s.db.Model(user).Update("profile_pic", result.URL).Error; err != nil {
		return "", fmt.Errorf("failed to save profile picture: %w", err)
	}
	return result.URL, nil
}

func setIfPresent(dst *string, v *string) {
	if v == nil {
		return
	}
	if trimmed := strings.TrimSpace(*v); trimmed != "" {
		*dst = trimmed
	}
}
