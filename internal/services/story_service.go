package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Anway001/AI-Memory-Space/internal/dto"
	"github.com/Anway001/AI-Memory-Space/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultTitleRunes = 30
	maxIdempotencyKey = 128
)

var (
	ErrStoryNotFound      = errors.New("story not found")
	ErrStoryTextRequired  = errors.New("story text is required")
	ErrInvalidIdempotency = errors.New("idempotency key must be at most 128 characters")
)

// StoryService stores stories. Every lookup is scoped to the owning user, so a story
// owned by someone else is indistinguishable from one that does not exist.
type StoryService struct {
	db *gorm.DB
}

func NewStoryService(db *gorm.DB) *StoryService {
	return &StoryService{db: db}
}

// Create saves a story for userID. When idempotencyKey matches an earlier create by the
// same user, that story is returned and created is false.
func (s *StoryService) Create(userID uuid.UUID, req *dto.CreateStoryRequest, idempotencyKey string) (story *models.Story, created bool, err error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, false, ErrStoryTextRequired
	}

	key := strings.TrimSpace(idempotencyKey)
	if len(key) > maxIdempotencyKey {
		return nil, false, ErrInvalidIdempotency
	}
	if key != "" {
		existing, err := s.findByIdempotencyKey(userID, key)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, false, nil
		}
	}

	story = &models.Story{
		UserID:         userID,
		Title:          req.Title,
		Text:           req.Text,
		AudioBase64:    req.AudioBase64,
		ImageBase64:    req.ImageBase64,
		SavedToGallery: req.SavedToGallery,
	}
	if story.Title == "" {
		story.Title = DefaultTitle(req.Text)
	}
	if key != "" {
		story.IdempotencyKey = &key
	}

	if err := s.db.Create(story).Error; err != nil {
		if key != "" {
			// Lost a race with a concurrent create using the same key.
			if existing, findErr := s.findByIdempotencyKey(userID, key); findErr == nil && existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, fmt.Errorf("failed to create story: %w", err)
	}
	return story, true, nil
}

// List returns the user's stories newest first, keeping only the first story per title.
func (s *StoryService) List(userID uuid.UUID, savedOnly bool) ([]models.Story, error) {
	q := s.db.Where("user_id = ?", userID)
	if savedOnly {
		q = q.Where("saved_to_gallery = ?", true)
	}

	var stories []models.Story
	if err := q.Order("created_at DESC").Find(&stories).Error; err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return dedupeByTitle(stories), nil
}

func (s *StoryService) Get(userID, storyID uuid.UUID) (*models.Story, error) {
	var story models.Story
	if err := s.db.Where("id = ? AND user_id = ?", storyID, userID).First(&story).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed to load story: %w", err)
	}
	return &story, nil
}

func (s *StoryService) Update(userID, storyID uuid.UUID, req *dto.UpdateStoryRequest) (*models.Story, error) {
	if req.Text != nil && strings.TrimSpace(*req.Text) == "" {
		return nil, ErrStoryTextRequired
	}

	story, err := s.Get(userID, storyID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		story.Title = *req.Title
	}
	if req.Text != nil {
		story.Text = *req.Text
	}
	if req.SavedToGallery != nil {
		story.SavedToGallery = *req.SavedToGallery
	}

	if err := s.db.Save(story).Error; err != nil {
		return nil, fmt.Errorf("failed to update story: %w", err)
	}
	return story, nil
}

func (s *StoryService) Delete(userID, storyID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", storyID, userID).Delete(&models.Story{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete story: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStoryNotFound
	}
	return nil
}

func (s *StoryService) findByIdempotencyKey(userID uuid.UUID, key string) (*models.Story, error) {
	var story models.Story
	err := s.db.Where("user_id = ? AND idempotency_key = ?", userID, key).First(&story).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	return &story, nil
}

// DefaultTitle is the first 30 characters of text followed by "...".
func DefaultTitle(text string) string {
	runes := []rune(text)
	if len(runes) > defaultTitleRunes {
		runes = runes[:defaultTitleRunes]
	}
	return string(runes) + "..."
}

func dedupeByTitle(stories []models.Story) []models.Story {
	seen := make(map[string]struct{}, len(stories))
	out := make([]models.Story, 0, len(stories))
	for _, st := range stories {
		if _, dup := seen[st.Title]; dup {
			continue
		}
		seen[st.Title] = struct{}{}
		out = append(out, st)
	}
	return out
}
