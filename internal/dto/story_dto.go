package dto

import "github.com/Anway001/AI-Memory-Space/internal/models"

type CreateStoryRequest struct {
	Title          string  `json:"title"`
	Text           string  `json:"text"`
	AudioBase64    *string `json:"audioBase64"`
	ImageBase64    *string `json:"imageBase64"`
	SavedToGallery bool    `json:"savedToGallery"`
}

// UpdateStoryRequest changes only the fields that are present.
type UpdateStoryRequest struct {
	Title          *string `json:"title"`
	Text           *string `json:"text"`
	SavedToGallery *bool   `json:"savedToGallery"`
}

type StoryResponse struct {
	Message string        `json:"message"`
	Story   *models.Story `json:"story"`
}

type StoryListResponse struct {
	Stories []models.Story `json:"stories"`
}

type GenerateStoryResponse struct {
	Story       string  `json:"story"`
	AudioBase64 *string `json:"audioBase64"`
	StoryID     string  `json:"storyId,omitempty"`
}

// GenerateErrorResponse is the body for generate-story failures.
type GenerateErrorResponse struct {
	Error string `json:"error"`
}
