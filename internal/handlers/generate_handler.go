package handlers

import (
	"errors"
	"log/slog"
	"mime/multipart"

	"github.com/Anway001/AI-Memory-Space/internal/dto"
	"github.com/Anway001/AI-Memory-Space/internal/generation"
	"github.com/Anway001/AI-Memory-Space/internal/middleware"
	"github.com/Anway001/AI-Memory-Space/internal/models"
	"github.com/Anway001/AI-Memory-Space/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

const generateFailedMessage = "Failed to generate story"

type GenerateHandler struct {
	generationService *services.GenerationService
	authService       *services.AuthService
}

func NewGenerateHandler(generationService *services.GenerationService, authService *services.AuthService) *GenerateHandler {
	return &GenerateHandler{generationService: generationService, authService: authService}
}

func (h *GenerateHandler) GenerateStory(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.GenerateErrorResponse{Error: "Request must be multipart/form-data"})
	}

	var files []*multipart.FileHeader
	files = append(files, form.File["photos"]...)
	files = append(files, form.File["photos[]"]...)

	images, err := generation.ReadImages(files)
	if err != nil {
		slog.Error("failed to read uploaded photos", "action", "read_photos", "request_id", requestID(c), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.GenerateErrorResponse{Error: generateFailedMessage})
	}

	in := services.GenerateInput{
		Images:      images,
		Description: formValue(form, "description"),
		Genre:       formValue(form, "genre"),
		Length:      formValue(form, "storyLength"),
		WhatIf:      formValue(form, "whatIf"),
		WantAudio:   formValue(form, "audio") != "false",
		Save:        formValue(form, "save") == "true",
		User:        h.currentUser(c),
	}

	result, err := h.generationService.Generate(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, services.ErrNothingToGenerate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.GenerateErrorResponse{Error: "Upload at least one photo or write a description"})
		}
		cause := err
		var genErr *generation.GenerationError
		if errors.As(err, &genErr) && genErr.Err != nil {
			cause = genErr.Err
		} else {
			slog.Error("generate-story failed", "action", "generate_story", "request_id", requestID(c), "error", err)
		}
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(cause)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.GenerateErrorResponse{Error: generateFailedMessage})
	}

	resp := dto.GenerateStoryResponse{Story: result.Story, AudioBase64: result.AudioBase64}
	if result.StoryID != nil {
		resp.StoryID = result.StoryID.String()
	}
	return c.JSON(resp)
}

// currentUser returns the signed-in caller, or nil for anonymous requests.
func (h *GenerateHandler) currentUser(c *fiber.Ctx) *models.User {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return nil
	}
	user, err := h.authService.GetUser(userID)
	if err != nil {
		return nil
	}
	return user
}

func formValue(form *multipart.Form, key string) string {
	if vals := form.Value[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}
