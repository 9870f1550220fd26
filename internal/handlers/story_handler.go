package handlers

import (
	"errors"

	"github.com/Anway001/AI-Memory-Space/internal/dto"
	"github.com/Anway001/AI-Memory-Space/internal/middleware"
	"github.com/Anway001/AI-Memory-Space/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type StoryHandler struct {
	storyService *services.StoryService
}

func NewStoryHandler(storyService *services.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

func (h *StoryHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateStoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	story, created, err := h.storyService.Create(userID, &req, c.Get("Idempotency-Key"))
	if err != nil {
		return storyError(c, err)
	}

	status := fiber.StatusCreated
	message := "Story saved successfully"
	if !created {
		status = fiber.StatusOK
		message = "Story already saved"
	}
	return c.Status(status).JSON(dto.StoryResponse{Message: message, Story: story})
}

func (h *StoryHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	stories, err := h.storyService.List(userID, c.Query("saved") == "true")
	if err != nil {
		return storyError(c, err)
	}

	return c.JSON(dto.StoryListResponse{Stories: stories})
}

func (h *StoryHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpdateStoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	storyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, "Story not found")
	}

	story, err := h.storyService.Update(userID, storyID, &req)
	if err != nil {
		return storyError(c, err)
	}

	return c.JSON(dto.StoryResponse{Message: "Story updated", Story: story})
}

func (h *StoryHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	// Malformed ids are reported like missing ones.
	storyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, "Story not found")
	}

	if err := h.storyService.Delete(userID, storyID); err != nil {
		return storyError(c, err)
	}

	return c.JSON(dto.MessageResponse{Message: "Story deleted"})
}

func storyError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrStoryTextRequired):
		return badRequest(c, "Story text is required")
	case errors.Is(err, services.ErrInvalidIdempotency):
		return badRequest(c, err.Error())
	case errors.Is(err, services.ErrStoryNotFound):
		return notFound(c, "Story not found")
	}
	return internalError(c, "stories", err)
}
