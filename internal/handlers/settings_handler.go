package handlers

import (
	"errors"

	"github.com/Anway001/AI-Memory-Space/internal/dto"
	"github.com/Anway001/AI-Memory-Space/internal/media"
	"github.com/Anway001/AI-Memory-Space/internal/middleware"
	"github.com/Anway001/AI-Memory-Space/internal/services"
	"github.com/gofiber/fiber/v2"
)

const maxProfilePictureBytes = 5 * 1024 * 1024

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	user, err := h.settingsService.Get(userID)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(user)
}

func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.settingsService.Update(userID, &req)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(dto.UserResponse{Message: "Settings updated successfully!", User: user})
}

func (h *SettingsHandler) UploadProfilePicture(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "A file field is required")
	}
	if fh.Size > maxProfilePictureBytes {
		return badRequest(c, "Profile picture must be 5MB or smaller")
	}

	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "Could not read upload")
	}
	defer f.Close()

	url, err := h.settingsService.SetProfilePicture(c.UserContext(), userID, fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrUploaderDisabled):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Error: true, Message: "Profile picture uploads are not configured"})
		case errors.Is(err, media.ErrUnsupportedType):
			return badRequest(c, err.Error())
		}
		return authError(c, err)
	}

	return c.JSON(dto.ProfilePictureResponse{Message: "Profile picture updated", ProfilePic: url})
}
