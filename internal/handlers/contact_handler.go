package handlers

import (
	"errors"

	"github.com/Anway001/AI-Memory-Space/internal/dto"
	"github.com/Anway001/AI-Memory-Space/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if _, err := h.contactService.Submit(&req); err != nil {
		if errors.Is(err, services.ErrContactFieldsMissing) {
			return badRequest(c, "Missing fields")
		}
		return internalError(c, "contact", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "Message sent successfully"})
}
