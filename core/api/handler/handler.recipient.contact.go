package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"safety_hub/core/api/dto"
	"safety_hub/core/api/services"
)

// RecipientContactHandler xử lý quản trị số điện thoại override cho kênh WhatsApp
type RecipientContactHandler struct {
	contactService *services.RecipientContactService
}

// NewRecipientContactHandler tạo mới RecipientContactHandler
func NewRecipientContactHandler() (*RecipientContactHandler, error) {
	contactService, err := services.NewRecipientContactService()
	if err != nil {
		return nil, fmt.Errorf("failed to create recipient contact service: %w", err)
	}

	return &RecipientContactHandler{
		contactService: contactService,
	}, nil
}

// HandleSet ghi đè số điện thoại cho một user (upsert)
func (h *RecipientContactHandler) HandleSet(c fiber.Ctx) error {
	var input dto.RecipientContactSetInput
	if err := ParseRequestBody(c, &input); err != nil {
		return SendError(c, err)
	}

	contact, err := h.contactService.SetOverride(c.Context(), input.UserID, input.Phone, input.Note)
	if err != nil {
		return SendError(c, err)
	}

	return SendSuccess(c, contact)
}

// HandleRemove xóa số điện thoại override của một user
func (h *RecipientContactHandler) HandleRemove(c fiber.Ctx) error {
	var params dto.RecipientContactUserParam
	if err := ParseRequestParams(c, &params); err != nil {
		return SendError(c, err)
	}

	if err := h.contactService.RemoveOverride(c.Context(), params.UserID); err != nil {
		return SendError(c, err)
	}

	return SendSuccess(c, fiber.Map{"deleted": true})
}
