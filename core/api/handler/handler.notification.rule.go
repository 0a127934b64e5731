package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"

	"safety_hub/core/api/dto"
	models "safety_hub/core/api/models/mongodb"
	"safety_hub/core/api/services"
	"safety_hub/core/common"
	"safety_hub/core/notification"
)

// NotificationRuleHandler xử lý CRUD cho rule thông báo sự cố
// Filter và recipient descriptor được validate lúc ghi (fail fast),
// engine lúc match không phải xử lý rule hỏng
type NotificationRuleHandler struct {
	ruleService *services.NotificationRuleService
}

// NewNotificationRuleHandler tạo mới NotificationRuleHandler
func NewNotificationRuleHandler() (*NotificationRuleHandler, error) {
	ruleService, err := services.NewNotificationRuleService()
	if err != nil {
		return nil, fmt.Errorf("failed to create notification rule service: %w", err)
	}

	return &NotificationRuleHandler{
		ruleService: ruleService,
	}, nil
}

// HandleCreate xử lý request tạo rule mới
func (h *NotificationRuleHandler) HandleCreate(c fiber.Ctx) error {
	var input dto.NotificationRuleCreateInput
	if err := ParseRequestBody(c, &input); err != nil {
		return SendError(c, err)
	}

	rule, err := h.buildRule(input)
	if err != nil {
		return SendError(c, err)
	}

	// Validate semantics của filter/recipient/channels trước khi ghi
	if err := notification.ValidateRuleFilter(rule.Filter); err != nil {
		return SendError(c, err)
	}
	if err := notification.ValidateRecipientDescriptor(rule.Recipient); err != nil {
		return SendError(c, err)
	}
	if err := notification.ValidateChannels(rule.Channels); err != nil {
		return SendError(c, err)
	}

	created, err := h.ruleService.InsertOne(c.Context(), rule)
	if err != nil {
		return SendError(c, err)
	}

	return SendCreated(c, created)
}

// HandleUpdate xử lý request sửa rule
func (h *NotificationRuleHandler) HandleUpdate(c fiber.Ctx) error {
	var params dto.NotificationRuleIDParam
	if err := ParseRequestParams(c, &params); err != nil {
		return SendError(c, err)
	}

	var input dto.NotificationRuleUpdateInput
	if err := ParseRequestBody(c, &input); err != nil {
		return SendError(c, err)
	}

	id, err := ParseObjectID(params.ID)
	if err != nil {
		return SendError(c, err)
	}

	update := bson.M{}

	if input.Name != "" {
		update["name"] = input.Name
	}

	if input.Recipient != nil {
		recipient, err := buildRecipientDescriptor(*input.Recipient)
		if err != nil {
			return SendError(c, err)
		}
		if err := notification.ValidateRecipientDescriptor(recipient); err != nil {
			return SendError(c, err)
		}
		update["recipient"] = recipient
	}

	if input.Channels != nil {
		if err := notification.ValidateChannels(input.Channels); err != nil {
			return SendError(c, err)
		}
		update["channels"] = input.Channels
	}

	if input.Filter != nil {
		filter, err := buildRuleFilter(*input.Filter)
		if err != nil {
			return SendError(c, err)
		}
		if err := notification.ValidateRuleFilter(filter); err != nil {
			return SendError(c, err)
		}
		update["filter"] = filter
	}

	if input.IsActive != nil {
		update["isActive"] = *input.IsActive
	}

	if len(update) == 0 {
		return SendError(c, common.NewError(
			common.ErrCodeValidationInput,
			"Không có trường nào để cập nhật",
			common.StatusBadRequest,
			nil,
		))
	}

	updated, err := h.ruleService.UpdateById(c.Context(), id, update)
	if err != nil {
		return SendError(c, err)
	}

	return SendSuccess(c, updated)
}

// HandleDelete xử lý request xóa rule
func (h *NotificationRuleHandler) HandleDelete(c fiber.Ctx) error {
	var params dto.NotificationRuleIDParam
	if err := ParseRequestParams(c, &params); err != nil {
		return SendError(c, err)
	}

	id, err := ParseObjectID(params.ID)
	if err != nil {
		return SendError(c, err)
	}

	if err := h.ruleService.DeleteById(c.Context(), id); err != nil {
		return SendError(c, err)
	}

	return SendSuccess(c, fiber.Map{"deleted": true})
}

// HandleList liệt kê rule của một tổ chức với phân trang
func (h *NotificationRuleHandler) HandleList(c fiber.Ctx) error {
	page, limit := ParsePagination(c)

	orgIDStr := fiber.Query(c, "organizationId", "")
	if orgIDStr == "" {
		return SendError(c, common.NewError(
			common.ErrCodeValidationInput,
			"Thiếu tham số organizationId",
			common.StatusBadRequest,
			nil,
		))
	}

	orgID, err := ParseObjectID(orgIDStr)
	if err != nil {
		return SendError(c, err)
	}

	result, err := h.ruleService.ListForOrganization(c.Context(), orgID, page, limit)
	if err != nil {
		return SendError(c, err)
	}

	return SendSuccess(c, result)
}

// buildRule chuyển create input thành model NotificationRule
func (h *NotificationRuleHandler) buildRule(input dto.NotificationRuleCreateInput) (models.NotificationRule, error) {
	var zero models.NotificationRule

	recipient, err := buildRecipientDescriptor(input.Recipient)
	if err != nil {
		return zero, err
	}

	filter, err := buildRuleFilter(input.Filter)
	if err != nil {
		return zero, err
	}

	rule := models.NotificationRule{
		Name:      input.Name,
		Recipient: recipient,
		Channels:  input.Channels,
		Filter:    filter,
		IsActive:  true,
	}

	if input.IsActive != nil {
		rule.IsActive = *input.IsActive
	}

	if input.OrganizationID != "" {
		orgID, err := ParseObjectID(input.OrganizationID)
		if err != nil {
			return zero, err
		}
		rule.OrganizationID = &orgID
	}

	return rule, nil
}

// buildRecipientDescriptor chuyển descriptor input thành model
func buildRecipientDescriptor(input dto.RecipientDescriptorInput) (models.RecipientDescriptor, error) {
	var zero models.RecipientDescriptor

	descriptor := models.RecipientDescriptor{
		Type:   input.Type,
		UserID: input.UserID,
	}

	if input.ProjectID != "" {
		projectID, err := ParseObjectID(input.ProjectID)
		if err != nil {
			return zero, err
		}
		descriptor.ProjectID = &projectID
	}

	if input.OrganizationID != "" {
		orgID, err := ParseObjectID(input.OrganizationID)
		if err != nil {
			return zero, err
		}
		descriptor.OrganizationID = &orgID
	}

	return descriptor, nil
}

// buildRuleFilter chuyển filter input thành model
func buildRuleFilter(input dto.RuleFilterInput) (models.RuleFilter, error) {
	var zero models.RuleFilter

	filter := models.RuleFilter{
		Severities:  input.Severities,
		Categories:  input.Categories,
		Disciplines: input.Disciplines,
	}

	if input.OrganizationID != "" {
		orgID, err := ParseObjectID(input.OrganizationID)
		if err != nil {
			return zero, err
		}
		filter.OrganizationID = &orgID
	}

	if input.ProjectID != "" {
		projectID, err := ParseObjectID(input.ProjectID)
		if err != nil {
			return zero, err
		}
		filter.ProjectID = &projectID
	}

	return filter, nil
}
