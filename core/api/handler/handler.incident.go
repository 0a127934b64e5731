package handler

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"safety_hub/config"
	"safety_hub/core/api/dto"
	models "safety_hub/core/api/models/mongodb"
	"safety_hub/core/api/services"
	"safety_hub/core/common"
	"safety_hub/core/notification"
)

// IncidentHandler xử lý các request liên quan đến sự cố an toàn
// Tạo incident xong sẽ trigger notification pipeline trên goroutine riêng:
// response trả về ngay, kết quả gửi thông báo không ảnh hưởng tới việc tạo incident
type IncidentHandler struct {
	incidentService *services.IncidentService
	notifier        *notification.Notifier
}

// NewIncidentHandler tạo mới IncidentHandler
func NewIncidentHandler(cfg *config.Configuration) (*IncidentHandler, error) {
	incidentService, err := services.NewIncidentService()
	if err != nil {
		return nil, fmt.Errorf("failed to create incident service: %w", err)
	}

	notifier, err := notification.NewNotifier(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create notifier: %w", err)
	}

	return &IncidentHandler{
		incidentService: incidentService,
		notifier:        notifier,
	}, nil
}

// HandleCreate xử lý request báo cáo sự cố mới
func (h *IncidentHandler) HandleCreate(c fiber.Ctx) error {
	var input dto.IncidentCreateInput
	if err := ParseRequestBody(c, &input); err != nil {
		return SendError(c, err)
	}

	incident := models.Incident{
		Title:       input.Title,
		Description: input.Description,
		Severity:    input.Severity,
		Category:    input.Category,
		Discipline:  input.Discipline,
		Location:    input.Location,
		ReportedBy:  CurrentUserID(c),
		Status:      models.IncidentStatusOpen,
	}

	if input.OrganizationID != "" {
		orgID, err := ParseObjectID(input.OrganizationID)
		if err != nil {
			return SendError(c, err)
		}
		incident.OrganizationID = &orgID
	}

	if input.ProjectID != "" {
		projectID, err := ParseObjectID(input.ProjectID)
		if err != nil {
			return SendError(c, err)
		}
		incident.ProjectID = &projectID
	}

	created, err := h.incidentService.Create(c.Context(), incident)
	if err != nil {
		return SendError(c, err)
	}

	// Detach pipeline thông báo khỏi request: context của fiber chết khi response
	// trả về nên dùng context mới. NotifyIncident tự nuốt mọi lỗi và panic.
	go h.notifier.NotifyIncident(context.Background(), created)

	return SendCreated(c, created)
}

// HandleFindById trả về chi tiết một sự cố
func (h *IncidentHandler) HandleFindById(c fiber.Ctx) error {
	var params dto.IncidentIDParam
	if err := ParseRequestParams(c, &params); err != nil {
		return SendError(c, err)
	}

	id, err := ParseObjectID(params.ID)
	if err != nil {
		return SendError(c, err)
	}

	incident, err := h.incidentService.FindOneById(c.Context(), id)
	if err != nil {
		return SendError(c, err)
	}

	return SendSuccess(c, incident)
}

// HandleList liệt kê sự cố của một tổ chức với phân trang
func (h *IncidentHandler) HandleList(c fiber.Ctx) error {
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

	result, err := h.incidentService.ListForOrganization(c.Context(), orgID, page, limit)
	if err != nil {
		return SendError(c, err)
	}

	return SendSuccess(c, result)
}

// HandleUpdateStatus xử lý request đổi trạng thái sự cố
func (h *IncidentHandler) HandleUpdateStatus(c fiber.Ctx) error {
	var params dto.IncidentIDParam
	if err := ParseRequestParams(c, &params); err != nil {
		return SendError(c, err)
	}

	var input dto.IncidentStatusUpdateInput
	if err := ParseRequestBody(c, &input); err != nil {
		return SendError(c, err)
	}

	id, err := ParseObjectID(params.ID)
	if err != nil {
		return SendError(c, err)
	}

	updated, err := h.incidentService.UpdateStatus(c.Context(), id, input.Status)
	if err != nil {
		return SendError(c, err)
	}

	return SendSuccess(c, updated)
}
