package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"safety_hub/core/api/dto"
	"safety_hub/core/api/services"
	"safety_hub/core/common"
)

// NotificationHandler xử lý feed thông báo in-app của user đang đăng nhập
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler tạo mới NotificationHandler
func NewNotificationHandler() (*NotificationHandler, error) {
	notificationService, err := services.NewNotificationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create notification service: %w", err)
	}

	return &NotificationHandler{
		notificationService: notificationService,
	}, nil
}

// HandleList liệt kê thông báo của user đang đăng nhập, mới nhất trước
func (h *NotificationHandler) HandleList(c fiber.Ctx) error {
	userID := CurrentUserID(c)
	if userID == "" {
		return SendError(c, common.NewError(common.ErrCodeAuth, common.MsgUnauthorized, common.StatusUnauthorized, nil))
	}

	page, limit := ParsePagination(c)

	result, err := h.notificationService.ListForUser(c.Context(), userID, page, limit)
	if err != nil {
		return SendError(c, err)
	}

	return SendSuccess(c, result)
}

// HandleUnreadCount trả về số thông báo chưa đọc (badge trên UI)
func (h *NotificationHandler) HandleUnreadCount(c fiber.Ctx) error {
	userID := CurrentUserID(c)
	if userID == "" {
		return SendError(c, common.NewError(common.ErrCodeAuth, common.MsgUnauthorized, common.StatusUnauthorized, nil))
	}

	count, err := h.notificationService.CountUnread(c.Context(), userID)
	if err != nil {
		return SendError(c, err)
	}

	return SendSuccess(c, fiber.Map{"unread": count})
}

// HandleMarkRead đánh dấu một thông báo là đã đọc
func (h *NotificationHandler) HandleMarkRead(c fiber.Ctx) error {
	userID := CurrentUserID(c)
	if userID == "" {
		return SendError(c, common.NewError(common.ErrCodeAuth, common.MsgUnauthorized, common.StatusUnauthorized, nil))
	}

	var params dto.NotificationIDParam
	if err := ParseRequestParams(c, &params); err != nil {
		return SendError(c, err)
	}

	id, err := ParseObjectID(params.ID)
	if err != nil {
		return SendError(c, err)
	}

	updated, err := h.notificationService.MarkRead(c.Context(), id, userID)
	if err != nil {
		return SendError(c, err)
	}

	return SendSuccess(c, updated)
}

// HandleMarkAllRead đánh dấu tất cả thông báo của user là đã đọc
func (h *NotificationHandler) HandleMarkAllRead(c fiber.Ctx) error {
	userID := CurrentUserID(c)
	if userID == "" {
		return SendError(c, common.NewError(common.ErrCodeAuth, common.MsgUnauthorized, common.StatusUnauthorized, nil))
	}

	modified, err := h.notificationService.MarkAllRead(c.Context(), userID)
	if err != nil {
		return SendError(c, err)
	}

	return SendSuccess(c, fiber.Map{"marked": modified})
}
