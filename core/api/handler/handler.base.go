// Package handler chứa các handler xử lý request HTTP của Safety Hub
package handler

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"safety_hub/core/common"
	"safety_hub/core/global"
)

// ParseRequestBody parse và validate dữ liệu từ request body
// Dùng json.Decoder với UseNumber() để xử lý chính xác các số
func ParseRequestBody(c fiber.Ctx, input interface{}) error {
	body := c.Body()
	reader := bytes.NewReader(body)
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}

	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}

	return nil
}

// ParseRequestParams parse và validate các tham số từ URI
func ParseRequestParams(c fiber.Ctx, input interface{}) error {
	if err := c.Bind().URI(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}

	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}

	return nil
}

// ParseObjectID parse một hex string thành ObjectID
func ParseObjectID(value string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationInput,
			"ID không đúng định dạng ObjectId",
			common.StatusBadRequest,
			err,
		)
	}
	return id, nil
}

// ParsePagination đọc page/limit từ query string với giá trị mặc định
func ParsePagination(c fiber.Ctx) (page int64, limit int64) {
	page = int64(fiber.Query(c, "page", 1))
	limit = int64(fiber.Query(c, "limit", 20))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// CurrentUserID lấy Firebase UID từ context (đã được AuthMiddleware set)
func CurrentUserID(c fiber.Ctx) string {
	if uid, ok := c.Locals("user_id").(string); ok {
		return uid
	}
	return ""
}

// SendSuccess trả về response thành công với envelope chuẩn
func SendSuccess(c fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// SendCreated trả về response 201 cho resource vừa tạo
func SendCreated(c fiber.Ctx, data interface{}) error {
	return c.Status(common.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// SendError map một error nội bộ sang HTTP response với envelope chuẩn
func SendError(c fiber.Ctx, err error) error {
	var appErr *common.Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.StatusCode).JSON(fiber.Map{
			"status":  "error",
			"code":    appErr.Code.Code,
			"message": appErr.Message,
		})
	}

	return c.Status(common.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"code":    common.ErrCodeInternalServer.Code,
		"message": common.MsgInternalError,
	})
}
