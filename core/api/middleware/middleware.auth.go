// package middleware chứa các middleware dùng chung cho API
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"safety_hub/core/common"
	"safety_hub/core/identity"
)

// AuthMiddleware xác thực Firebase ID token từ header Authorization
// Token hợp lệ: lưu Firebase UID vào Locals("user_id") cho handler phía sau
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Thiếu header Authorization")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "Header Authorization phải có dạng: Bearer <token>")
		}

		token, err := identity.VerifyIDToken(c.Context(), parts[1])
		if err != nil {
			return unauthorized(c, "Token không hợp lệ hoặc đã hết hạn")
		}

		c.Locals("user_id", token.UID)
		return c.Next()
	}
}

func unauthorized(c fiber.Ctx, message string) error {
	return c.Status(common.StatusUnauthorized).JSON(fiber.Map{
		"status":  "error",
		"code":    common.ErrCodeAuthToken.Code,
		"message": message,
	})
}
