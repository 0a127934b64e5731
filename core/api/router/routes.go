// package router đăng ký toàn bộ route HTTP của Safety Hub
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"safety_hub/config"
	"safety_hub/core/api/handler"
	"safety_hub/core/api/middleware"
)

// ⚠️ LƯU Ý FIBER V3: không đăng ký middleware trực tiếp trong route
// (router.Get(path, middleware, handler) khiến middleware KHÔNG được gọi).
// Phải tạo group rồi dùng .Use() như registerRouteWithMiddleware bên dưới.

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// registerRouteWithMiddleware đăng ký route với middleware qua group + .Use()
func registerRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, h fiber.Handler) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case "GET":
		routeGroup.Get(path, h)
	case "POST":
		routeGroup.Post(path, h)
	case "PUT":
		routeGroup.Put(path, h)
	case "PATCH":
		routeGroup.Patch(path, h)
	case "DELETE":
		routeGroup.Delete(path, h)
	}
}

// SetupRoutes khởi tạo các handler và đăng ký toàn bộ route
func SetupRoutes(app *fiber.App, cfg *config.Configuration) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)

	incidentHandler, err := handler.NewIncidentHandler(cfg)
	if err != nil {
		return fmt.Errorf("failed to create incident handler: %w", err)
	}

	ruleHandler, err := handler.NewNotificationRuleHandler()
	if err != nil {
		return fmt.Errorf("failed to create notification rule handler: %w", err)
	}

	notificationHandler, err := handler.NewNotificationHandler()
	if err != nil {
		return fmt.Errorf("failed to create notification handler: %w", err)
	}

	contactHandler, err := handler.NewRecipientContactHandler()
	if err != nil {
		return fmt.Errorf("failed to create recipient contact handler: %w", err)
	}

	auth := []fiber.Handler{middleware.AuthMiddleware()}

	// Health check (không cần auth)
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Incidents
	registerRouteWithMiddleware(v1, "/incidents", "POST", "/", auth, incidentHandler.HandleCreate)
	registerRouteWithMiddleware(v1, "/incidents", "GET", "/", auth, incidentHandler.HandleList)
	registerRouteWithMiddleware(v1, "/incidents", "GET", "/:id", auth, incidentHandler.HandleFindById)
	registerRouteWithMiddleware(v1, "/incidents", "PATCH", "/:id/status", auth, incidentHandler.HandleUpdateStatus)

	// Notification rules (màn hình quản trị)
	registerRouteWithMiddleware(v1, "/notification-rules", "POST", "/", auth, ruleHandler.HandleCreate)
	registerRouteWithMiddleware(v1, "/notification-rules", "GET", "/", auth, ruleHandler.HandleList)
	registerRouteWithMiddleware(v1, "/notification-rules", "PUT", "/:id", auth, ruleHandler.HandleUpdate)
	registerRouteWithMiddleware(v1, "/notification-rules", "DELETE", "/:id", auth, ruleHandler.HandleDelete)

	// Notification feed của user đang đăng nhập
	registerRouteWithMiddleware(v1, "/notifications", "GET", "/", auth, notificationHandler.HandleList)
	registerRouteWithMiddleware(v1, "/notifications", "GET", "/unread-count", auth, notificationHandler.HandleUnreadCount)
	registerRouteWithMiddleware(v1, "/notifications", "PATCH", "/:id/read", auth, notificationHandler.HandleMarkRead)
	registerRouteWithMiddleware(v1, "/notifications", "PATCH", "/read-all", auth, notificationHandler.HandleMarkAllRead)

	// Recipient contacts (số điện thoại override cho WhatsApp)
	registerRouteWithMiddleware(v1, "/recipient-contacts", "POST", "/", auth, contactHandler.HandleSet)
	registerRouteWithMiddleware(v1, "/recipient-contacts", "DELETE", "/:userId", auth, contactHandler.HandleRemove)

	return nil
}
