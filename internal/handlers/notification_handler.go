package handlers

import (
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// NotificationHandler serves vendor notifications.
type NotificationHandler struct {
	service *services.NotificationService
	log     *zap.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service *services.NotificationService, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the notification routes with the Fiber app.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/vendors/:id/notifications", h.HandleGetVendorNotifications)
}

// HandleGetVendorNotifications lists a vendor's notifications, newest first.
func (h *NotificationHandler) HandleGetVendorNotifications(c *fiber.Ctx) error {
	notifications, err := h.service.GetVendorNotifications(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, "Could not retrieve notifications", err)
	}
	return c.JSON(notifications)
}
