package handlers

import (
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CatalogHandler serves categories and tags.
type CatalogHandler struct {
	service *services.CatalogService
	log     *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the reference data routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/categories", h.HandleGetCategories)
	router.Get("/tags", h.HandleGetTags)
}

// HandleGetCategories lists all categories.
func (h *CatalogHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories(c.UserContext())
	if err != nil {
		return respondError(c, h.log, "Could not retrieve categories", err)
	}
	return c.JSON(categories)
}

// HandleGetTags lists all tags.
func (h *CatalogHandler) HandleGetTags(c *fiber.Ctx) error {
	tags, err := h.service.GetAllTags(c.UserContext())
	if err != nil {
		return respondError(c, h.log, "Could not retrieve tags", err)
	}
	return c.JSON(tags)
}
