package handlers

import (
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	log     *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
	productRoutes.Post("/:id/draft", h.HandleSaveDraft)
	productRoutes.Post("/:id/submit", h.HandleSubmitProduct)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return respondError(c, h.log, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, "Product not found", err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new draft product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.CreateProduct(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct overwrites an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.UpdateProduct(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, "Could not update product", err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product and everything attached to it.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}

// HandleSaveDraft puts a product back into draft.
func (h *ProductHandler) HandleSaveDraft(c *fiber.Ctx) error {
	if err := h.service.SaveDraft(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, "Could not save draft", err)
	}
	return c.JSON(fiber.Map{
		"message": "Draft saved successfully",
	})
}

// HandleSubmitProduct submits a product for verification and returns it
// in whatever state verification left it.
func (h *ProductHandler) HandleSubmitProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.SubmitProduct(c.UserContext(), id); err != nil {
		return respondError(c, h.log, "Could not submit product", err)
	}

	resp := fiber.Map{
		"message": "Product submitted successfully",
	}
	if product, err := h.service.GetProductByID(c.UserContext(), id); err == nil {
		resp["product"] = product
	}
	return c.JSON(resp)
}
