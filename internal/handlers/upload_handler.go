package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"sort"
	"strings"

	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UploadHandler accepts product images.
type UploadHandler struct {
	service *services.UploadService
	log     *zap.Logger
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(service *services.UploadService, log *zap.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the upload route with the Fiber app.
func (h *UploadHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/upload", h.HandleUpload)
}

// HandleUpload stores the first image part of a multipart request, whatever
// its field name.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	header := firstImage(form)
	if header == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "No image file found in the request",
		})
	}

	file, err := header.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	url, err := h.service.Save(data, header.Header.Get(fiber.HeaderContentType))
	if errors.Is(err, services.ErrNotAnImage) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	if err != nil {
		h.log.Error("failed to store upload", zap.String("filename", header.Filename), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"image_url": url,
	})
}

func firstImage(form *multipart.Form) *multipart.FileHeader {
	fields := make([]string, 0, len(form.File))
	for name := range form.File {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	for _, name := range fields {
		for _, fh := range form.File[name] {
			if strings.HasPrefix(strings.ToLower(fh.Header.Get(fiber.HeaderContentType)), "image/") {
				return fh
			}
		}
	}
	return nil
}
