package handlers_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"lapak/internal/config"
	"lapak/internal/database/databasetest"
	"lapak/internal/metrics"
	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/internal/server"
	"lapak/internal/services"
	"lapak/internal/verification"
	"lapak/pkg/imageopt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	handcrafts = "11111111-1111-1111-1111-111111111111"
	handmade   = "77777777-7777-7777-7777-777777777777"
)

// setupApp wires the full HTTP stack over an in-memory SQLite database.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		ServiceName: "lapak-test",
		Upload:      config.UploadConfig{Dir: t.TempDir(), MaxBytes: 4 << 20},
	}
	log := zap.NewNop()
	m := metrics.New("test")
	store := repositories.NewGORMStore(databasetest.New(t))

	notifications := services.NewNotificationService(store.Notifications(), nil, m, log)
	return server.New(server.Deps{
		Config:        cfg,
		Log:           log,
		Metrics:       m,
		Products:      services.NewProductService(store, notifications, m, log),
		Catalog:       services.NewCatalogService(store.Catalog()),
		Notifications: notifications,
		Uploads:       services.NewUploadService(cfg.Upload.Dir, imageopt.Resizer{}, log),
	})
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func productBody(price interface{}) map[string]interface{} {
	return map[string]interface{}{
		"vendor_id":    "vendor-1",
		"name":         "Batik scarf",
		"description":  "Hand-drawn batik on silk",
		"price":        price,
		"image_url":    "/uploads/scarf.jpeg",
		"is_draft":     false,
		"category_ids": []string{handcrafts},
		"tag_ids":      []string{handmade},
	}
}

func TestReferenceDataEndpoints(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/categories", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var categories []models.Category
	decode(t, resp, &categories)
	assert.Len(t, categories, 6)

	resp = doJSON(t, app, http.MethodGet, "/api/tags", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var tags []models.Tag
	decode(t, resp, &tags)
	assert.Len(t, tags, 8)
}

func TestProductLifecycleEndpoints(t *testing.T) {
	app := setupApp(t)

	// --- Create ---
	resp := doJSON(t, app, http.MethodPost, "/api/products", productBody(10000))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created services.ProductView
	decode(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.StateDraft, created.State)
	assert.Equal(t, []string{handcrafts}, created.CategoryIDs)

	// --- Get ---
	resp = doJSON(t, app, http.MethodGet, "/api/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// --- Submit ---
	resp = doJSON(t, app, http.MethodPost, "/api/products/"+created.ID+"/submit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var submitResp struct {
		Message string               `json:"message"`
		Product services.ProductView `json:"product"`
	}
	decode(t, resp, &submitResp)
	assert.Equal(t, "Product submitted successfully", submitResp.Message)
	assert.Equal(t, models.StateVerified, submitResp.Product.State)

	// --- Notifications ---
	resp = doJSON(t, app, http.MethodGet, "/api/vendors/vendor-1/notifications", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var notes []models.Notification
	decode(t, resp, &notes)
	require.Len(t, notes, 1)
	assert.Equal(t, verification.VerifiedMessage, notes[0].Message)

	// --- Draft ---
	resp = doJSON(t, app, http.MethodPost, "/api/products/"+created.ID+"/draft", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// --- Update ---
	update := productBody("250.00")
	update["name"] = "Batik scarf, small"
	resp = doJSON(t, app, http.MethodPut, "/api/products/"+created.ID, update)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated services.ProductView
	decode(t, resp, &updated)
	assert.Equal(t, "Batik scarf, small", updated.Name)
	assert.Equal(t, models.StateDraft, updated.State)

	// --- Delete ---
	resp = doJSON(t, app, http.MethodDelete, "/api/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleteResp map[string]string
	decode(t, resp, &deleteResp)
	assert.Contains(t, deleteResp["message"], "deleted successfully")

	resp = doJSON(t, app, http.MethodGet, "/api/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/vendors/vendor-1/notifications", nil)
	decode(t, resp, &notes)
	assert.Empty(t, notes)
}

func TestProductEndpoints_Errors(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]interface{}{"name": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var validation struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	decode(t, resp, &validation)
	assert.Equal(t, "Validation failed", validation.Message)
	assert.Contains(t, validation.Errors, "vendor_id")

	body := productBody(1000)
	body["tag_ids"] = []string{"no-such-tag"}
	resp = doJSON(t, app, http.MethodPost, "/api/products", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	raw, err := app.Test(req, -1)
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)

	for _, path := range []string{"/api/products/missing/submit", "/api/products/missing/draft"} {
		resp = doJSON(t, app, http.MethodPost, path, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
	resp = doJSON(t, app, http.MethodPut, "/api/products/missing", productBody(1000))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = doJSON(t, app, http.MethodDelete, "/api/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func multipartRequest(t *testing.T, field, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="upload.bin"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadEndpoint(t *testing.T) {
	app := setupApp(t)

	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	img.Set(1, 1, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	resp, err := app.Test(multipartRequest(t, "file", "image/png", buf.Bytes()), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var uploaded struct {
		Success  bool   `json:"success"`
		ImageURL string `json:"image_url"`
	}
	decode(t, resp, &uploaded)
	assert.True(t, uploaded.Success)
	assert.Regexp(t, `^/uploads/[0-9a-f-]{36}\.png$`, uploaded.ImageURL)

	// the stored file is served statically
	served := doJSON(t, app, http.MethodGet, uploaded.ImageURL, nil)
	assert.Equal(t, http.StatusOK, served.StatusCode)
}

func TestUploadEndpoint_NoImage(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(multipartRequest(t, "file", "text/plain", []byte("hello")), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "No image file found in the request", body["error"])
}

func TestUploadEndpoint_RejectsSVG(t *testing.T) {
	app := setupApp(t)

	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`)
	resp, err := app.Test(multipartRequest(t, "file", "image/svg+xml", svg), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "not an image")
}

func TestHealthAndMetrics(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]string
	decode(t, resp, &health)
	assert.Equal(t, "healthy", health["status"])

	resp = doJSON(t, app, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "test_http_requests_total")
}
