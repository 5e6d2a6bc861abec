package services_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lapak/internal/services"
	"lapak/pkg/imageopt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{G: 150, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadService_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	svc := services.NewUploadService(dir, imageopt.Resizer{}, zap.NewNop())

	url, err := svc.Save(pngBytes(t, 1000, 500), "image/png")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(stored))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 400, cfg.Height)
}

func TestUploadService_Save_UnoptimizableKeepsBytes(t *testing.T) {
	dir := t.TempDir()
	svc := services.NewUploadService(dir, imageopt.Resizer{}, zap.NewNop())
	data := []byte("GIF89a not really")

	url, err := svc.Save(data, "image/gif")

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".gif"))
	stored, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, data, stored)
}

func TestUploadService_Save_RejectsNonImages(t *testing.T) {
	svc := services.NewUploadService(t.TempDir(), imageopt.Resizer{}, zap.NewNop())

	for _, ct := range []string{"text/plain", "", "image/", "image/../x", "image/svg+xml", "image/x-icon", "text/html"} {
		_, err := svc.Save([]byte("x"), ct)
		assert.ErrorIs(t, err, services.ErrNotAnImage, ct)
	}
}
