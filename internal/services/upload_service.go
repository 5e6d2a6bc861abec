package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lapak/pkg/imageopt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotAnImage is returned for uploads that do not declare a supported
// raster image type.
var ErrNotAnImage = errors.New("upload is not an image")

// rasterTypes are the image subtypes stored as uploads. Vector and markup
// formats such as svg+xml are refused since they are served back inline.
var rasterTypes = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// UploadService stores optimized product images on local disk.
type UploadService struct {
	dir       string
	optimizer imageopt.Optimizer
	log       *zap.Logger
}

// NewUploadService creates a new UploadService writing into dir.
func NewUploadService(dir string, optimizer imageopt.Optimizer, log *zap.Logger) *UploadService {
	return &UploadService{
		dir:       dir,
		optimizer: optimizer,
		log:       log,
	}
}

// Save optimizes the image and writes it under a fresh name. It returns the
// public URL of the stored file.
func (s *UploadService) Save(data []byte, contentType string) (string, error) {
	subtype, ok := imageSubtype(contentType)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotAnImage, contentType)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	optimized := s.optimizer.Optimize(data, subtype)
	name := uuid.New().String() + "." + subtype
	if err := os.WriteFile(filepath.Join(s.dir, name), optimized, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	s.log.Info("image uploaded",
		zap.String("file", name),
		zap.Int("original_bytes", len(data)),
		zap.Int("stored_bytes", len(optimized)))
	return "/uploads/" + name, nil
}

func imageSubtype(contentType string) (string, bool) {
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	subtype, found := strings.CutPrefix(mediaType, "image/")
	if !found || !rasterTypes[subtype] {
		return "", false
	}
	return subtype, true
}
