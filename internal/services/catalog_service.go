package services

import (
	"context"

	"lapak/internal/models"
	"lapak/internal/repositories"
)

// CatalogService serves the category and tag reference data.
type CatalogService struct {
	repo repositories.CatalogRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.CatalogRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// GetAllCategories retrieves all categories.
func (s *CatalogService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.GetCategories(ctx)
}

// GetAllTags retrieves all tags.
func (s *CatalogService) GetAllTags(ctx context.Context) ([]models.Tag, error) {
	return s.repo.GetTags(ctx)
}
