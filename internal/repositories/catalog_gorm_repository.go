package repositories

import (
	"context"
	"fmt"

	"lapak/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCatalogRepository is a GORM implementation of CatalogRepository.
type GORMCatalogRepository struct {
	db *gorm.DB
}

// NewGORMCatalogRepository creates a new instance of GORMCatalogRepository.
func NewGORMCatalogRepository(db *gorm.DB) *GORMCatalogRepository {
	return &GORMCatalogRepository{
		db: db,
	}
}

// GetCategories lists every category ordered by name.
func (r *GORMCatalogRepository) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// GetTags lists every tag ordered by name.
func (r *GORMCatalogRepository) GetTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	return tags, nil
}

// Seed inserts the given reference data, leaving rows that already exist untouched.
func (r *GORMCatalogRepository) Seed(ctx context.Context, categories []models.Category, tags []models.Tag) error {
	db := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true})
	if len(categories) > 0 {
		if err := db.Create(&categories).Error; err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
	}
	if len(tags) > 0 {
		if err := db.Create(&tags).Error; err != nil {
			return fmt.Errorf("failed to seed tags: %w", err)
		}
	}
	return nil
}
