package repositories

import (
	"context"
	"fmt"

	"lapak/internal/models"

	"gorm.io/gorm"
)

// GORMAssociationStore is a GORM implementation of AssociationStore. It is
// meant to be used through a transactional Store so that the delete and the
// insert of a replace are committed together.
type GORMAssociationStore struct {
	db *gorm.DB
}

// NewGORMAssociationStore creates a new instance of GORMAssociationStore.
func NewGORMAssociationStore(db *gorm.DB) *GORMAssociationStore {
	return &GORMAssociationStore{
		db: db,
	}
}

// ReplaceCategories swaps the full set of category links of a product.
func (s *GORMAssociationStore) ReplaceCategories(ctx context.Context, productID string, categoryIDs []string) error {
	ids := dedupe(categoryIDs)
	if err := s.ensureExist(ctx, &models.Category{}, ids); err != nil {
		return fmt.Errorf("failed to replace categories of product %s: %w", productID, err)
	}

	db := s.db.WithContext(ctx)
	if err := db.Where("product_id = ?", productID).Delete(&models.ProductCategory{}).Error; err != nil {
		return fmt.Errorf("failed to clear categories of product %s: %w", productID, translate(err))
	}
	if len(ids) == 0 {
		return nil
	}

	links := make([]models.ProductCategory, 0, len(ids))
	for _, id := range ids {
		links = append(links, models.ProductCategory{ProductID: productID, CategoryID: id})
	}
	if err := db.Create(&links).Error; err != nil {
		return fmt.Errorf("failed to link categories to product %s: %w", productID, translate(err))
	}
	return nil
}

// ReplaceTags swaps the full set of tag links of a product.
func (s *GORMAssociationStore) ReplaceTags(ctx context.Context, productID string, tagIDs []string) error {
	ids := dedupe(tagIDs)
	if err := s.ensureExist(ctx, &models.Tag{}, ids); err != nil {
		return fmt.Errorf("failed to replace tags of product %s: %w", productID, err)
	}

	db := s.db.WithContext(ctx)
	if err := db.Where("product_id = ?", productID).Delete(&models.ProductTag{}).Error; err != nil {
		return fmt.Errorf("failed to clear tags of product %s: %w", productID, translate(err))
	}
	if len(ids) == 0 {
		return nil
	}

	links := make([]models.ProductTag, 0, len(ids))
	for _, id := range ids {
		links = append(links, models.ProductTag{ProductID: productID, TagID: id})
	}
	if err := db.Create(&links).Error; err != nil {
		return fmt.Errorf("failed to link tags to product %s: %w", productID, translate(err))
	}
	return nil
}

// DeleteAllLinks removes the category links and then the tag links of a product.
// Calling it on a product without links is not an error.
func (s *GORMAssociationStore) DeleteAllLinks(ctx context.Context, productID string) error {
	db := s.db.WithContext(ctx)
	if err := db.Where("product_id = ?", productID).Delete(&models.ProductCategory{}).Error; err != nil {
		return fmt.Errorf("failed to delete category links of product %s: %w", productID, translate(err))
	}
	if err := db.Where("product_id = ?", productID).Delete(&models.ProductTag{}).Error; err != nil {
		return fmt.Errorf("failed to delete tag links of product %s: %w", productID, translate(err))
	}
	return nil
}

// CategoryIDs lists the categories a product is linked to.
func (s *GORMAssociationStore) CategoryIDs(ctx context.Context, productID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.ProductCategory{}).
		Where("product_id = ?", productID).
		Order("category_id").
		Pluck("category_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories of product %s: %w", productID, err)
	}
	return ids, nil
}

// TagIDs lists the tags a product is linked to.
func (s *GORMAssociationStore) TagIDs(ctx context.Context, productID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.ProductTag{}).
		Where("product_id = ?", productID).
		Order("tag_id").
		Pluck("tag_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tags of product %s: %w", productID, err)
	}
	return ids, nil
}

// CountCategories counts the category links of a product.
func (s *GORMAssociationStore) CountCategories(ctx context.Context, productID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.ProductCategory{}).Where("product_id = ?", productID).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count categories of product %s: %w", productID, err)
	}
	return n, nil
}

// CountTags counts the tag links of a product.
func (s *GORMAssociationStore) CountTags(ctx context.Context, productID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.ProductTag{}).Where("product_id = ?", productID).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count tags of product %s: %w", productID, err)
	}
	return n, nil
}

// ensureExist fails with ErrConstraintViolation unless every id names a row of model.
// The foreign keys enforce the same rule; checking first gives a stable error
// on stores that do not report foreign key failures distinctly.
func (s *GORMAssociationStore) ensureExist(ctx context.Context, model interface{}, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(model).Where("id IN ?", ids).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to look up referenced ids: %w", err)
	}
	if n != int64(len(ids)) {
		return fmt.Errorf("%d of %d referenced ids do not exist: %w", int64(len(ids))-n, len(ids), ErrConstraintViolation)
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
