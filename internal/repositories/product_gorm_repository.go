package repositories

import (
	"context"
	"fmt"
	"time"

	"lapak/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, translate(err))
	}
	return &product, nil
}

// Create inserts a new product with an unset verification status.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.VerificationStatus = models.StatusUnverified
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", translate(err))
	}
	return nil
}

// Update overwrites the descriptive fields of an existing product and
// refreshes its update timestamp. The draft flag and verification status
// have their own setters. Save is avoided because it inserts missing rows.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"vendor_id":   product.VendorID,
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"image_url":   product.ImageURL,
			"updated_at":  now,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for update: %w", product.ID, ErrNotFound)
	}
	product.UpdatedAt = now
	return nil
}

// Delete deletes a product row by its ID. Dependent rows are the caller's concern.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// SetDraft flips the draft flag of a product.
func (r *GORMProductRepository) SetDraft(ctx context.Context, id string, isDraft bool) error {
	return r.updateColumn(ctx, id, "is_draft", isDraft)
}

// SetVerificationStatus records the verification outcome of a product.
func (r *GORMProductRepository) SetVerificationStatus(ctx context.Context, id string, status models.VerificationStatus) error {
	return r.updateColumn(ctx, id, "verification_status", status)
}

func (r *GORMProductRepository) updateColumn(ctx context.Context, id, column string, value interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{column: value, "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("failed to set %s on product %s: %w", column, id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found: %w", id, ErrNotFound)
	}
	return nil
}
