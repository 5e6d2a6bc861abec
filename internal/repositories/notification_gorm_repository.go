package repositories

import (
	"context"
	"fmt"

	"lapak/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMNotificationRepository is a GORM implementation of NotificationRepository.
type GORMNotificationRepository struct {
	db *gorm.DB
}

// NewGORMNotificationRepository creates a new instance of GORMNotificationRepository.
func NewGORMNotificationRepository(db *gorm.DB) *GORMNotificationRepository {
	return &GORMNotificationRepository{
		db: db,
	}
}

// Create stores a new, unread notification.
func (r *GORMNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	notification.IsRead = false
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", translate(err))
	}
	return nil
}

// GetByVendor lists the notifications of a vendor, newest first.
func (r *GORMNotificationRepository) GetByVendor(ctx context.Context, vendorID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications of vendor %s: %w", vendorID, err)
	}
	return notifications, nil
}

// DeleteByProduct removes every notification referencing a product.
func (r *GORMNotificationRepository) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&models.Notification{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete notifications of product %s: %w", productID, translate(res.Error))
	}
	return res.RowsAffected, nil
}
