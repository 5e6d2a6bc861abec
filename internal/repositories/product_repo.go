package repositories

import (
	"context"

	"lapak/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	SetDraft(ctx context.Context, id string, isDraft bool) error
	SetVerificationStatus(ctx context.Context, id string, status models.VerificationStatus) error
}

// AssociationStore owns the category and tag links of products.
type AssociationStore interface {
	ReplaceCategories(ctx context.Context, productID string, categoryIDs []string) error
	ReplaceTags(ctx context.Context, productID string, tagIDs []string) error
	DeleteAllLinks(ctx context.Context, productID string) error
	CategoryIDs(ctx context.Context, productID string) ([]string, error)
	TagIDs(ctx context.Context, productID string) ([]string, error)
	CountCategories(ctx context.Context, productID string) (int64, error)
	CountTags(ctx context.Context, productID string) (int64, error)
}

// NotificationRepository defines the interface for notification data access.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByVendor(ctx context.Context, vendorID string) ([]models.Notification, error)
	DeleteByProduct(ctx context.Context, productID string) (int64, error)
}

// CatalogRepository serves the category and tag reference data.
type CatalogRepository interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetTags(ctx context.Context) ([]models.Tag, error)
	Seed(ctx context.Context, categories []models.Category, tags []models.Tag) error
}

// Store hands out repositories bound either to the connection pool or,
// inside WithTx, to a single transaction.
type Store interface {
	Products() ProductRepository
	Associations() AssociationStore
	Notifications() NotificationRepository
	Catalog() CatalogRepository

	// WithTx runs fn against a Store bound to one transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}
