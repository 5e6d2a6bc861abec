package repositories

import (
	"context"

	"gorm.io/gorm"
)

// GORMStore is the Store backed by a *gorm.DB, which is either the shared
// connection pool or an open transaction.
type GORMStore struct {
	db *gorm.DB
}

// NewGORMStore creates a Store over the given connection pool.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

func (s *GORMStore) Products() ProductRepository {
	return NewGORMProductRepository(s.db)
}

func (s *GORMStore) Associations() AssociationStore {
	return NewGORMAssociationStore(s.db)
}

func (s *GORMStore) Notifications() NotificationRepository {
	return NewGORMNotificationRepository(s.db)
}

func (s *GORMStore) Catalog() CatalogRepository {
	return NewGORMCatalogRepository(s.db)
}

// WithTx implements Store. Nested calls reuse gorm's savepoint handling.
func (s *GORMStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GORMStore{db: tx})
	})
}
