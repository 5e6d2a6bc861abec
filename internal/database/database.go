package database

import (
	"context"
	"fmt"

	"lapak/internal/config"
	"lapak/internal/models"
	"lapak/internal/repositories"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database and applies the pool settings.
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{DSN: cfg.DSN})
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(parseLogLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return db, nil
}

// Migrate creates the tables the service relies on.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	return nil
}

// SeedReferenceData inserts the default categories and tags if they are missing.
func SeedReferenceData(ctx context.Context, store repositories.Store) error {
	return store.Catalog().Seed(ctx, DefaultCategories(), DefaultTags())
}

// DefaultCategories are the categories every installation starts with.
func DefaultCategories() []models.Category {
	return []models.Category{
		{ID: "11111111-1111-1111-1111-111111111111", Name: "Handcrafts"},
		{ID: "22222222-2222-2222-2222-222222222222", Name: "Food & Drinks"},
		{ID: "33333333-3333-3333-3333-333333333333", Name: "Clothing & Fashion"},
		{ID: "44444444-4444-4444-4444-444444444444", Name: "Home & Decor"},
		{ID: "55555555-5555-5555-5555-555555555555", Name: "Art & Collectibles"},
		{ID: "66666666-6666-6666-6666-666666666666", Name: "Agriculture"},
	}
}

// DefaultTags are the tags every installation starts with.
func DefaultTags() []models.Tag {
	return []models.Tag{
		{ID: "77777777-7777-7777-7777-777777777777", Name: "Handmade"},
		{ID: "88888888-8888-8888-8888-888888888888", Name: "Organic"},
		{ID: "99999999-9999-9999-9999-999999999999", Name: "Fair Trade"},
		{ID: "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa", Name: "Traditional"},
		{ID: "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb", Name: "Sustainable"},
		{ID: "cccccccc-cccc-cccc-cccc-cccccccccccc", Name: "Eco-friendly"},
		{ID: "dddddddd-dddd-dddd-dddd-dddddddddddd", Name: "Vegan"},
		{ID: "eeeeeeee-eeee-eeee-eeee-eeeeeeeeeeee", Name: "Natural"},
	}
}

func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
