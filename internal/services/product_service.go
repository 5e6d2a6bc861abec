package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"lapak/internal/metrics"
	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/internal/verification"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Notifier records a verification outcome for a vendor.
type Notifier interface {
	Notify(ctx context.Context, vendorID, productID, message string) error
}

// ProductView is a product together with its derived state and links.
type ProductView struct {
	models.Product
	State       models.LifecycleState `json:"state"`
	CategoryIDs []string              `json:"category_ids"`
	TagIDs      []string              `json:"tag_ids"`
}

// ProductService drives the product lifecycle: every multi-table write runs
// in one transaction, and submission is followed by verification.
type ProductService struct {
	store    repositories.Store
	notifier Notifier
	validate *validator.Validate
	metrics  *metrics.Metrics
	log      *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(store repositories.Store, notifier Notifier, m *metrics.Metrics, log *zap.Logger) *ProductService {
	return &ProductService{
		store:    store,
		notifier: notifier,
		validate: newValidator(),
		metrics:  m,
		log:      log,
	}
}

// GetAllProducts retrieves all products, newest first.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]ProductView, error) {
	products, err := s.store.Products().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})

	views := make([]ProductView, 0, len(products))
	for i := range products {
		view, err := s.view(ctx, s.store, &products[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*ProductView, error) {
	product, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, s.store, product)
}

// CreateProduct stores a new draft product and its links in one transaction.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (view *ProductView, err error) {
	track := s.metrics.TrackOperation("create")
	defer func() { track(err) }()

	if err := validateInput(s.validate, &in); err != nil {
		return nil, err
	}

	product := &models.Product{}
	in.apply(product)
	product.IsDraft = true

	err = s.store.WithTx(ctx, func(tx repositories.Store) error {
		if err := tx.Products().Create(ctx, product); err != nil {
			return err
		}
		if err := tx.Associations().ReplaceCategories(ctx, product.ID, in.Categories()); err != nil {
			return err
		}
		if err := tx.Associations().ReplaceTags(ctx, product.ID, in.TagIDs); err != nil {
			return err
		}
		view, err = s.view(ctx, tx, product)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.log.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("vendor_id", product.VendorID))
	return view, nil
}

// UpdateProduct overwrites a product and replaces its links in one transaction.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, in ProductInput) (view *ProductView, err error) {
	track := s.metrics.TrackOperation("update")
	defer func() { track(err) }()

	if err := validateInput(s.validate, &in); err != nil {
		return nil, err
	}

	err = s.store.WithTx(ctx, func(tx repositories.Store) error {
		product := &models.Product{ID: id}
		in.apply(product)
		if err := tx.Products().Update(ctx, product); err != nil {
			return err
		}
		if err := tx.Associations().ReplaceCategories(ctx, id, in.Categories()); err != nil {
			return err
		}
		if err := tx.Associations().ReplaceTags(ctx, id, in.TagIDs); err != nil {
			return err
		}
		stored, err := tx.Products().GetByID(ctx, id)
		if err != nil {
			return err
		}
		view, err = s.view(ctx, tx, stored)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}

	s.log.Info("product updated", zap.String("product_id", id))
	return view, nil
}

// DeleteProduct removes a product with its links and notifications in one transaction.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (err error) {
	track := s.metrics.TrackOperation("delete")
	defer func() { track(err) }()

	var removed int64
	err = s.store.WithTx(ctx, func(tx repositories.Store) error {
		if err := tx.Associations().DeleteAllLinks(ctx, id); err != nil {
			return err
		}
		n, err := tx.Notifications().DeleteByProduct(ctx, id)
		if err != nil {
			return err
		}
		removed = n
		return tx.Products().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}

	s.log.Info("product deleted",
		zap.String("product_id", id),
		zap.Int64("notifications_removed", removed))
	return nil
}

// SaveDraft puts a product back into draft.
func (s *ProductService) SaveDraft(ctx context.Context, id string) (err error) {
	track := s.metrics.TrackOperation("save_draft")
	defer func() { track(err) }()

	if err := s.store.Products().SetDraft(ctx, id, true); err != nil {
		return fmt.Errorf("failed to save draft %s: %w", id, err)
	}
	return nil
}

// SubmitProduct moves a product to pending and then verifies it. Only the
// move to pending decides the result: if verification or notification fails
// the product stays pending and the error is logged.
func (s *ProductService) SubmitProduct(ctx context.Context, id string) (err error) {
	track := s.metrics.TrackOperation("submit")
	defer func() { track(err) }()

	err = s.store.WithTx(ctx, func(tx repositories.Store) error {
		if err := tx.Products().SetDraft(ctx, id, false); err != nil {
			return err
		}
		return tx.Products().SetVerificationStatus(ctx, id, models.StatusUnverified)
	})
	if err != nil {
		return fmt.Errorf("failed to submit product %s: %w", id, err)
	}

	if verr := s.verify(ctx, id); verr != nil {
		if errors.Is(verr, repositories.ErrNotFound) {
			s.log.Info("product deleted before verification finished", zap.String("product_id", id))
		} else {
			s.log.Error("product left pending, verification did not finish",
				zap.String("product_id", id),
				zap.Error(verr))
		}
	}
	return nil
}

// verify evaluates the committed state of a submitted product, records the
// outcome and notifies the vendor.
func (s *ProductService) verify(ctx context.Context, id string) (err error) {
	track := s.metrics.TrackOperation("verify")
	defer func() { track(err) }()

	var (
		product    *models.Product
		categories int64
		tags       int64
	)
	err = s.store.WithTx(ctx, func(tx repositories.Store) error {
		var err error
		if product, err = tx.Products().GetByID(ctx, id); err != nil {
			return err
		}
		if categories, err = tx.Associations().CountCategories(ctx, id); err != nil {
			return err
		}
		tags, err = tx.Associations().CountTags(ctx, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to read product for verification: %w", err)
	}

	result := verification.Evaluate(verification.Input{
		Name:          product.Name,
		Description:   product.Description,
		ImageURL:      product.ImageURL,
		Price:         product.Price,
		CategoryCount: categories,
		TagCount:      tags,
	})

	if err := s.store.Products().SetVerificationStatus(ctx, id, result.Status); err != nil {
		return fmt.Errorf("failed to record verification outcome: %w", err)
	}
	s.metrics.RecordVerification(string(result.Status))
	s.log.Info("product verified",
		zap.String("product_id", id),
		zap.String("status", string(result.Status)))

	if err := s.notifier.Notify(ctx, product.VendorID, id, result.Message); err != nil {
		return fmt.Errorf("failed to notify vendor %s: %w", product.VendorID, err)
	}
	return nil
}

func (s *ProductService) view(ctx context.Context, store repositories.Store, product *models.Product) (*ProductView, error) {
	categoryIDs, err := store.Associations().CategoryIDs(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	tagIDs, err := store.Associations().TagIDs(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if categoryIDs == nil {
		categoryIDs = []string{}
	}
	if tagIDs == nil {
		tagIDs = []string{}
	}
	return &ProductView{
		Product:     *product,
		State:       product.State(),
		CategoryIDs: categoryIDs,
		TagIDs:      tagIDs,
	}, nil
}
