package services

import (
	"context"
	"encoding/json"
	"fmt"

	"lapak/internal/metrics"
	"lapak/internal/models"
	"lapak/internal/repositories"

	"go.uber.org/zap"
)

// EventNotificationCreated is the event type published for every stored notification.
const EventNotificationCreated = "notification.created"

// EventPublisher sends product events to a message broker.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// NotificationService records outcome messages for vendors.
type NotificationService struct {
	repo      repositories.NotificationRepository
	publisher EventPublisher
	metrics   *metrics.Metrics
	log       *zap.Logger
}

// NewNotificationService creates a new NotificationService. publisher may be nil.
func NewNotificationService(repo repositories.NotificationRepository, publisher EventPublisher, m *metrics.Metrics, log *zap.Logger) *NotificationService {
	return &NotificationService{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		log:       log,
	}
}

// Notify stores one notification for the vendor about the product, then
// announces it on the broker. A broker failure is only logged.
func (s *NotificationService) Notify(ctx context.Context, vendorID, productID, message string) error {
	notification := &models.Notification{
		VendorID:  vendorID,
		ProductID: productID,
		Message:   message,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		s.metrics.RecordNotificationFailure()
		return fmt.Errorf("failed to record notification for product %s: %w", productID, err)
	}

	if s.publisher == nil {
		return nil
	}
	body, err := json.Marshal(notification)
	if err != nil {
		s.log.Warn("failed to marshal notification event", zap.String("notification_id", notification.ID), zap.Error(err))
		return nil
	}
	if err := s.publisher.Publish(EventNotificationCreated, body); err != nil {
		s.metrics.RecordEventPublishFailure()
		s.log.Warn("failed to publish notification event",
			zap.String("notification_id", notification.ID),
			zap.String("product_id", productID),
			zap.Error(err))
	}
	return nil
}

// GetVendorNotifications lists a vendor's notifications, newest first.
func (s *NotificationService) GetVendorNotifications(ctx context.Context, vendorID string) ([]models.Notification, error) {
	return s.repo.GetByVendor(ctx, vendorID)
}
