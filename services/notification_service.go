package services

import (
	"context"

	"employee_management/metrics"
	"employee_management/models"
	"employee_management/types"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type NotificationService struct {
	db        *gorm.DB
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// Add appends an unread notification using tx, so it commits or rolls back with the caller's change.
func (s *NotificationService) Add(tx *gorm.DB, userID, title, message string, severity models.Severity) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    severity,
	}
	if err := tx.Create(notification).Error; err != nil {
		return nil, types.Database(err)
	}

	s.metrics.NotificationsCreated.Inc()
	return notification, nil
}

// Publish pushes committed notifications to the live channel. Failures are logged and counted only.
func (s *NotificationService) Publish(ctx context.Context, notifications ...models.Notification) {
	for _, n := range notifications {
		if err := s.publisher.Publish(ctx, n); err != nil {
			s.metrics.PublishFailures.Inc()
			s.logger.Warn("Failed to publish notification",
				zap.String("notification_id", n.ID),
				zap.String("user_id", n.UserID),
				zap.Error(err))
		}
	}
}

// Notify appends a single notification in its own transaction and publishes it.
func (s *NotificationService) Notify(ctx context.Context, userID, title, message string, severity models.Severity) (*models.Notification, error) {
	var notification *models.Notification
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		notification, err = s.Add(tx, userID, title, message, severity)
		return err
	})
	if err != nil {
		return nil, dbError(err)
	}

	s.Publish(ctx, *notification)
	return notification, nil
}

// List returns the user's notifications, newest first. A non-positive limit returns all of them.
func (s *NotificationService) List(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	notifications := []models.Notification{}
	if err := query.Find(&notifications).Error; err != nil {
		return nil, types.Database(err)
	}
	return notifications, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, types.Database(err)
	}
	return count, nil
}

// MarkRead flips one notification to read. Notifications of other users are reported as missing.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) (*models.Notification, error) {
	var notification models.Notification
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&notification).Error
	if err != nil {
		return nil, notFoundOr(err, types.ErrNotificationNotFound)
	}

	if notification.IsRead {
		return &notification, nil
	}

	notification.IsRead = true
	if err := s.db.WithContext(ctx).Model(&notification).Update("is_read", true).Error; err != nil {
		return nil, types.Database(err)
	}
	return &notification, nil
}

// MarkAllRead returns how many notifications changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, types.Database(result.Error)
	}
	return result.RowsAffected, nil
}
