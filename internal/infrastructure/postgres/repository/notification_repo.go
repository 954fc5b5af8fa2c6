package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/postgres/mappers"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultNotificationRepository struct {
	DB *gorm.DB
}

func NewDefaultNotificationRepository(db *gorm.DB) *DefaultNotificationRepository {
	return &DefaultNotificationRepository{DB: db}
}

func (r *DefaultNotificationRepository) CreateNotification(notification *domain.BookingNotification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.Status == "" {
		notification.Status = domain.NotificationStatusPending
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	return r.DB.Create(mappers.ToGORMNotification(notification)).Error
}

// FetchPending selects only status='pending': a failed notification is never
// re-queued unless something external resets its status.
func (r *DefaultNotificationRepository) FetchPending(limit int) ([]*domain.BookingNotification, error) {
	var notificationModels []models.BookingNotificationModel
	err := r.DB.
		Where("status = ?", domain.NotificationStatusPending).
		Where("scheduled_at IS NULL OR scheduled_at <= ?", time.Now()).
		Order("created_at ASC").
		Limit(limit).
		Find(&notificationModels).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]*domain.BookingNotification, 0, len(notificationModels))
	for i := range notificationModels {
		notifications = append(notifications, mappers.ToDomainNotification(&notificationModels[i]))
	}
	return notifications, nil
}

func (r *DefaultNotificationRepository) MarkSent(notificationID string, sentAt time.Time) error {
	return r.DB.Model(&models.BookingNotificationModel{}).Where("id = ?", notificationID).Updates(map[string]interface{}{
		"status":  domain.NotificationStatusSent,
		"sent_at": sentAt,
	}).Error
}

func (r *DefaultNotificationRepository) MarkFailed(notificationID string, dispatchError string) error {
	return r.DB.Model(&models.BookingNotificationModel{}).Where("id = ?", notificationID).Updates(map[string]interface{}{
		"status":     domain.NotificationStatusFailed,
		"attempts":   gorm.Expr("attempts + 1"),
		"last_error": dispatchError,
	}).Error
}
