package models

import (
	"time"

	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
)

type BookingNotificationModel struct {
	ID           string `gorm:"primaryKey"`
	BookingID    string `gorm:"index:idx_notification_booking"`
	RestaurantID string
	Platform     domain.NotificationPlatform
	RecipientID  string
	Message      string
	Payload      string                    `gorm:"type:jsonb"`
	Status       domain.NotificationStatus `gorm:"index:idx_notification_status"`
	Attempts     int
	LastError    string
	CreatedAt    time.Time `gorm:"index:idx_notification_created_at"`
	ScheduledAt  *time.Time
	SentAt       *time.Time
}
