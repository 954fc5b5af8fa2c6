package domain

import (
	"context"
	"time"
)

type NotificationPlatform string

const (
	PlatformTelegram NotificationPlatform = "telegram"
	PlatformVK       NotificationPlatform = "vk"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

type BookingNotification struct {
	ID           string
	BookingID    string
	RestaurantID string
	Platform     NotificationPlatform
	RecipientID  string
	Message      string
	PayloadJSON  string
	Status       NotificationStatus
	Attempts     int
	LastError    string
	CreatedAt    time.Time
	ScheduledAt  *time.Time
	SentAt       *time.Time
}

type NotificationRepository interface {
	CreateNotification(notification *BookingNotification) error
	// FetchPending returns due pending notifications ordered by creation time.
	FetchPending(limit int) ([]*BookingNotification, error)
	MarkSent(notificationID string, sentAt time.Time) error
	MarkFailed(notificationID string, dispatchError string) error
}

// MessageSender delivers one message on a concrete platform. An empty
// tokenOverride means the platform default credential.
type MessageSender interface {
	SendMessage(ctx context.Context, recipientID, text, tokenOverride string) error
}
