package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/metrics"
)

const DefaultNotificationBatchSize = 50

type NotificationUsecase interface {
	CreateNotification(notification *domain.BookingNotification) error
	ProcessPending(ctx context.Context) error
}

type DefaultNotificationUsecase struct {
	Repo      domain.NotificationRepository
	Senders   map[domain.NotificationPlatform]domain.MessageSender
	BatchSize int
	Metrics   *metrics.PipelineMetrics

	// runs must not overlap: a slow batch would otherwise let the next tick
	// claim and send the same rows again
	running sync.Mutex
}

func NewDefaultNotificationUsecase(
	repo domain.NotificationRepository,
	senders map[domain.NotificationPlatform]domain.MessageSender,
	batchSize int,
	pipelineMetrics *metrics.PipelineMetrics) *DefaultNotificationUsecase {

	if batchSize <= 0 {
		batchSize = DefaultNotificationBatchSize
	}
	return &DefaultNotificationUsecase{
		Repo:      repo,
		Senders:   senders,
		BatchSize: batchSize,
		Metrics:   pipelineMetrics,
	}
}

func (u *DefaultNotificationUsecase) CreateNotification(notification *domain.BookingNotification) error {
	notification.Status = domain.NotificationStatusPending
	return u.Repo.CreateNotification(notification)
}

// ProcessPending drains one batch of pending notifications strictly in
// creation order. A notification that fails to send becomes failed and is
// never re-queued; callers needing at-least-once delivery must reset its
// status themselves.
func (u *DefaultNotificationUsecase) ProcessPending(ctx context.Context) error {
	if !u.running.TryLock() {
		slog.Warn("notification run already in progress, skipping")
		return nil
	}
	defer u.running.Unlock()

	batch, err := u.Repo.FetchPending(u.BatchSize)
	if err != nil {
		return err
	}

	for _, notification := range batch {
		u.dispatchOne(ctx, notification)
	}

	return nil
}

func (u *DefaultNotificationUsecase) dispatchOne(ctx context.Context, notification *domain.BookingNotification) {
	sender, ok := u.Senders[notification.Platform]
	if !ok {
		u.markFailed(notification, domain.ErrUnsupportedPlatform.Error())
		return
	}

	err := sender.SendMessage(ctx, notification.RecipientID, notification.Message, tokenOverride(notification.PayloadJSON))
	if err != nil {
		u.markFailed(notification, err.Error())
		return
	}

	if err := u.Repo.MarkSent(notification.ID, time.Now()); err != nil {
		slog.Error("failed to mark notification sent", "notification_id", notification.ID, "error", err.Error())
	}
	if u.Metrics != nil {
		u.Metrics.NotificationsTotal.WithLabelValues(string(notification.Platform), "sent").Inc()
	}
}

func (u *DefaultNotificationUsecase) markFailed(notification *domain.BookingNotification, dispatchError string) {
	if err := u.Repo.MarkFailed(notification.ID, dispatchError); err != nil {
		slog.Error("failed to mark notification failed", "notification_id", notification.ID, "error", err.Error())
	}
	if u.Metrics != nil {
		u.Metrics.NotificationsTotal.WithLabelValues(string(notification.Platform), "failed").Inc()
	}
	slog.Error("notification dispatch failed", "notification_id", notification.ID, "platform", notification.Platform, "error", dispatchError)
}

// tokenOverride reads the per-booking credential from the notification
// payload when the booking flow supplied one.
func tokenOverride(payloadJSON string) string {
	if payloadJSON == "" {
		return ""
	}
	var payload struct {
		BotToken string `json:"bot_token"`
	}
	if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
		return ""
	}
	return payload.BotToken
}
