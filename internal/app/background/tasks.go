package background

import (
	"context"
	"log"
	"time"

	"github.com/marchelxyz/mariko-vld-sub000/internal/usecase"
)

const DefaultNotificationInterval = 60 * time.Second

type BackgroundTasks struct {
	NotificationUsecase  usecase.NotificationUsecase
	NotificationInterval time.Duration
}

func NewBackgroundTasks(notificationUC usecase.NotificationUsecase, notificationInterval time.Duration) *BackgroundTasks {
	if notificationInterval <= 0 {
		notificationInterval = DefaultNotificationInterval
	}
	return &BackgroundTasks{
		NotificationUsecase:  notificationUC,
		NotificationInterval: notificationInterval,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startNotificationWorker(ctx)
}

func (bt *BackgroundTasks) startNotificationWorker(ctx context.Context) {
	ticker := time.NewTicker(bt.NotificationInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.NotificationUsecase.ProcessPending(ctx); err != nil {
				log.Printf("Notification worker error: %v\n", err)
			}
		}
	}
}
