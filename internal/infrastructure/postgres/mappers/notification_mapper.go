package mappers

import (
	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/postgres/models"
)

func ToGORMNotification(n *domain.BookingNotification) *models.BookingNotificationModel {
	return &models.BookingNotificationModel{
		ID:           n.ID,
		BookingID:    n.BookingID,
		RestaurantID: n.RestaurantID,
		Platform:     n.Platform,
		RecipientID:  n.RecipientID,
		Message:      n.Message,
		Payload:      n.PayloadJSON,
		Status:       n.Status,
		Attempts:     n.Attempts,
		LastError:    n.LastError,
		CreatedAt:    n.CreatedAt,
		ScheduledAt:  n.ScheduledAt,
		SentAt:       n.SentAt,
	}
}

func ToDomainNotification(model *models.BookingNotificationModel) *domain.BookingNotification {
	return &domain.BookingNotification{
		ID:           model.ID,
		BookingID:    model.BookingID,
		RestaurantID: model.RestaurantID,
		Platform:     model.Platform,
		RecipientID:  model.RecipientID,
		Message:      model.Message,
		PayloadJSON:  model.Payload,
		Status:       model.Status,
		Attempts:     model.Attempts,
		LastError:    model.LastError,
		CreatedAt:    model.CreatedAt,
		ScheduledAt:  model.ScheduledAt,
		SentAt:       model.SentAt,
	}
}
