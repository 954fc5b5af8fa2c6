package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/usecase"
)

// NotificationHandler is the entry point for the booking flow to enqueue
// outbound messages into the outbox.
type NotificationHandler struct {
	NotificationUsecase usecase.NotificationUsecase
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{NotificationUsecase: notificationUsecase}
}

type createNotificationRequest struct {
	BookingID    string          `json:"booking_id"`
	RestaurantID string          `json:"restaurant_id"`
	Platform     string          `json:"platform"`
	RecipientID  string          `json:"recipient_id"`
	Message      string          `json:"message"`
	Payload      json.RawMessage `json:"payload"`
	ScheduledAt  *time.Time      `json:"scheduled_at"`
}

func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request createNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	platform := domain.NotificationPlatform(request.Platform)
	if platform != domain.PlatformTelegram && platform != domain.PlatformVK {
		writeError(w, http.StatusBadRequest, domain.ErrUnsupportedPlatform.Error())
		return
	}
	if request.RecipientID == "" || request.Message == "" {
		writeError(w, http.StatusBadRequest, "recipient_id and message are required")
		return
	}

	notification := &domain.BookingNotification{
		BookingID:    request.BookingID,
		RestaurantID: request.RestaurantID,
		Platform:     platform,
		RecipientID:  request.RecipientID,
		Message:      request.Message,
		PayloadJSON:  string(request.Payload),
		ScheduledAt:  request.ScheduledAt,
	}
	if err := h.NotificationUsecase.CreateNotification(notification); err != nil {
		slog.Error("notification enqueue failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "id": notification.ID})
}
