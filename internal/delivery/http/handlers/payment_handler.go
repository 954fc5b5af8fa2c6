package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/usecase"
	paymentdto "github.com/marchelxyz/mariko-vld-sub000/internal/usecase/dto/payment"
)

type PaymentHandler struct {
	PaymentUsecase usecase.PaymentUsecase
	JobLogRepo     domain.JobLogRepository
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUsecase, jobLogRepo domain.JobLogRepository) *PaymentHandler {
	return &PaymentHandler{
		PaymentUsecase: paymentUsecase,
		JobLogRepo:     jobLogRepo,
	}
}

type createPaymentRequest struct {
	OrderID      string            `json:"order_id"`
	RestaurantID string            `json:"restaurant_id"`
	Amount       float64           `json:"amount"`
	Currency     string            `json:"currency"`
	Description  string            `json:"description"`
	ReturnURL    string            `json:"return_url"`
	Metadata     map[string]string `json:"metadata"`
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if request.RestaurantID == "" || request.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "restaurant_id and positive amount are required")
		return
	}
	if request.Currency == "" {
		request.Currency = "RUB"
	}

	output, err := h.PaymentUsecase.CreatePayment(r.Context(), &paymentdto.CreatePaymentInput{
		OrderID:      request.OrderID,
		RestaurantID: request.RestaurantID,
		Amount:       request.Amount,
		Currency:     request.Currency,
		Description:  request.Description,
		ReturnURL:    request.ReturnURL,
		Metadata:     request.Metadata,
	})
	if err != nil {
		slog.Error("payment creation failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":             true,
		"payment_id":          output.PaymentID,
		"provider_payment_id": output.ProviderPaymentID,
		"status":              output.Status,
		"confirmation_url":    output.ConfirmationURL,
		"used_fallback":       output.UsedFallback,
	})
}

func (h *PaymentHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	paymentID := mux.Vars(r)["id"]

	output, err := h.PaymentUsecase.GetPaymentStatus(r.Context(), paymentID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			writeError(w, http.StatusNotFound, "payment not found")
			return
		}
		slog.Error("payment status read failed", "payment_id", paymentID, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	response := map[string]interface{}{
		"success": true,
		"payment": paymentView(output.Payment),
		"source":  output.Source,
	}
	if output.Synced {
		response["synced"] = true
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *PaymentHandler) ListDispatches(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	entries, err := h.JobLogRepo.ListByOrderID(orderID)
	if err != nil {
		slog.Error("job log listing failed", "order_id", orderID, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	views := make([]map[string]interface{}, 0, len(entries))
	for _, entry := range entries {
		views = append(views, map[string]interface{}{
			"id":         entry.ID,
			"provider":   entry.Provider,
			"action":     entry.Action,
			"status":     entry.Status,
			"error":      entry.Error,
			"created_at": entry.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "dispatches": views})
}

func paymentView(record *domain.PaymentRecord) map[string]interface{} {
	return map[string]interface{}{
		"id":                  record.ID,
		"order_id":            record.OrderID,
		"restaurant_id":       record.RestaurantID,
		"provider_code":       record.ProviderCode,
		"provider_payment_id": record.ProviderPaymentID,
		"amount":              record.Amount,
		"currency":            record.Currency,
		"status":              record.Status,
		"created_at":          record.CreatedAt,
		"updated_at":          record.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"success": false, "error": message})
}
