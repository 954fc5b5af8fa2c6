package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	webhookdto "github.com/marchelxyz/mariko-vld-sub000/internal/delivery/http/dto/webhook"
	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/metrics"
	"github.com/marchelxyz/mariko-vld-sub000/internal/usecase"
)

// PaymentWebhookHandler correlates inbound gateway events to PaymentRecords
// and triggers POS dispatch on paid. Recoverable conditions (unparseable
// body, unknown payment) get a 200 so the gateway does not retry the
// delivery indefinitely; only unexpected faults produce a 500.
type PaymentWebhookHandler struct {
	PaymentUsecase  usecase.PaymentUsecase
	DispatchUsecase usecase.DispatchUsecase
	OrderRepo       domain.OrderRepository
	ConfigProvider  domain.IntegrationConfigProvider
	Metrics         *metrics.PipelineMetrics
}

func NewPaymentWebhookHandler(
	paymentUsecase usecase.PaymentUsecase,
	dispatchUsecase usecase.DispatchUsecase,
	orderRepo domain.OrderRepository,
	configProvider domain.IntegrationConfigProvider,
	pipelineMetrics *metrics.PipelineMetrics) *PaymentWebhookHandler {

	return &PaymentWebhookHandler{
		PaymentUsecase:  paymentUsecase,
		DispatchUsecase: dispatchUsecase,
		OrderRepo:       orderRepo,
		ConfigProvider:  configProvider,
		Metrics:         pipelineMetrics,
	}
}

func (h *PaymentWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var event webhookdto.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		slog.Warn("webhook body is not valid json", "error", err.Error())
		h.respond(w, "invalid_body")
		return
	}

	record, err := h.resolveRecord(&event)
	if err != nil {
		slog.Error("webhook payment lookup failed", "error", err.Error())
		h.fail(w)
		return
	}
	if record == nil {
		// платеж не найден: отвечаем 200, иначе шлюз будет ретраить доставку
		slog.Warn("webhook references unknown payment", "provider_payment_id", event.ExtractPaymentID())
		h.respond(w, "correlation_miss")
		return
	}

	extra := map[string]string{}
	if providerID := event.ExtractPaymentID(); providerID != "" && record.ProviderPaymentID == "" {
		extra["provider_payment_id"] = providerID
	}

	updated, err := h.PaymentUsecase.UpdatePaymentStatus(r.Context(), record.ID, event.ExtractStatus(), extra)
	if err != nil {
		slog.Error("webhook status update failed", "payment_id", record.ID, "error", err.Error())
		h.fail(w)
		return
	}

	if updated.Status == domain.PaymentStatusPaid && updated.OrderID != "" && updated.RestaurantID != "" {
		h.startDispatch(updated)
	}

	h.respond(w, "processed")
}

func (h *PaymentWebhookHandler) resolveRecord(event *webhookdto.Event) (*domain.PaymentRecord, error) {
	if providerID := event.ExtractPaymentID(); providerID != "" {
		record, err := h.PaymentUsecase.GetPaymentByProviderID(providerID)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, domain.ErrPaymentNotFound) {
			return nil, err
		}
	}

	if correlationID := event.CorrelationID(); correlationID != "" {
		record, err := h.PaymentUsecase.GetPaymentByID(correlationID)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, domain.ErrPaymentNotFound) {
			return nil, err
		}
	}

	return nil, nil
}

func (h *PaymentWebhookHandler) startDispatch(record *domain.PaymentRecord) {
	order, err := h.OrderRepo.GetOrderByID(record.OrderID)
	if err != nil {
		slog.Error("order lookup for dispatch failed", "order_id", record.OrderID, "error", err.Error())
		return
	}

	cfg, err := h.ConfigProvider.GetIntegrationConfig(record.RestaurantID)
	if err != nil {
		slog.Error("integration config lookup failed", "restaurant_id", record.RestaurantID, "error", err.Error())
		return
	}
	if cfg == nil || !cfg.Enabled {
		slog.Info("pos integration disabled, skipping dispatch", "restaurant_id", record.RestaurantID)
		return
	}

	h.DispatchUsecase.EnqueueOrder(cfg, order)
}

func (h *PaymentWebhookHandler) respond(w http.ResponseWriter, result string) {
	if h.Metrics != nil {
		h.Metrics.WebhooksReceivedTotal.WithLabelValues(result).Inc()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (h *PaymentWebhookHandler) fail(w http.ResponseWriter) {
	if h.Metrics != nil {
		h.Metrics.WebhooksReceivedTotal.WithLabelValues("error").Inc()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": "internal error"})
}
