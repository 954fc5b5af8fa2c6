package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/metrics"
)

const dispatchAction = "create_order"

type DispatchUsecase interface {
	// EnqueueOrder starts a dispatch without the caller awaiting completion.
	// The task is in-process and not durable: a crash mid-dispatch leaves the
	// order at provider_status=pending until re-triggered externally.
	EnqueueOrder(cfg *domain.IntegrationConfig, order *domain.Order)
	DispatchOrder(ctx context.Context, cfg *domain.IntegrationConfig, order *domain.Order)
}

type DefaultDispatchUsecase struct {
	OrderRepo  domain.OrderRepository
	JobLogRepo domain.JobLogRepository
	PosClient  domain.PosClientPort
	Metrics    *metrics.PipelineMetrics
}

func NewDefaultDispatchUsecase(
	orderRepo domain.OrderRepository,
	jobLogRepo domain.JobLogRepository,
	posClient domain.PosClientPort,
	pipelineMetrics *metrics.PipelineMetrics) *DefaultDispatchUsecase {

	return &DefaultDispatchUsecase{
		OrderRepo:  orderRepo,
		JobLogRepo: jobLogRepo,
		PosClient:  posClient,
		Metrics:    pipelineMetrics,
	}
}

func (u *DefaultDispatchUsecase) EnqueueOrder(cfg *domain.IntegrationConfig, order *domain.Order) {
	go u.DispatchOrder(context.Background(), cfg, order)
}

// DispatchOrder performs exactly one dispatch attempt: one pending job-log
// entry, then one terminal entry (success or error). There is no retry or
// backoff; re-dispatch requires an external trigger such as the gateway
// redelivering the webhook.
func (u *DefaultDispatchUsecase) DispatchOrder(ctx context.Context, cfg *domain.IntegrationConfig, order *domain.Order) {
	start := time.Now()

	pendingPayload, _ := json.Marshal(map[string]string{
		"order_id":        order.ID,
		"external_id":     order.ExternalID,
		"organization_id": cfg.OrganizationID,
	})

	// bookkeeping перед выгрузкой: ошибки только логируем
	err := u.JobLogRepo.Append(&domain.IntegrationJobLog{
		Provider:     "iiko",
		RestaurantID: order.RestaurantID,
		OrderID:      order.ID,
		Action:       dispatchAction,
		Status:       domain.JobLogStatusPending,
		PayloadJSON:  string(pendingPayload),
	})
	if err != nil {
		slog.Error("failed to append pending job log", "order_id", order.ID, "error", err.Error())
	}

	err = u.OrderRepo.UpdateProviderState(order.ID, domain.OrderProviderState{
		Status: domain.ProviderStatusPending,
	})
	if err != nil {
		slog.Error("failed to set provider status pending", "order_id", order.ID, "error", err.Error())
	}

	result, err := u.callPos(ctx, cfg, order)
	if err != nil {
		u.finishError(order, err.Error(), "", time.Since(start))
		return
	}
	if !result.Success {
		u.finishError(order, result.Error, result.ResponseJSON, time.Since(start))
		return
	}

	now := time.Now()
	err = u.OrderRepo.UpdateProviderState(order.ID, domain.OrderProviderState{
		Status:   result.Status,
		OrderID:  result.OrderID,
		Payload:  result.ResponseJSON,
		SyncedAt: &now,
	})
	if err != nil {
		slog.Error("failed to store provider success state", "order_id", order.ID, "error", err.Error())
	}

	err = u.JobLogRepo.Append(&domain.IntegrationJobLog{
		Provider:     "iiko",
		RestaurantID: order.RestaurantID,
		OrderID:      order.ID,
		Action:       dispatchAction,
		Status:       domain.JobLogStatusSuccess,
		PayloadJSON:  result.PayloadJSON,
	})
	if err != nil {
		slog.Error("failed to append success job log", "order_id", order.ID, "error", err.Error())
	}

	if u.Metrics != nil {
		u.Metrics.PosDispatchTotal.WithLabelValues("success").Inc()
		u.Metrics.PosDispatchDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())
	}
	slog.Info("pos dispatch succeeded", "order_id", order.ID, "provider_order_id", result.OrderID)
}

// callPos converts a panic inside the POS client into a plain error so the
// dispatch still reaches its terminal bookkeeping.
func (u *DefaultDispatchUsecase) callPos(ctx context.Context, cfg *domain.IntegrationConfig, order *domain.Order) (result *domain.PosDispatchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("pos dispatch panic: %v", r)
		}
	}()
	return u.PosClient.CreateOrder(ctx, cfg, order)
}

func (u *DefaultDispatchUsecase) finishError(order *domain.Order, message, response string, elapsed time.Duration) {
	err := u.OrderRepo.UpdateProviderState(order.ID, domain.OrderProviderState{
		Status: domain.ProviderStatusError,
		Error:  message,
	})
	if err != nil {
		slog.Error("failed to store provider error state", "order_id", order.ID, "error", err.Error())
	}

	err = u.JobLogRepo.Append(&domain.IntegrationJobLog{
		Provider:     "iiko",
		RestaurantID: order.RestaurantID,
		OrderID:      order.ID,
		Action:       dispatchAction,
		Status:       domain.JobLogStatusError,
		PayloadJSON:  response,
		Error:        message,
	})
	if err != nil {
		slog.Error("failed to append error job log", "order_id", order.ID, "error", err.Error())
	}

	if u.Metrics != nil {
		u.Metrics.PosDispatchTotal.WithLabelValues("error").Inc()
		u.Metrics.PosDispatchDuration.WithLabelValues("error").Observe(elapsed.Seconds())
	}
	slog.Error("pos dispatch failed", "order_id", order.ID, "error", message)
}
