package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PipelineMetrics содержит метрики конвейера оплат и выгрузки в POS
type PipelineMetrics struct {
	// Вебхуки от платежного шлюза
	WebhooksReceivedTotal prometheus.CounterVec

	// Переходы статусов платежей
	PaymentStatusTotal prometheus.CounterVec

	// Выгрузка заказов в POS
	PosDispatchTotal    prometheus.CounterVec
	PosDispatchDuration prometheus.HistogramVec

	// Уведомления о бронях
	NotificationsTotal prometheus.CounterVec
}

func NewPipelineMetrics() *PipelineMetrics {
	return &PipelineMetrics{
		WebhooksReceivedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_webhooks_received_total",
				Help: "Количество принятых вебхуков по результату обработки",
			},
			[]string{"result"},
		),

		PaymentStatusTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_status_transitions_total",
				Help: "Количество переходов статусов платежей",
			},
			[]string{"status"},
		),

		PosDispatchTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pos_dispatch_total",
				Help: "Количество попыток выгрузки заказов в POS по результату",
			},
			[]string{"result"},
		),

		PosDispatchDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pos_dispatch_duration_seconds",
				Help:    "Время выгрузки заказа в POS в секундах",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 8),
			},
			[]string{"result"},
		),

		NotificationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booking_notifications_total",
				Help: "Количество отправленных уведомлений по платформам и результату",
			},
			[]string{"platform", "result"},
		),
	}
}
