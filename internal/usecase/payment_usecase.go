package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/jaevor/go-nanoid"
	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/metrics"
	paymentdto "github.com/marchelxyz/mariko-vld-sub000/internal/usecase/dto/payment"
)

type PaymentUsecase interface {
	CreatePayment(ctx context.Context, input *paymentdto.CreatePaymentInput) (*paymentdto.CreatePaymentOutput, error)
	UpdatePaymentStatus(ctx context.Context, paymentID, rawStatus string, extra map[string]string) (*domain.PaymentRecord, error)
	GetPaymentByID(paymentID string) (*domain.PaymentRecord, error)
	GetPaymentByProviderID(providerPaymentID string) (*domain.PaymentRecord, error)
	GetPaymentStatus(ctx context.Context, paymentID string) (*paymentdto.PaymentStatusOutput, error)
}

type DefaultPaymentUsecase struct {
	PaymentRepo domain.PaymentRepository
	OrderRepo   domain.OrderRepository
	Gateway     domain.PaymentGatewayPort
	Publisher   domain.PaymentEventPublisher
	Metrics     *metrics.PipelineMetrics
}

func NewDefaultPaymentUsecase(
	paymentRepo domain.PaymentRepository,
	orderRepo domain.OrderRepository,
	gateway domain.PaymentGatewayPort,
	publisher domain.PaymentEventPublisher,
	pipelineMetrics *metrics.PipelineMetrics) *DefaultPaymentUsecase {

	return &DefaultPaymentUsecase{
		PaymentRepo: paymentRepo,
		OrderRepo:   orderRepo,
		Gateway:     gateway,
		Publisher:   publisher,
		Metrics:     pipelineMetrics,
	}
}

// CreatePayment inserts a pending PaymentRecord, then creates the payment at
// the gateway. The record id travels in the gateway metadata as paymentId so
// a webhook can still be correlated when it arrives before the gateway id is
// persisted locally.
func (u *DefaultPaymentUsecase) CreatePayment(ctx context.Context, input *paymentdto.CreatePaymentInput) (*paymentdto.CreatePaymentOutput, error) {
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	record := &domain.PaymentRecord{
		ID:           idGenerator(),
		OrderID:      input.OrderID,
		RestaurantID: input.RestaurantID,
		ProviderCode: "yookassa",
		Amount:       input.Amount,
		Currency:     input.Currency,
		Status:       domain.PaymentStatusPending,
	}

	metadata := map[string]string{"paymentId": record.ID}
	for k, v := range input.Metadata {
		metadata[k] = v
	}
	metadataBytes, _ := json.Marshal(metadata)
	record.MetadataJSON = string(metadataBytes)

	if err := u.PaymentRepo.CreatePayment(record); err != nil {
		return nil, err
	}

	gatewayPayment, err := u.Gateway.CreatePayment(ctx, &domain.GatewayPaymentInput{
		Amount:      input.Amount,
		Currency:    input.Currency,
		Description: input.Description,
		ReturnURL:   input.ReturnURL,
		Metadata:    metadata,
	})
	if err != nil {
		if _, updErr := u.UpdatePaymentStatus(ctx, record.ID, string(domain.PaymentStatusFailed), nil); updErr != nil {
			slog.Error("failed to mark payment failed", "payment_id", record.ID, "error", updErr.Error())
		}
		return nil, err
	}

	record.ProviderPaymentID = gatewayPayment.ProviderPaymentID
	record.Status = domain.NormalizePaymentStatus(gatewayPayment.Status)
	if err := u.PaymentRepo.UpdatePayment(record); err != nil {
		return nil, err
	}
	u.mirrorOntoOrder(record)

	return &paymentdto.CreatePaymentOutput{
		PaymentID:         record.ID,
		ProviderPaymentID: record.ProviderPaymentID,
		Status:            record.Status,
		ConfirmationURL:   gatewayPayment.ConfirmationURL,
		UsedFallback:      gatewayPayment.UsedFallback,
	}, nil
}

// UpdatePaymentStatus normalizes the raw status and writes the record; when
// the record is bound to an order, the payment mirror on the order is
// updated in a second, non-transactional write. Terminal records are left
// untouched, which makes repeated terminal updates idempotent.
func (u *DefaultPaymentUsecase) UpdatePaymentStatus(ctx context.Context, paymentID, rawStatus string, extra map[string]string) (*domain.PaymentRecord, error) {
	record, err := u.PaymentRepo.GetPaymentByID(paymentID)
	if err != nil {
		return nil, err
	}

	if record.Status.IsTerminal() {
		return record, nil
	}

	record.Status = domain.NormalizePaymentStatus(rawStatus)
	if providerID := extra["provider_payment_id"]; providerID != "" && record.ProviderPaymentID == "" {
		record.ProviderPaymentID = providerID
	}

	if err := u.PaymentRepo.UpdatePayment(record); err != nil {
		return nil, err
	}

	if u.Metrics != nil {
		u.Metrics.PaymentStatusTotal.WithLabelValues(string(record.Status)).Inc()
	}

	u.mirrorOntoOrder(record)

	if u.Publisher != nil {
		err := u.Publisher.PublishPaymentEvent(domain.PaymentEvent{
			PaymentID:    record.ID,
			OrderID:      record.OrderID,
			RestaurantID: record.RestaurantID,
			Status:       string(record.Status),
			Amount:       record.Amount,
			Currency:     record.Currency,
		})
		if err != nil {
			slog.Error("failed to publish payment event", "payment_id", record.ID, "error", err.Error())
		}
	}

	return record, nil
}

func (u *DefaultPaymentUsecase) mirrorOntoOrder(record *domain.PaymentRecord) {
	if record.OrderID == "" {
		return
	}
	err := u.OrderRepo.UpdatePaymentInfo(record.OrderID, domain.OrderPaymentInfo{
		PaymentID:       record.ID,
		PaymentStatus:   record.Status,
		PaymentProvider: record.ProviderCode,
	})
	if err != nil {
		// рассинхрон до следующего прохода реконсиляции
		slog.Error("failed to mirror payment onto order", "order_id", record.OrderID, "payment_id", record.ID, "error", err.Error())
	}
}

func (u *DefaultPaymentUsecase) GetPaymentByID(paymentID string) (*domain.PaymentRecord, error) {
	return u.PaymentRepo.GetPaymentByID(paymentID)
}

func (u *DefaultPaymentUsecase) GetPaymentByProviderID(providerPaymentID string) (*domain.PaymentRecord, error) {
	return u.PaymentRepo.GetPaymentByProviderID(providerPaymentID)
}

// GetPaymentStatus is the pull-based reconciliation fallback: when the local
// record is non-terminal and a gateway id is known, the gateway is asked
// synchronously and a differing status is applied. Sync failures are logged
// and swallowed; the caller gets the last known local state.
func (u *DefaultPaymentUsecase) GetPaymentStatus(ctx context.Context, paymentID string) (*paymentdto.PaymentStatusOutput, error) {
	record, err := u.PaymentRepo.GetPaymentByID(paymentID)
	if err != nil {
		return nil, err
	}

	out := &paymentdto.PaymentStatusOutput{
		Payment: record,
		Source:  "local",
	}

	if record.Status.IsTerminal() || record.ProviderPaymentID == "" {
		return out, nil
	}

	remote, err := u.Gateway.FetchPaymentStatus(ctx, record.ProviderPaymentID)
	if err != nil {
		slog.Error("payment status sync failed", "payment_id", record.ID, "error", err.Error())
		return out, nil
	}

	if domain.NormalizePaymentStatus(remote.Status) != record.Status {
		updated, err := u.UpdatePaymentStatus(ctx, record.ID, remote.Status, nil)
		if err != nil {
			slog.Error("payment status sync update failed", "payment_id", record.ID, "error", err.Error())
			return out, nil
		}
		out.Payment = updated
		out.Synced = true
		out.Source = "gateway"
	}

	return out, nil
}
