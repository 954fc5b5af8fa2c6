package repository

import (
	"errors"
	"time"

	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/postgres/mappers"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) GetOrderByID(orderID string) (*domain.Order, error) {
	var order models.OrderModel
	if err := r.DB.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&order), nil
}

func (r *DefaultOrderRepository) GetOrderByExternalID(externalID string) (*domain.Order, error) {
	var order models.OrderModel
	if err := r.DB.First(&order, "external_id = ?", externalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&order), nil
}

func (r *DefaultOrderRepository) UpdatePaymentInfo(orderID string, info domain.OrderPaymentInfo) error {
	return r.DB.Model(&models.OrderModel{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"payment_id":       info.PaymentID,
		"payment_status":   info.PaymentStatus,
		"payment_provider": info.PaymentProvider,
		"updated_at":       time.Now(),
	}).Error
}

// UpdateProviderState rewrites the full POS sync block, so a fresh "pending"
// state clears any previous error and payload.
func (r *DefaultOrderRepository) UpdateProviderState(orderID string, state domain.OrderProviderState) error {
	return r.DB.Model(&models.OrderModel{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"provider_status":    state.Status,
		"provider_order_id":  state.OrderID,
		"provider_error":     state.Error,
		"provider_payload":   state.Payload,
		"provider_synced_at": state.SyncedAt,
		"updated_at":         time.Now(),
	}).Error
}
