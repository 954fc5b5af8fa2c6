package repository

import (
	"errors"
	"time"

	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/postgres/mappers"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPaymentRepository struct {
	DB *gorm.DB
}

func NewDefaultPaymentRepository(db *gorm.DB) *DefaultPaymentRepository {
	return &DefaultPaymentRepository{DB: db}
}

func (r *DefaultPaymentRepository) CreatePayment(payment *domain.PaymentRecord) error {
	paymentModel := mappers.ToGORMPayment(payment)
	if paymentModel.CreatedAt.IsZero() {
		paymentModel.CreatedAt = time.Now()
	}
	if err := r.DB.Create(paymentModel).Error; err != nil {
		return err
	}
	return nil
}

func (r *DefaultPaymentRepository) GetPaymentByID(paymentID string) (*domain.PaymentRecord, error) {
	var payment models.PaymentModel
	if err := r.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayment(&payment), nil
}

func (r *DefaultPaymentRepository) GetPaymentByProviderID(providerPaymentID string) (*domain.PaymentRecord, error) {
	var payment models.PaymentModel
	if err := r.DB.First(&payment, "provider_payment_id = ?", providerPaymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayment(&payment), nil
}

func (r *DefaultPaymentRepository) UpdatePayment(payment *domain.PaymentRecord) error {
	paymentModel := mappers.ToGORMPayment(payment)
	paymentModel.UpdatedAt = time.Now()

	if err := r.DB.Model(&models.PaymentModel{}).Where("id = ?", payment.ID).Updates(map[string]interface{}{
		"order_id":            paymentModel.OrderID,
		"provider_payment_id": paymentModel.ProviderPaymentID,
		"status":              paymentModel.Status,
		"metadata":            paymentModel.Metadata,
		"updated_at":          paymentModel.UpdatedAt,
	}).Error; err != nil {
		return err
	}

	return nil
}
