package mappers

import (
	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/postgres/models"
)

func ToGORMPayment(payment *domain.PaymentRecord) *models.PaymentModel {
	return &models.PaymentModel{
		ID:                payment.ID,
		OrderID:           payment.OrderID,
		RestaurantID:      payment.RestaurantID,
		ProviderCode:      payment.ProviderCode,
		ProviderPaymentID: payment.ProviderPaymentID,
		Amount:            payment.Amount,
		Currency:          payment.Currency,
		Status:            payment.Status,
		Metadata:          payment.MetadataJSON,
		CreatedAt:         payment.CreatedAt,
		UpdatedAt:         payment.UpdatedAt,
	}
}

func ToDomainPayment(model *models.PaymentModel) *domain.PaymentRecord {
	return &domain.PaymentRecord{
		ID:                model.ID,
		OrderID:           model.OrderID,
		RestaurantID:      model.RestaurantID,
		ProviderCode:      model.ProviderCode,
		ProviderPaymentID: model.ProviderPaymentID,
		Amount:            model.Amount,
		Currency:          model.Currency,
		Status:            model.Status,
		MetadataJSON:      model.Metadata,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}
