package mappers

import (
	"encoding/json"

	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/postgres/models"
)

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	items, _ := json.Marshal(order.Items)
	return &models.OrderModel{
		ID:               order.ID,
		ExternalID:       order.ExternalID,
		RestaurantID:     order.RestaurantID,
		Status:           order.Status,
		Total:            order.Total,
		Items:            string(items),
		OrderType:        order.OrderType,
		Phone:            order.Phone,
		Address:          order.Address,
		Comment:          order.Comment,
		PaymentID:        order.PaymentID,
		PaymentStatus:    order.PaymentStatus,
		PaymentProvider:  order.PaymentProvider,
		ProviderOrderID:  order.ProviderOrderID,
		ProviderStatus:   order.ProviderStatus,
		ProviderError:    order.ProviderError,
		ProviderPayload:  order.ProviderPayload,
		ProviderSyncedAt: order.ProviderSyncedAt,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	var items []domain.OrderItem
	if model.Items != "" {
		json.Unmarshal([]byte(model.Items), &items)
	}
	return &domain.Order{
		ID:               model.ID,
		ExternalID:       model.ExternalID,
		RestaurantID:     model.RestaurantID,
		Status:           model.Status,
		Total:            model.Total,
		Items:            items,
		OrderType:        model.OrderType,
		Phone:            model.Phone,
		Address:          model.Address,
		Comment:          model.Comment,
		PaymentID:        model.PaymentID,
		PaymentStatus:    model.PaymentStatus,
		PaymentProvider:  model.PaymentProvider,
		ProviderOrderID:  model.ProviderOrderID,
		ProviderStatus:   model.ProviderStatus,
		ProviderError:    model.ProviderError,
		ProviderPayload:  model.ProviderPayload,
		ProviderSyncedAt: model.ProviderSyncedAt,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}
