package mappers

import (
	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/postgres/models"
)

func ToGORMJobLog(entry *domain.IntegrationJobLog) *models.IntegrationJobLogModel {
	return &models.IntegrationJobLogModel{
		ID:           entry.ID,
		Provider:     entry.Provider,
		RestaurantID: entry.RestaurantID,
		OrderID:      entry.OrderID,
		Action:       entry.Action,
		Status:       entry.Status,
		Payload:      entry.PayloadJSON,
		Error:        entry.Error,
		CreatedAt:    entry.CreatedAt,
	}
}

func ToDomainJobLog(model *models.IntegrationJobLogModel) *domain.IntegrationJobLog {
	return &domain.IntegrationJobLog{
		ID:           model.ID,
		Provider:     model.Provider,
		RestaurantID: model.RestaurantID,
		OrderID:      model.OrderID,
		Action:       model.Action,
		Status:       model.Status,
		PayloadJSON:  model.Payload,
		Error:        model.Error,
		CreatedAt:    model.CreatedAt,
	}
}
