package mappers

import (
	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/postgres/models"
)

func ToDomainIntegrationConfig(model *models.IntegrationConfigModel) *domain.IntegrationConfig {
	return &domain.IntegrationConfig{
		RestaurantID:         model.RestaurantID,
		Enabled:              model.Enabled,
		OrganizationID:       model.OrganizationID,
		TerminalGroupID:      model.TerminalGroupID,
		APILogin:             model.APILogin,
		DefaultPaymentTypeID: model.DefaultPaymentTypeID,
	}
}
