package repository

import (
	"errors"

	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/postgres/mappers"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultIntegrationConfigRepository struct {
	DB *gorm.DB
}

func NewDefaultIntegrationConfigRepository(db *gorm.DB) *DefaultIntegrationConfigRepository {
	return &DefaultIntegrationConfigRepository{DB: db}
}

// GetIntegrationConfig returns (nil, nil) for restaurants without an
// integration row; callers additionally check Enabled on present configs.
func (r *DefaultIntegrationConfigRepository) GetIntegrationConfig(restaurantID string) (*domain.IntegrationConfig, error) {
	var cfg models.IntegrationConfigModel
	if err := r.DB.First(&cfg, "restaurant_id = ?", restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainIntegrationConfig(&cfg), nil
}
