package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/postgres/mappers"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// DefaultJobLogRepository is the append-only audit trail of dispatch
// attempts. There is deliberately no update method.
type DefaultJobLogRepository struct {
	DB *gorm.DB
}

func NewDefaultJobLogRepository(db *gorm.DB) *DefaultJobLogRepository {
	return &DefaultJobLogRepository{DB: db}
}

func (r *DefaultJobLogRepository) Append(entry *domain.IntegrationJobLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return r.DB.Create(mappers.ToGORMJobLog(entry)).Error
}

func (r *DefaultJobLogRepository) ListByOrderID(orderID string) ([]*domain.IntegrationJobLog, error) {
	var logModels []models.IntegrationJobLogModel
	if err := r.DB.Where("order_id = ?", orderID).Order("created_at ASC").Find(&logModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*domain.IntegrationJobLog, 0, len(logModels))
	for i := range logModels {
		entries = append(entries, mappers.ToDomainJobLog(&logModels[i]))
	}
	return entries, nil
}
