package models

import (
	"time"

	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
)

// IntegrationJobLogModel is append-only: rows are inserted and never updated.
type IntegrationJobLogModel struct {
	ID           string `gorm:"primaryKey"`
	Provider     string
	RestaurantID string `gorm:"index:idx_job_log_restaurant"`
	OrderID      string `gorm:"index:idx_job_log_order"`
	Action       string
	Status       domain.JobLogStatus
	Payload      string `gorm:"type:jsonb"`
	Error        string
	CreatedAt    time.Time `gorm:"index:idx_job_log_created_at"`
}
