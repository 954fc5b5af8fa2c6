package models

import (
	"time"

	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
)

type OrderModel struct {
	ID           string `gorm:"primaryKey"`
	ExternalID   string `gorm:"index:idx_order_external_id"`
	RestaurantID string `gorm:"index:idx_order_restaurant"`
	Status       string
	Total        float64
	Items        string `gorm:"type:jsonb"`
	OrderType    string
	Phone        string
	Address      string
	Comment      string

	PaymentID       string `gorm:"index:idx_order_payment"`
	PaymentStatus   domain.PaymentStatus
	PaymentProvider string

	ProviderOrderID  string
	ProviderStatus   string
	ProviderError    string
	ProviderPayload  string `gorm:"type:jsonb"`
	ProviderSyncedAt *time.Time

	CreatedAt time.Time `gorm:"index:idx_order_created_at"`
	UpdatedAt time.Time
}
