package models

import (
	"time"

	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
)

type PaymentModel struct {
	ID                string `gorm:"primaryKey"`
	OrderID           string `gorm:"index:idx_payment_order"`
	RestaurantID      string `gorm:"index:idx_payment_restaurant"`
	ProviderCode      string
	ProviderPaymentID string `gorm:"index:idx_provider_payment_id"`
	Amount            float64
	Currency          string
	Status            domain.PaymentStatus `gorm:"index:idx_payment_status"`
	Metadata          string               `gorm:"type:jsonb"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
