package models

import "time"

type IntegrationConfigModel struct {
	RestaurantID         string `gorm:"primaryKey"`
	Enabled              bool
	OrganizationID       string
	TerminalGroupID      string
	APILogin             string
	DefaultPaymentTypeID string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
