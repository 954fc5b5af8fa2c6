package domain

import (
	"context"
	"time"
)

// IntegrationConfig holds per-restaurant POS integration settings.
type IntegrationConfig struct {
	RestaurantID         string
	Enabled              bool
	OrganizationID       string
	TerminalGroupID      string
	APILogin             string
	DefaultPaymentTypeID string
}

// IntegrationConfigProvider returns the POS settings for a restaurant.
// A nil config with nil error means the restaurant has no integration.
type IntegrationConfigProvider interface {
	GetIntegrationConfig(restaurantID string) (*IntegrationConfig, error)
}

type JobLogStatus string

const (
	JobLogStatusPending JobLogStatus = "pending"
	JobLogStatusSuccess JobLogStatus = "success"
	JobLogStatusError   JobLogStatus = "error"
)

// IntegrationJobLog is an append-only audit entry of a dispatch attempt.
// Entries are never mutated after insert.
type IntegrationJobLog struct {
	ID           string
	Provider     string
	RestaurantID string
	OrderID      string
	Action       string
	Status       JobLogStatus
	PayloadJSON  string
	Error        string
	CreatedAt    time.Time
}

type JobLogRepository interface {
	Append(entry *IntegrationJobLog) error
	ListByOrderID(orderID string) ([]*IntegrationJobLog, error)
}

// PosDispatchResult is the structured outcome of a POS order-create call.
// Validation and provider rejections land here with Success=false; transport
// failures are returned as errors by the client instead.
type PosDispatchResult struct {
	Success      bool
	OrderID      string
	Status       string
	Error        string
	PayloadJSON  string
	ResponseJSON string
}

type PosClientPort interface {
	CreateOrder(ctx context.Context, cfg *IntegrationConfig, order *Order) (*PosDispatchResult, error)
}
