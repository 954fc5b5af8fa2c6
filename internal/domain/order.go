package domain

import "time"

const (
	OrderTypeDelivery = "delivery"
	OrderTypePickup   = "pickup"
)

const (
	ProviderStatusPending = "pending"
	ProviderStatusError   = "error"
)

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Amount    float64 `json:"amount"`
}

type Order struct {
	ID           string
	ExternalID   string
	RestaurantID string
	Status       string
	Total        float64
	Items        []OrderItem
	OrderType    string
	Phone        string
	Address      string
	Comment      string

	// зеркало платежа (см. PaymentRecord)
	PaymentID       string
	PaymentStatus   PaymentStatus
	PaymentProvider string

	// POS sync state
	ProviderOrderID  string
	ProviderStatus   string
	ProviderError    string
	ProviderPayload  string
	ProviderSyncedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderPaymentInfo is the payment mirror written onto the order whenever a
// PaymentRecord changes. The write is separate from the payment update and
// not transactional with it.
type OrderPaymentInfo struct {
	PaymentID       string
	PaymentStatus   PaymentStatus
	PaymentProvider string
}

type OrderProviderState struct {
	Status   string
	OrderID  string
	Error    string
	Payload  string
	SyncedAt *time.Time
}

type OrderRepository interface {
	GetOrderByID(orderID string) (*Order, error)
	GetOrderByExternalID(externalID string) (*Order, error)
	UpdatePaymentInfo(orderID string, info OrderPaymentInfo) error
	UpdateProviderState(orderID string, state OrderProviderState) error
}
