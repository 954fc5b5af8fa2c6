package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusCreated   PaymentStatus = "created"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// IsTerminal: после терминального статуса запись больше не обновляется
func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

// NormalizePaymentStatus maps any provider-reported status onto the local
// status set. The mapping is total: unknown values degrade to failed.
func NormalizePaymentStatus(raw string) PaymentStatus {
	switch raw {
	case "succeeded", "success":
		return PaymentStatusPaid
	case "waiting_for_capture", "pending":
		return PaymentStatusPending
	case "canceled":
		return PaymentStatusCancelled
	case string(PaymentStatusCreated):
		return PaymentStatusCreated
	case string(PaymentStatusPaid):
		return PaymentStatusPaid
	case string(PaymentStatusFailed):
		return PaymentStatusFailed
	case string(PaymentStatusCancelled):
		return PaymentStatusCancelled
	default:
		return PaymentStatusFailed
	}
}

type PaymentRecord struct {
	ID                string
	OrderID           string // empty until the payment is bound to an order
	RestaurantID      string
	ProviderCode      string
	ProviderPaymentID string // empty until the gateway responds
	Amount            float64
	Currency          string
	Status            PaymentStatus
	MetadataJSON      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type PaymentRepository interface {
	CreatePayment(payment *PaymentRecord) error
	GetPaymentByID(paymentID string) (*PaymentRecord, error)
	GetPaymentByProviderID(providerPaymentID string) (*PaymentRecord, error)
	UpdatePayment(payment *PaymentRecord) error
}
