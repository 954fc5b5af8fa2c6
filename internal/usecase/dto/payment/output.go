package payment

import "github.com/marchelxyz/mariko-vld-sub000/internal/domain"

type CreatePaymentOutput struct {
	PaymentID         string
	ProviderPaymentID string
	Status            domain.PaymentStatus
	ConfirmationURL   string
	UsedFallback      bool
}

type PaymentStatusOutput struct {
	Payment *domain.PaymentRecord
	Synced  bool
	Source  string
}
