package domain

import "context"

type GatewayPaymentInput struct {
	Amount      float64
	Currency    string
	Description string
	ReturnURL   string
	Metadata    map[string]string
}

type GatewayPayment struct {
	ProviderPaymentID string
	Status            string
	ConfirmationURL   string
	UsedFallback      bool
	RawPayload        string
}

type PaymentGatewayPort interface {
	CreatePayment(ctx context.Context, input *GatewayPaymentInput) (*GatewayPayment, error)
	FetchPaymentStatus(ctx context.Context, providerPaymentID string) (*GatewayPayment, error)
}
