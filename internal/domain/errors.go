package domain

import "errors"

var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrIntegrationDisabled = errors.New("pos integration disabled")
	ErrUnsupportedPlatform = errors.New("unsupported notification platform")
)
