package domain

type PaymentEvent struct {
	PaymentID    string  `json:"payment_id"`
	OrderID      string  `json:"order_id"`
	RestaurantID string  `json:"restaurant_id"`
	Status       string  `json:"status"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}

type PaymentEventPublisher interface {
	PublishPaymentEvent(event PaymentEvent) error
}
