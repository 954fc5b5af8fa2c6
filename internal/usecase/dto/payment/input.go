package payment

type CreatePaymentInput struct {
	OrderID      string
	RestaurantID string
	Amount       float64
	Currency     string
	Description  string
	ReturnURL    string
	Metadata     map[string]string
}
