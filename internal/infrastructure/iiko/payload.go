package iiko

import (
	"strings"

	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
)

type orderPayload struct {
	OrganizationID  string    `json:"organizationId"`
	TerminalGroupID string    `json:"terminalGroupId"`
	Order           orderBody `json:"order"`
}

type orderBody struct {
	ExternalNumber   string         `json:"externalNumber,omitempty"`
	Phone            string         `json:"phone"`
	OrderServiceType string         `json:"orderServiceType"`
	DeliveryPoint    *deliveryPoint `json:"deliveryPoint,omitempty"`
	Comment          string         `json:"comment,omitempty"`
	Items            []orderItem    `json:"items"`
	Payments         []orderPayment `json:"payments,omitempty"`
}

type deliveryPoint struct {
	Comment string `json:"comment,omitempty"`
}

type orderItem struct {
	ProductID string  `json:"productId"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	Price     float64 `json:"price"`
}

type orderPayment struct {
	PaymentTypeKind       string  `json:"paymentTypeKind"`
	PaymentTypeID         string  `json:"paymentTypeId"`
	Sum                   float64 `json:"sum"`
	IsProcessedExternally bool    `json:"isProcessedExternally"`
}

// NormalizePhone brings Russian phone numbers to the +7 form the POS expects:
// a leading 8 becomes +7, a bare 11-digit number starting with 7 gets a +,
// anything else is passed through as supplied.
func NormalizePhone(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '+' {
			return r
		}
		return -1
	}, phone)

	if strings.HasPrefix(cleaned, "8") {
		return "+7" + cleaned[1:]
	}
	if strings.HasPrefix(cleaned, "7") && len(cleaned) == 11 {
		return "+" + cleaned
	}
	return cleaned
}

func buildOrderPayload(cfg *domain.IntegrationConfig, order *domain.Order) *orderPayload {
	body := orderBody{
		ExternalNumber:   order.ExternalID,
		Phone:            NormalizePhone(order.Phone),
		OrderServiceType: "DeliveryByCourier",
		Comment:          order.Comment,
		Items:            make([]orderItem, 0, len(order.Items)),
	}

	for _, item := range order.Items {
		body.Items = append(body.Items, orderItem{
			ProductID: item.ProductID,
			Type:      "Product",
			Amount:    item.Amount,
			Price:     item.Price,
		})
	}

	// самовывоз: точка доставки не передается, даже если адрес заполнен
	if order.OrderType == domain.OrderTypePickup {
		body.OrderServiceType = "DeliveryByClient"
	} else if order.Address != "" {
		body.DeliveryPoint = &deliveryPoint{Comment: order.Address}
	}

	if cfg.DefaultPaymentTypeID != "" && order.Total > 0 {
		body.Payments = []orderPayment{{
			PaymentTypeKind:       "Card",
			PaymentTypeID:         cfg.DefaultPaymentTypeID,
			Sum:                   order.Total,
			IsProcessedExternally: true,
		}}
	}

	return &orderPayload{
		OrganizationID:  cfg.OrganizationID,
		TerminalGroupID: cfg.TerminalGroupID,
		Order:           body,
	}
}
