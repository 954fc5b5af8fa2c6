package iiko

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"89261234567", "+79261234567"},
		{"79261234567", "+79261234567"},
		{"+79261234567", "+79261234567"},
		{"8 (926) 123-45-67", "+79261234567"},
		// short numbers are passed through as supplied digits
		{"1234567", "1234567"},
		{"+49301234567", "+49301234567"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizePhone(tt.in); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func testConfig() *domain.IntegrationConfig {
	return &domain.IntegrationConfig{
		RestaurantID:    "rest-1",
		Enabled:         true,
		OrganizationID:  "org-1",
		TerminalGroupID: "tg-1",
		APILogin:        "login-1",
	}
}

func TestBuildOrderPayloadPickupOmitsDeliveryPoint(t *testing.T) {
	order := &domain.Order{
		ID:        "order-1",
		OrderType: domain.OrderTypePickup,
		Phone:     "89261234567",
		Address:   "Tverskaya 1", // адрес заполнен, но не должен попасть в payload
	}

	payload := buildOrderPayload(testConfig(), order)
	if payload.Order.DeliveryPoint != nil {
		t.Fatalf("pickup order must not have a deliveryPoint, got %+v", payload.Order.DeliveryPoint)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if strings.Contains(string(raw), "deliveryPoint") {
		t.Errorf("serialized payload must omit deliveryPoint entirely: %s", raw)
	}
}

func TestBuildOrderPayloadDeliveryKeepsAddress(t *testing.T) {
	order := &domain.Order{
		ID:        "order-1",
		OrderType: domain.OrderTypeDelivery,
		Phone:     "89261234567",
		Address:   "Tverskaya 1",
	}

	payload := buildOrderPayload(testConfig(), order)
	if payload.Order.DeliveryPoint == nil {
		t.Fatal("delivery order must carry a deliveryPoint")
	}
	if payload.Order.DeliveryPoint.Comment != "Tverskaya 1" {
		t.Errorf("deliveryPoint comment = %q, want %q", payload.Order.DeliveryPoint.Comment, "Tverskaya 1")
	}
}

func TestBuildOrderPayloadPaymentLine(t *testing.T) {
	tests := []struct {
		name          string
		paymentTypeID string
		total         float64
		wantPayments  int
	}{
		{"payment type and positive total", "pt-1", 500, 1},
		{"no payment type", "", 500, 0},
		{"zero total", "pt-1", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.DefaultPaymentTypeID = tt.paymentTypeID
			order := &domain.Order{ID: "order-1", Total: tt.total, Phone: "89261234567"}

			payload := buildOrderPayload(cfg, order)
			if len(payload.Order.Payments) != tt.wantPayments {
				t.Fatalf("payments count = %d, want %d", len(payload.Order.Payments), tt.wantPayments)
			}
			if tt.wantPayments == 1 {
				p := payload.Order.Payments[0]
				if p.Sum != tt.total || p.PaymentTypeID != tt.paymentTypeID || !p.IsProcessedExternally {
					t.Errorf("unexpected payment line: %+v", p)
				}
			}
		})
	}
}

func TestBuildOrderPayloadNormalizesPhone(t *testing.T) {
	order := &domain.Order{ID: "order-1", Phone: "89261234567"}
	payload := buildOrderPayload(testConfig(), order)
	if payload.Order.Phone != "+79261234567" {
		t.Errorf("payload phone = %q, want %q", payload.Order.Phone, "+79261234567")
	}
}
