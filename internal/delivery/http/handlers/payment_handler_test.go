package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
)

type fakeJobLog struct {
	entries []*domain.IntegrationJobLog
}

func (r *fakeJobLog) Append(entry *domain.IntegrationJobLog) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeJobLog) ListByOrderID(orderID string) ([]*domain.IntegrationJobLog, error) {
	var out []*domain.IntegrationJobLog
	for _, entry := range r.entries {
		if entry.OrderID == orderID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func paymentRouter(handler *PaymentHandler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/payments", handler.Create).Methods(http.MethodPost)
	router.HandleFunc("/payments/{id}", handler.GetStatus).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}/dispatches", handler.ListDispatches).Methods(http.MethodGet)
	return router
}

func TestCreatePaymentValidation(t *testing.T) {
	handler := NewPaymentHandler(newFakePaymentUsecase(), &fakeJobLog{})
	router := paymentRouter(handler)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{oops`},
		{"no restaurant", `{"amount":500}`},
		{"zero amount", `{"restaurant_id":"rest-1","amount":0}`},
		{"negative amount", `{"restaurant_id":"rest-1","amount":-5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(tt.body))
			router.ServeHTTP(recorder, request)
			if recorder.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", recorder.Code)
			}
		})
	}
}

func TestGetStatusUnknownPayment(t *testing.T) {
	handler := NewPaymentHandler(newFakePaymentUsecase(), &fakeJobLog{})
	router := paymentRouter(handler)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/payments/missing", nil)
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", recorder.Code)
	}
}

func TestGetStatusReturnsPayment(t *testing.T) {
	paymentUsecase := newFakePaymentUsecase()
	paymentUsecase.payments["pay-1"] = &domain.PaymentRecord{
		ID:       "pay-1",
		Amount:   500,
		Currency: "RUB",
		Status:   domain.PaymentStatusPaid,
	}
	router := paymentRouter(NewPaymentHandler(paymentUsecase, &fakeJobLog{}))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/payments/pay-1", nil)
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}

	var response struct {
		Success bool                   `json:"success"`
		Payment map[string]interface{} `json:"payment"`
		Source  string                 `json:"source"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("response json: %v", err)
	}
	if !response.Success || response.Source != "local" {
		t.Errorf("unexpected response envelope: %+v", response)
	}
	if response.Payment["id"] != "pay-1" || response.Payment["status"] != "paid" {
		t.Errorf("unexpected payment view: %v", response.Payment)
	}
}

func TestListDispatches(t *testing.T) {
	jobLog := &fakeJobLog{entries: []*domain.IntegrationJobLog{
		{ID: "j-1", OrderID: "order-1", Provider: "iiko", Action: "create_order", Status: domain.JobLogStatusPending},
		{ID: "j-2", OrderID: "order-1", Provider: "iiko", Action: "create_order", Status: domain.JobLogStatusSuccess},
		{ID: "j-3", OrderID: "order-2", Provider: "iiko", Action: "create_order", Status: domain.JobLogStatusError},
	}}
	router := paymentRouter(NewPaymentHandler(newFakePaymentUsecase(), jobLog))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/orders/order-1/dispatches", nil)
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}

	var response struct {
		Success    bool                     `json:"success"`
		Dispatches []map[string]interface{} `json:"dispatches"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("response json: %v", err)
	}
	if len(response.Dispatches) != 2 {
		t.Fatalf("dispatches = %d, want 2", len(response.Dispatches))
	}
	if response.Dispatches[0]["id"] != "j-1" || response.Dispatches[1]["id"] != "j-2" {
		t.Errorf("unexpected dispatch order: %v", response.Dispatches)
	}
}
