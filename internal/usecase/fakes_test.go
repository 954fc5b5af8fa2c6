package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
)

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*domain.PaymentRecord
	updates  int

	updateErr error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[string]*domain.PaymentRecord{}}
}

func (r *fakePaymentRepo) CreatePayment(payment *domain.PaymentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *payment
	r.payments[payment.ID] = &copied
	return nil
}

func (r *fakePaymentRepo) GetPaymentByID(paymentID string) (*domain.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.payments[paymentID]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	copied := *payment
	return &copied, nil
}

func (r *fakePaymentRepo) GetPaymentByProviderID(providerPaymentID string) (*domain.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, payment := range r.payments {
		if payment.ProviderPaymentID == providerPaymentID {
			copied := *payment
			return &copied, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

func (r *fakePaymentRepo) UpdatePayment(payment *domain.PaymentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updates++
	copied := *payment
	r.payments[payment.ID] = &copied
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order

	paymentInfoWrites []domain.OrderPaymentInfo
	providerStates    []domain.OrderProviderState
	updateProviderErr error
	updatePaymentErr  error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*domain.Order{}}
}

func (r *fakeOrderRepo) GetOrderByID(orderID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) GetOrderByExternalID(externalID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.ExternalID == externalID {
			copied := *order
			return &copied, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *fakeOrderRepo) UpdatePaymentInfo(orderID string, info domain.OrderPaymentInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updatePaymentErr != nil {
		return r.updatePaymentErr
	}
	r.paymentInfoWrites = append(r.paymentInfoWrites, info)
	if order, ok := r.orders[orderID]; ok {
		order.PaymentID = info.PaymentID
		order.PaymentStatus = info.PaymentStatus
		order.PaymentProvider = info.PaymentProvider
	}
	return nil
}

func (r *fakeOrderRepo) UpdateProviderState(orderID string, state domain.OrderProviderState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateProviderErr != nil {
		return r.updateProviderErr
	}
	r.providerStates = append(r.providerStates, state)
	if order, ok := r.orders[orderID]; ok {
		order.ProviderStatus = state.Status
		order.ProviderOrderID = state.OrderID
		order.ProviderError = state.Error
		order.ProviderPayload = state.Payload
		order.ProviderSyncedAt = state.SyncedAt
	}
	return nil
}

type fakeJobLogRepo struct {
	mu      sync.Mutex
	entries []*domain.IntegrationJobLog
}

func (r *fakeJobLogRepo) Append(entry *domain.IntegrationJobLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *entry
	r.entries = append(r.entries, &copied)
	return nil
}

func (r *fakeJobLogRepo) ListByOrderID(orderID string) ([]*domain.IntegrationJobLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.IntegrationJobLog
	for _, entry := range r.entries {
		if entry.OrderID == orderID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type fakeGateway struct {
	createCalls int
	fetchCalls  int

	createResult *domain.GatewayPayment
	createErr    error
	fetchResult  *domain.GatewayPayment
	fetchErr     error

	lastInput *domain.GatewayPaymentInput
}

func (g *fakeGateway) CreatePayment(ctx context.Context, input *domain.GatewayPaymentInput) (*domain.GatewayPayment, error) {
	g.createCalls++
	g.lastInput = input
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.createResult, nil
}

func (g *fakeGateway) FetchPaymentStatus(ctx context.Context, providerPaymentID string) (*domain.GatewayPayment, error) {
	g.fetchCalls++
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	return g.fetchResult, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.PaymentEvent
	err    error
}

func (p *fakePublisher) PublishPaymentEvent(event domain.PaymentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

type fakePosClient struct {
	calls  int
	result *domain.PosDispatchResult
	err    error
	panics bool
}

func (c *fakePosClient) CreateOrder(ctx context.Context, cfg *domain.IntegrationConfig, order *domain.Order) (*domain.PosDispatchResult, error) {
	c.calls++
	if c.panics {
		panic("pos client blew up")
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}

type fakeNotificationRepo struct {
	mu      sync.Mutex
	pending []*domain.BookingNotification
	sent    []string
	failed  map[string]string

	fetchErr error
	// fetchStarted/fetchRelease allow a test to hold a run open
	fetchStarted chan struct{}
	fetchRelease chan struct{}
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{failed: map[string]string{}}
}

func (r *fakeNotificationRepo) CreateNotification(notification *domain.BookingNotification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, notification)
	return nil
}

func (r *fakeNotificationRepo) FetchPending(limit int) ([]*domain.BookingNotification, error) {
	if r.fetchStarted != nil {
		r.fetchStarted <- struct{}{}
		<-r.fetchRelease
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	if len(r.pending) > limit {
		return r.pending[:limit], nil
	}
	return r.pending, nil
}

func (r *fakeNotificationRepo) MarkSent(notificationID string, sentAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, notificationID)
	return nil
}

func (r *fakeNotificationRepo) MarkFailed(notificationID string, dispatchError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed[notificationID] = dispatchError
	return nil
}

type fakeSender struct {
	mu        sync.Mutex
	sent      []string
	overrides []string
	failFor   map[string]error
}

func (s *fakeSender) SendMessage(ctx context.Context, recipientID, text, tokenOverride string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failFor[recipientID]; ok {
		return err
	}
	s.sent = append(s.sent, recipientID)
	s.overrides = append(s.overrides, tokenOverride)
	return nil
}

var errSendRejected = errors.New("chat not found")
