package test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stitchcraft/stitchcraft/internal/adapter/paystack"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/usecase"
)

// WorkerFacadeStub mimics the reconciler's view of the application.
type WorkerFacadeStub struct {
	Batches  [][]model.PaymentIntent
	VerifyFn func(context.Context, string) (*usecase.VerifyResult, error)
	Verified []string

	mu         sync.Mutex
	fetchCalls int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// PendingCheckouts returns batches from the configured queue, then nothing.
func (s *WorkerFacadeStub) PendingCheckouts(ctx context.Context, staleAfter time.Duration, limit int) ([]model.PaymentIntent, error) {
	call := atomic.AddInt32(&s.fetchCalls, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	return nil, nil
}

// FetchCalls reports how many times PendingCheckouts ran.
func (s *WorkerFacadeStub) FetchCalls() int {
	return int(atomic.LoadInt32(&s.fetchCalls))
}

// VerifyCheckout records the reference and marks it succeeded unless overridden.
func (s *WorkerFacadeStub) VerifyCheckout(ctx context.Context, reference string) (*usecase.VerifyResult, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, reference)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Verified = append(s.Verified, reference)
	return &usecase.VerifyResult{Intent: &model.PaymentIntent{Reference: reference, Status: model.IntentStatusSucceeded}}, nil
}

// PaystackStub is an in-memory payment provider.
type PaystackStub struct {
	mu           sync.Mutex
	Initialized  []paystack.InitializeRequest
	Transactions map[string]*paystack.Transaction
	InitErr      error
	VerifyErr    error
}

// NewPaystackStub constructs an empty provider.
func NewPaystackStub() *PaystackStub {
	return &PaystackStub{Transactions: make(map[string]*paystack.Transaction)}
}

// Initialize remembers the request and returns a checkout page for it.
func (p *PaystackStub) Initialize(_ context.Context, req paystack.InitializeRequest) (*paystack.Checkout, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.InitErr != nil {
		return nil, p.InitErr
	}
	p.Initialized = append(p.Initialized, req)
	return &paystack.Checkout{
		AuthorizationURL: "https://checkout.paystack.test/" + req.Reference,
		AccessCode:       fmt.Sprintf("access-%d", len(p.Initialized)),
		Reference:        req.Reference,
	}, nil
}

// Verify returns the transaction set by Settle or ErrTransactionNotFound.
func (p *PaystackStub) Verify(_ context.Context, reference string) (*paystack.Transaction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.VerifyErr != nil {
		return nil, p.VerifyErr
	}
	tx, ok := p.Transactions[reference]
	if !ok {
		return nil, paystack.ErrTransactionNotFound
	}
	out := *tx
	return &out, nil
}

// Settle sets the outcome the provider reports for reference.
func (p *PaystackStub) Settle(reference, status string, minor int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	paidAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	p.Transactions[reference] = &paystack.Transaction{
		Reference: reference,
		Status:    status,
		Amount:    minor,
		Currency:  "GHS",
		PaidAt:    &paidAt,
		Channel:   "mobile_money",
	}
}

// PublishedEvent is a message captured by PublisherStub.
type PublishedEvent struct {
	RoutingKey string
	Payload    any
}

// PublisherStub captures published events.
type PublisherStub struct {
	mu     sync.Mutex
	Events []PublishedEvent
	Err    error
}

// Publish records the event or returns the configured error.
func (p *PublisherStub) Publish(_ context.Context, routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, PublishedEvent{RoutingKey: routingKey, Payload: payload})
	return nil
}

// Close is a no-op.
func (p *PublisherStub) Close() error { return nil }

// Count returns the number of captured events.
func (p *PublisherStub) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Events)
}
