package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/stitchcraft/stitchcraft/internal/adapter/paystack"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	testhelpers "github.com/stitchcraft/stitchcraft/internal/test"
	"github.com/stitchcraft/stitchcraft/internal/usecase"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.After(timeout)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for condition")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func verifiedCount(facade *testhelpers.WorkerFacadeStub) int {
	facade.Lock()
	defer facade.Unlock()
	return len(facade.Verified)
}

func TestNewReconcilerDefaults(t *testing.T) {
	rec := NewReconciler(&testhelpers.WorkerFacadeStub{}, 0, 0, 0, nil)
	if rec.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", rec.batchSize)
	}
	if rec.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", rec.workers)
	}
	if rec.pollInterval != time.Second {
		t.Fatalf("expected poll interval default to 1s, got %s", rec.pollInterval)
	}
}

func TestReconcilerVerifiesPendingCheckouts(t *testing.T) {
	defer goleak.VerifyNone(t)

	facade := &testhelpers.WorkerFacadeStub{Batches: [][]model.PaymentIntent{
		{{Reference: "SC-1"}, {Reference: "SC-2"}},
		{{Reference: "SC-3"}},
	}}
	rec := NewReconciler(facade, 5*time.Millisecond, 2, 2, zap.NewNop())
	rec.Start(context.Background())

	waitFor(t, time.Second, func() bool { return verifiedCount(facade) == 3 })
	rec.Stop()

	if facade.FetchCalls() < 2 {
		t.Fatalf("expected at least two fetches, got %d", facade.FetchCalls())
	}
}

func TestReconcilerBacksOffWhenRateLimited(t *testing.T) {
	defer goleak.VerifyNone(t)

	var attempts int32
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.PaymentIntent{{{Reference: "SC-1"}}, {{Reference: "SC-1"}}},
	}
	facade.VerifyFn = func(_ context.Context, reference string) (*usecase.VerifyResult, error) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return nil, paystack.TooManyRequestsError{RetryAfter: 30 * time.Millisecond}
		}
		facade.Lock()
		facade.Verified = append(facade.Verified, reference)
		facade.Unlock()
		return &usecase.VerifyResult{Intent: &model.PaymentIntent{Reference: reference, Status: model.IntentStatusSucceeded}}, nil
	}

	rec := NewReconciler(facade, 5*time.Millisecond, 1, 1, zap.NewNop())
	started := time.Now()
	rec.Start(context.Background())

	waitFor(t, time.Second, func() bool { return verifiedCount(facade) == 1 })
	rec.Stop()

	if elapsed := time.Since(started); elapsed < 30*time.Millisecond {
		t.Fatalf("expected retry after backoff, retried after %s", elapsed)
	}
}

func TestReconcilerKeepsRunningAfterFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	var calls int32
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.PaymentIntent{{{Reference: "SC-1"}}, {{Reference: "SC-2"}}},
		VerifyFn: func(context.Context, string) (*usecase.VerifyResult, error) {
			atomic.AddInt32(&calls, 1)
			return nil, errors.New("provider down")
		},
	}
	rec := NewReconciler(facade, 5*time.Millisecond, 1, 1, zap.NewNop())
	rec.Start(context.Background())

	waitFor(t, time.Second, func() bool { return atomic.LoadInt32(&calls) == 2 })
	rec.Stop()
}

func TestReconcilerStopsWithParentContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := NewReconciler(&testhelpers.WorkerFacadeStub{}, 5*time.Millisecond, 1, 2, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	rec.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		rec.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected workers to exit")
	}
}
