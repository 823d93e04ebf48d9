package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/stitchcraft/stitchcraft/internal/adapter/paystack"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/usecase"
)

// CheckoutFacade exposes the subset of application functionality required by the reconciler.
type CheckoutFacade interface {
	PendingCheckouts(ctx context.Context, staleAfter time.Duration, limit int) ([]model.PaymentIntent, error)
	VerifyCheckout(ctx context.Context, reference string) (*usecase.VerifyResult, error)
}

// Reconciler polls pending checkouts and verifies them with the provider concurrently.
type Reconciler struct {
	facade       CheckoutFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *zap.Logger

	jobs        chan model.PaymentIntent
	wg          sync.WaitGroup
	cancel      context.CancelFunc
	mu          sync.Mutex
	pausedUntil time.Time
}

// NewReconciler constructs the reconciler worker pool.
func NewReconciler(facade CheckoutFacade, pollInterval time.Duration, batchSize, workers int, logger *zap.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.PaymentIntent, batchSize*workers),
	}
}

// Start launches background processing.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if r.paused() {
				continue
			}
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	intents, err := r.facade.PendingCheckouts(ctx, r.pollInterval, r.batchSize)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Error("fetch pending checkouts failed", zap.Error(err))
		}
		return
	}
	for _, intent := range intents {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- intent:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case intent, ok := <-r.jobs:
			if !ok {
				return
			}
			r.handleIntent(ctx, intent)
		}
	}
}

func (r *Reconciler) handleIntent(ctx context.Context, intent model.PaymentIntent) {
	log := r.logger.With(zap.String("reference", intent.Reference), zap.Int("attempt", intent.Attempts))
	result, err := r.facade.VerifyCheckout(ctx, intent.Reference)
	if err != nil {
		var limited paystack.TooManyRequestsError
		if errors.As(err, &limited) {
			log.Warn("paystack rate limited", zap.Duration("retry_after", limited.RetryAfter))
			r.pause(limited.RetryAfter)
			sleep(ctx, limited.RetryAfter)
			return
		}
		if ctx.Err() == nil {
			log.Error("verify checkout failed", zap.Error(err))
		}
		return
	}

	if result.Intent != nil && result.Intent.Status != model.IntentStatusPending {
		log.Info("checkout settled", zap.String("status", string(result.Intent.Status)))
	}
}

func (r *Reconciler) pause(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until := time.Now().Add(d)
	if until.After(r.pausedUntil) {
		r.pausedUntil = until
	}
}

func (r *Reconciler) paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Now().Before(r.pausedUntil)
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
