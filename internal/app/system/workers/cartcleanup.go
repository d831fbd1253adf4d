// internal/app/system/workers/cartcleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	cartstore "github.com/dalemusser/storefront/internal/app/store/carts"
	"go.uber.org/zap"
)

// CartCleanup is a background worker that deletes abandoned carts.
type CartCleanup struct {
	carts          *cartstore.Store
	log            *zap.Logger
	interval       time.Duration
	staleThreshold time.Duration
	stopCh         chan struct{}
	wg             sync.WaitGroup
}

// NewCartCleanup creates a new cart cleanup worker.
//
// Parameters:
//   - carts: the cart store
//   - logger: zap logger for logging
//   - interval: how often to run cleanup (e.g., 1 hour)
//   - staleThreshold: how long a cart must sit untouched before deletion (e.g., 30 days)
func NewCartCleanup(carts *cartstore.Store, logger *zap.Logger, interval, staleThreshold time.Duration) *CartCleanup {
	return &CartCleanup{
		carts:          carts,
		log:            logger,
		interval:       interval,
		staleThreshold: staleThreshold,
		stopCh:         make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *CartCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("cart cleanup worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("stale_threshold", w.staleThreshold))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *CartCleanup) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("cart cleanup worker stopped")
}

func (w *CartCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.cleanup()
		}
	}
}

func (w *CartCleanup) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.carts.DeleteStale(ctx, w.staleThreshold)
	if err != nil {
		w.log.Error("failed to delete abandoned carts", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("deleted abandoned carts", zap.Int64("count", count))
	}
}
