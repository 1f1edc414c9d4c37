package feed

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Refresher coalesces refresh triggers and applies only the result of
// the most recently initiated load. A fetch superseded by a newer
// trigger is discarded entirely even if its result arrives later:
// last requested wins, not last arrived.
type Refresher struct {
	store    *Store
	loader   Loader
	debounce time.Duration
	logger   *slog.Logger
	onUpdate func(Snapshot)

	generation atomic.Uint64

	mu    sync.Mutex
	timer *time.Timer
}

func NewRefresher(store *Store, loader Loader, debounce time.Duration, logger *slog.Logger, onUpdate func(Snapshot)) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		store:    store,
		loader:   loader,
		debounce: debounce,
		logger:   logger,
		onUpdate: onUpdate,
	}
}

// Trigger requests a refresh. Triggers arriving within the debounce
// window collapse into a single load.
func (r *Refresher) Trigger() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.debounce, func() {
		r.refresh(context.Background())
	})
}

// RefreshNow bypasses the debounce window. Used by the startup path and
// the periodic poll job.
func (r *Refresher) RefreshNow(ctx context.Context) error {
	return r.refresh(ctx)
}

func (r *Refresher) refresh(ctx context.Context) error {
	gen := r.generation.Add(1)
	start := time.Now()

	snap, err := r.loader.Load(ctx)
	if err != nil {
		// Keep serving the last good snapshot; staleness signaling is a
		// presentation concern.
		r.logger.Error("feed refresh failed, keeping previous snapshot", "error", err)
		return err
	}

	applied, ok := r.store.ReconcileIfCurrent(snap, gen, &r.generation)
	if !ok {
		r.logger.Debug("feed refresh superseded, discarding result", "generation", gen)
		return nil
	}
	r.logger.Info("feed refreshed",
		"records", len(applied.Records),
		"version", applied.Version,
		"duration", time.Since(start))
	if r.onUpdate != nil {
		r.onUpdate(applied)
	}
	return nil
}

// Stop cancels any pending debounced refresh.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
