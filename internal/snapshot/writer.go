package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/you-humble/pc-builder/internal/model"
	"github.com/you-humble/pc-builder/platform/logger"
)

const defaultWriteTimeout = 5 * time.Second

type Store interface {
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type op struct {
	remove bool
	value  string
}

// writer persists snapshots in the background. Per key it keeps only the
// latest pending operation and runs at most one write at a time, so the
// stored value always converges to the last enqueued one.
type writer struct {
	store   Store
	timeout time.Duration

	mu       sync.Mutex
	pending  map[string]op
	inflight map[string]struct{}
	idle     chan struct{}
	busy     bool
	closed   bool
}

func NewWriter(store Store, writeTimeout time.Duration) *writer {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	idle := make(chan struct{})
	close(idle)

	return &writer{
		store:    store,
		timeout:  writeTimeout,
		pending:  make(map[string]op),
		inflight: make(map[string]struct{}),
		idle:     idle,
	}
}

// Save enqueues value for key and returns immediately.
func (w *writer) Save(key, value string) error {
	return w.enqueue(key, op{value: value})
}

// Delete enqueues removal of key and returns immediately.
func (w *writer) Delete(key string) error {
	return w.enqueue(key, op{remove: true})
}

// Flush blocks until every enqueued operation has been attempted.
func (w *writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	idle := w.idle
	w.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close rejects new work and waits for queued writes.
func (w *writer) Close(ctx context.Context) error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	return w.Flush(ctx)
}

func (w *writer) enqueue(key string, o op) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return model.ErrWriterClosed
	}

	w.pending[key] = o
	if !w.busy {
		w.busy = true
		w.idle = make(chan struct{})
	}
	if _, running := w.inflight[key]; !running {
		w.inflight[key] = struct{}{}
		go w.drain(key)
	}

	return nil
}

func (w *writer) drain(key string) {
	for {
		w.mu.Lock()
		o, ok := w.pending[key]
		if !ok {
			delete(w.inflight, key)
			if len(w.inflight) == 0 && w.busy {
				w.busy = false
				close(w.idle)
			}
			w.mu.Unlock()
			return
		}
		delete(w.pending, key)
		w.mu.Unlock()

		w.apply(key, o)
	}
}

func (w *writer) apply(key string, o op) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	log := logger.With(
		logger.String("key", key),
		logger.Bool("remove", o.remove),
	)

	var err error
	if o.remove {
		err = w.store.Remove(ctx, key)
	} else {
		err = w.store.Set(ctx, key, o.value)
	}
	if err != nil {
		log.Error(ctx, "snapshot write failed", logger.ErrorF(err))
		return
	}

	log.Debug(ctx, "snapshot written", logger.Int("bytes", len(o.value)))
}
