package events

import (
	"context"
	"errors"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// ErrDispatcherClosed is returned by Publish after Close.
var ErrDispatcherClosed = errors.New("event dispatcher closed")

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher interface allows event publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
	Close()
}

type registry struct {
	mu        sync.RWMutex
	listeners map[EventType][]EventHandler
}

func (r *registry) Subscribe(eventType EventType, handler EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners[eventType] = append(r.listeners[eventType], handler)
}

func (r *registry) handlers(eventType EventType) []EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]EventHandler{}, r.listeners[eventType]...)
}

// inMemoryDispatcher invokes handlers synchronously on the publishing goroutine.
type inMemoryDispatcher struct {
	registry
	logger *zap.Logger
}

// NewInMemoryDispatcher creates a synchronous dispatcher instance.
func NewInMemoryDispatcher(logger *zap.Logger) Dispatcher {
	return &inMemoryDispatcher{
		registry: registry{listeners: make(map[EventType][]EventHandler)},
		logger:   logger,
	}
}

// Publish synchronously invokes handlers for the given event. Handler errors are
// logged and do not stop the remaining handlers.
func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	for _, handler := range d.handlers(event.Type) {
		if err := handler(ctx, event); err != nil {
			d.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
		}
	}
	return nil
}

func (d *inMemoryDispatcher) Close() {}

// poolDispatcher runs each handler on an ants goroutine pool so request paths do
// not wait on notifications.
type poolDispatcher struct {
	registry
	pool   *ants.Pool
	logger *zap.Logger
	wg     sync.WaitGroup

	// mu orders wg.Add in Publish before wg.Wait in Close.
	mu     sync.RWMutex
	closed bool
}

// NewPoolDispatcher creates an asynchronous dispatcher backed by a pool of size workers.
func NewPoolDispatcher(size int, logger *zap.Logger) (Dispatcher, error) {
	if size <= 0 {
		size = 1
	}
	pool, err := ants.NewPool(size, ants.WithPanicHandler(func(p any) {
		logger.Error("event handler panicked", zap.Any("panic", p))
	}))
	if err != nil {
		return nil, err
	}
	return &poolDispatcher{
		registry: registry{listeners: make(map[EventType][]EventHandler)},
		pool:     pool,
		logger:   logger,
	}, nil
}

// Publish submits every handler to the pool. Handlers get a context detached from
// the request so they survive the response being written.
func (d *poolDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}
	handlerCtx := context.WithoutCancel(ctx)
	for _, handler := range d.handlers(event.Type) {
		handler := handler
		d.wg.Add(1)
		err := d.pool.Submit(func() {
			defer d.wg.Done()
			if err := handler(handlerCtx, event); err != nil {
				d.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
			}
		})
		if err != nil {
			d.wg.Done()
			return err
		}
	}
	return nil
}

// Close rejects further events, waits for in-flight handlers and releases the
// pool. It is safe to call more than once.
func (d *poolDispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()
	d.wg.Wait()
	d.pool.Release()
}
