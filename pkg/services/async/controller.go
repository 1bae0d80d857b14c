package async

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/de-tools/csr-atlas/pkg/metrics"
	"github.com/de-tools/csr-atlas/pkg/models/domain"
	"github.com/de-tools/csr-atlas/pkg/services/state"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrOperationNotRunning = errors.New("operation not running")
	ErrControllerClosed    = errors.New("operation controller closed")
)

// Task is the body of an operation. It runs on its own goroutine.
type Task[T any] func(ctx context.Context) (T, error)

// Fulfil builds the action that commits a task's result to the store.
type Fulfil[T any] func(operationID string, value T, at time.Time) state.Action

type operationDescriptor struct {
	kind       domain.OperationKind
	cancelFunc context.CancelFunc
	done       <-chan struct{}
}

// Controller starts operations, tracks the ones still in flight and records
// each one's lifecycle in the store as pending, then fulfilled or rejected.
type Controller struct {
	store *state.Store
	now   func() time.Time

	mu         sync.Mutex
	closed     bool
	operations map[string]operationDescriptor
	wg         sync.WaitGroup
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

func NewController(store *state.Store, opts ...Option) *Controller {
	c := &Controller{
		store:      store,
		now:        time.Now,
		operations: make(map[string]operationDescriptor),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run starts task as a new operation of the given kind. The operation outlives
// ctx's cancellation (it keeps ctx's values, e.g. the logger) and is only
// stopped by Cancel or Shutdown.
func Run[T any](ctx context.Context, c *Controller, kind domain.OperationKind, task Task[T], fulfil Fulfil[T]) (*Future[T], error) {
	id := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().
		Str("operation_id", id).
		Str("kind", string(kind)).
		Logger()

	opCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	opCtx = logger.WithContext(opCtx)
	future := newFuture[T](id)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		cancel()
		return nil, ErrControllerClosed
	}
	c.operations[id] = operationDescriptor{kind: kind, cancelFunc: cancel, done: future.Done()}
	c.wg.Add(1)
	c.mu.Unlock()

	startedAt := c.now()
	c.store.Dispatch(state.OperationStarted{ID: id, Kind: kind, At: startedAt})
	metrics.OperationsInFlight.WithLabelValues(string(kind)).Inc()
	logger.Debug().Msg("operation started")

	go func() {
		defer c.wg.Done()
		defer cancel()

		value, err := task(opCtx)
		at := c.now()

		phase := domain.OperationFulfilled
		if err != nil {
			phase = domain.OperationRejected
			c.store.Dispatch(state.OperationRejected{ID: id, Error: err.Error(), At: at})
			logger.Error().Err(err).Msg("operation rejected")
		} else {
			c.store.Dispatch(fulfil(id, value, at))
			logger.Debug().Msg("operation fulfilled")
		}

		metrics.OperationsInFlight.WithLabelValues(string(kind)).Dec()
		metrics.RecordOperation(string(kind), string(phase), at.Sub(startedAt))

		c.mu.Lock()
		delete(c.operations, id)
		c.mu.Unlock()

		future.resolve(value, err)
	}()

	return future, nil
}

// Cancel stops a running operation and waits for it to settle. The operation
// ends up rejected with the context's error unless it already completed.
func (c *Controller) Cancel(_ context.Context, id string) error {
	c.mu.Lock()
	desc, ok := c.operations[id]
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrOperationNotRunning, id)
	}

	desc.cancelFunc()
	<-desc.done
	return nil
}

// InFlight returns the number of operations that have not settled yet.
func (c *Controller) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.operations)
}

// Shutdown refuses new operations, cancels the running ones and waits for
// them until ctx expires.
func (c *Controller) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	c.closed = true
	for _, desc := range c.operations {
		desc.cancelFunc()
	}
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
