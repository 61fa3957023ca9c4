package audit

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrQueueFull = errors.New("audit queue full")
	ErrClosed    = errors.New("audit sink closed")
)

const (
	DefaultQueueSize   = 256
	DefaultSendTimeout = 10 * time.Second
)

type queued struct {
	ctx context.Context
	e   Entry
}

// Async saca el envío del request: Log encola y vuelve enseguida, un worker
// reenvía al sink real. Con la cola llena la entrada se descarta (ErrQueueFull).
type Async struct {
	next    Sink
	queue   chan queued
	timeout time.Duration
	onError func(Entry, error)

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewAsync arranca el worker. onError recibe los fallos del sink real
// (puede ser nil).
func NewAsync(next Sink, size int, onError func(Entry, error)) *Async {
	if size <= 0 {
		size = DefaultQueueSize
	}
	a := &Async{
		next:    next,
		queue:   make(chan queued, size),
		timeout: DefaultSendTimeout,
		onError: onError,
	}
	a.wg.Add(1)
	go a.run()
	return a
}

func (a *Async) Log(ctx context.Context, e Entry) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrClosed
	}

	// El request puede terminar antes que el envío.
	select {
	case a.queue <- queued{ctx: context.WithoutCancel(ctx), e: e}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close deja de aceptar entradas y espera a que se envíen las encoladas.
func (a *Async) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()
	a.wg.Wait()
}

func (a *Async) run() {
	defer a.wg.Done()
	for q := range a.queue {
		ctx, cancel := context.WithTimeout(q.ctx, a.timeout)
		err := a.next.Log(ctx, q.e)
		cancel()
		if err != nil && a.onError != nil {
			a.onError(q.e, err)
		}
	}
}
