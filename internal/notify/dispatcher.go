// Package notify delivers emission alerts to operators without blocking the
// request that raised them.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"carbon_netzero/internal/logger"
	"carbon_netzero/internal/models"

	"golang.org/x/sync/semaphore"
)

const (
	defaultQueueSize   = 64
	defaultWorkers     = 2
	defaultSendTimeout = 15 * time.Second
)

// ErrSkipped is returned by a Sender that has nothing to do for an alert,
// e.g. because no recipient is mapped for the department.
var ErrSkipped = errors.New("notification skipped")

// Sender delivers one alert over one channel.
type Sender interface {
	Name() string
	Send(ctx context.Context, a models.EmissionAlert) error
}

// Options sizes a Dispatcher. Zero values select defaults.
type Options struct {
	QueueSize   int
	Workers     int
	SendTimeout time.Duration
}

// Dispatcher fans alerts out to its senders on a bounded queue with a fixed
// number of concurrent deliveries. Failures are logged and dropped.
type Dispatcher struct {
	senders []Sender
	log     *logger.Logger
	timeout time.Duration

	queue   chan models.EmissionAlert
	sem     *semaphore.Weighted
	workers int64

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher starts a dispatcher. Close must be called to stop it.
func NewDispatcher(log *logger.Logger, opts Options, senders ...Sender) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = defaultSendTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		senders: senders,
		log:     logger.OrNop(log),
		timeout: opts.SendTimeout,
		queue:   make(chan models.EmissionAlert, opts.QueueSize),
		sem:     semaphore.NewWeighted(int64(opts.Workers)),
		workers: int64(opts.Workers),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go d.loop()
	return d
}

// Submit enqueues a without waiting. It returns false when the alert was
// dropped because the queue is full or the dispatcher is closed.
func (d *Dispatcher) Submit(a models.EmissionAlert) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warnw("alert_dropped", "reason", "dispatcher closed", "department", a.Department)
		return false
	}
	select {
	case d.queue <- a:
		return true
	default:
		d.log.Warnw("alert_dropped", "reason", "queue full", "department", a.Department)
		return false
	}
}

// Close stops accepting alerts and waits for queued and in-flight deliveries.
// If ctx ends first, remaining deliveries are canceled and ctx.Err is returned.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	select {
	case <-d.done:
	case <-ctx.Done():
		d.cancel()
		return fmt.Errorf("drain alert queue: %w", ctx.Err())
	}
	// Holding every slot means no delivery is still running.
	if err := d.sem.Acquire(ctx, d.workers); err != nil {
		d.cancel()
		return fmt.Errorf("wait for alert deliveries: %w", err)
	}
	d.sem.Release(d.workers)
	d.cancel()
	return nil
}

func (d *Dispatcher) loop() {
	defer close(d.done)
	for a := range d.queue {
		if err := d.sem.Acquire(d.ctx, 1); err != nil {
			d.log.Warnw("alert_dropped", "reason", "shutdown", "department", a.Department)
			continue
		}
		go func(a models.EmissionAlert) {
			defer d.sem.Release(1)
			d.deliver(a)
		}(a)
	}
}

func (d *Dispatcher) deliver(a models.EmissionAlert) {
	for _, s := range d.senders {
		ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
		err := s.Send(ctx, a)
		cancel()
		switch {
		case err == nil:
			d.log.Infow("alert_sent", "channel", s.Name(), "department", a.Department, "value", a.Value)
		case errors.Is(err, ErrSkipped):
			d.log.Warnw("alert_skipped", "channel", s.Name(), "department", a.Department, "err", err)
		default:
			d.log.Errorw("alert_failed", "channel", s.Name(), "department", a.Department, "err", err)
		}
	}
}
