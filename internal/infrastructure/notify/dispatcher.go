// Package notify delivers user-facing notifications produced by the core
// services to their sinks.
package notify

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/inkpost/blog-system/internal/core/domain"
	"github.com/inkpost/blog-system/internal/infrastructure/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on Notification.Key, so notifications about one post are delivered
// in the order they were raised.
type Dispatcher struct {
	workers []chan domain.Notification
	sinks   []Sink
	log     zerolog.Logger
	wg      sync.WaitGroup

	// mu orders Notify against shutdown: once stopped is set no new
	// notification reaches a channel, so the final drain sees everything.
	mu       sync.RWMutex
	stopped  bool
	stopOnce sync.Once
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger, sinks ...Sink) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Notification, numWorkers),
		sinks:   sinks,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers flush what is already queued
// and stop when ctx is cancelled; Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker started by Start has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Notify queues n on the worker responsible for its key. It never blocks:
// when that worker's channel is full, or the dispatcher has stopped, the
// notification is dropped.
func (d *Dispatcher) Notify(n domain.Notification) {
	idx := d.shardIndex(n.Key())

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		d.drop(n, idx, "notification dropped, dispatcher stopped")
		return
	}
	select {
	case d.workers[idx] <- n:
		metrics.NotifyQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.drop(n, idx, "notification dropped, queue full")
	}
}

func (d *Dispatcher) drop(n domain.Notification, idx int, msg string) {
	metrics.NotificationsDroppedTotal.Inc()
	d.log.Warn().
		Str("title", n.Title).
		Int("worker_id", idx).
		Msg(msg)
}

func (d *Dispatcher) stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.stopped = true
		d.mu.Unlock()
	})
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	defer d.wg.Done()
	depth := metrics.NotifyQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			d.stop()
			for {
				select {
				case n := <-ch:
					d.deliver(context.WithoutCancel(ctx), id, n)
				default:
					depth.Set(0)
					return
				}
			}
		case n := <-ch:
			depth.Set(float64(len(ch)))
			d.deliver(ctx, id, n)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, worker int, n domain.Notification) {
	for _, s := range d.sinks {
		if err := s.Deliver(ctx, n); err != nil {
			d.log.Error().Err(err).
				Str("title", n.Title).
				Int("worker_id", worker).
				Msg("notification delivery failed")
		}
	}
}
