// Package audit records who did what to which entity. Writes go through a
// bounded queue so a slow sink never blocks a request.
package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-crm/internal/models"
)

const (
	queueSize    = 100
	writeTimeout = 5 * time.Second
)

type Event struct {
	BusinessID uint
	UserID     *uint
	Action     string
	Entity     string
	EntityID   *uint
	Metadata   any
}

type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.write(ev); err != nil {
			d.log.Error("audit write failed",
				zap.String("action", ev.Action),
				zap.Uint("business_id", ev.BusinessID),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) write(ev Event) error {
	var meta string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			meta = string(b)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	return d.sink.Write(ctx, models.AuditLog{
		BusinessID: ev.BusinessID,
		UserID:     ev.UserID,
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		Metadata:   meta,
		CreatedAt:  time.Now(),
	})
}

// Dispatch queues ev. A full queue or a closed dispatcher drops it; a nil
// dispatcher does nothing.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits until the queue is drained or ctx
// ends.
func (d *Dispatcher) Close(ctx context.Context) error {
	if d == nil {
		return nil
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
