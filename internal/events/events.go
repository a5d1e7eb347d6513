// Package events publishes appointment lifecycle events.
package events

import (
	"context"
	"sync"
	"time"
)

const (
	AppointmentCreated        = "appointment.created"
	AppointmentCancelled      = "appointment.cancelled"
	AppointmentCompleted      = "appointment.completed"
	AppointmentNoShow         = "appointment.no_show"
	AppointmentPaymentUpdated = "appointment.payment_updated"
)

// AppointmentEvent is the message body. The routing key is Type.
type AppointmentEvent struct {
	Type          string    `json:"type"`
	AppointmentID uint      `json:"appointment_id"`
	BusinessID    uint      `json:"business_id"`
	ClientID      uint      `json:"client_id"`
	ServiceID     uint      `json:"service_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev AppointmentEvent) error
	Close() error
}

type Noop struct{}

func (Noop) Publish(context.Context, AppointmentEvent) error { return nil }
func (Noop) Close() error                                    { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []AppointmentEvent
}

func (r *Recorder) Publish(_ context.Context, ev AppointmentEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Events() []AppointmentEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]AppointmentEvent(nil), r.events...)
}
