package appointment

import "github.com/BruksfildServices01/booking-crm/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no-show"
)

// Booked reports whether an appointment in this status still occupies its
// interval. Only cancellation frees it.
func (s Status) Booked() bool {
	return s != StatusCancelled
}

// ===============================
// Payment Status
// ===============================

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch p := PaymentStatus(s); p {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return p, true
	}
	return "", false
}

// ===============================
// Validations
// ===============================

// Every staff action below is only legal on a scheduled appointment.
func requireScheduled(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	return requireScheduled(current)
}

func CanComplete(current Status) error {
	return requireScheduled(current)
}

func CanMarkNoShow(current Status) error {
	return requireScheduled(current)
}

// CanChangePayment allows pending -> paid and paid -> refunded.
func CanChangePayment(current, next PaymentStatus) error {
	switch {
	case current == PaymentPending && next == PaymentPaid:
		return nil
	case current == PaymentPaid && next == PaymentRefunded:
		return nil
	}
	return httperr.ErrBusiness("invalid_payment_transition")
}

func InitialStatus() Status {
	return StatusScheduled
}

func InitialPaymentStatus() PaymentStatus {
	return PaymentPending
}
