package appointment

import (
	"errors"

	"github.com/BruksfildServices01/booking-crm/internal/httperr"
)

// ErrSlotConflict is returned when a booking overlaps an existing
// non-cancelled appointment of the same business, whether the overlap was
// caught by the pre-check or by the store while inserting.
var ErrSlotConflict = httperr.ErrBusiness("slot_conflict")

// ErrNotFound is returned by repositories for a missing record.
var ErrNotFound = errors.New("record not found")
