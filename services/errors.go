package services

import (
	"errors"
	"fmt"

	"snapbook-backend/models"
)

var (
	ErrBookedSlot        = errors.New("slot is booked")
	ErrInvalidSlotStatus = errors.New("invalid slot status")
	ErrSlotNotFound      = errors.New("availability slot not found")

	ErrBookingNotFound = errors.New("booking not found")
	ErrEmptyMessage    = errors.New("message is empty")

	ErrImageNotFound = errors.New("portfolio image not found")
	ErrNoFiles       = errors.New("no files uploaded")

	ErrPackageNotFound = errors.New("pricing package not found")
	ErrNoDraft         = errors.New("no package is being edited")

	ErrNotEditing = errors.New("profile is not in edit mode")

	ErrPhotographerNotFound = errors.New("photographer not found")
	ErrInvalidDate          = errors.New("invalid date")
)

// TransitionError rejects a booking status change the lifecycle does not allow.
type TransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move booking from %s to %s", e.From, e.To)
}
