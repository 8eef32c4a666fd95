package service

import (
	"errors"
	"fmt"
)

// Validation errors returned while creating a reservation.  Handlers map
// every one of them to HTTP 400.
var (
	ErrMissingReservationDate = errors.New("reservation date is required")
	ErrNoCustomersSpecified   = errors.New("at least one customer is required")
	ErrNoKartsSpecified       = errors.New("at least one kart is required")
	ErrInvalidLapCount        = errors.New("invalid lap count")

	ErrCustomerNotFound = errors.New("customer not found")
	ErrKartNotFound     = errors.New("kart not found")
	ErrKartUnavailable  = errors.New("kart is not available")
)

// Customer validation errors.
var (
	ErrEmailRequired = errors.New("email is required")
	ErrInvalidEmail  = errors.New("email must be a valid gmail address")
)

// ErrReservationNotFound is returned when a stored reservation is looked up
// by an unknown id.
var ErrReservationNotFound = errors.New("reservation not found")

// ReferenceError reports a customer or kart referenced by a reservation
// that could not be used.  Kind is one of ErrCustomerNotFound,
// ErrKartNotFound or ErrKartUnavailable.
type ReferenceError struct {
	Kind error
	ID   uint64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%v: id %d", e.Kind, e.ID)
}

func (e *ReferenceError) Unwrap() error { return e.Kind }

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	var ref *ReferenceError
	switch {
	case errors.As(err, &ref):
		return true
	case errors.Is(err, ErrMissingReservationDate),
		errors.Is(err, ErrNoCustomersSpecified),
		errors.Is(err, ErrNoKartsSpecified),
		errors.Is(err, ErrInvalidLapCount),
		errors.Is(err, ErrEmailRequired),
		errors.Is(err, ErrInvalidEmail):
		return true
	}
	return false
}
