// Package repository defines error values reused by the MySQL and
// in-memory stores.  Each not-found error wraps model.ErrNotFound so the
// service layer can recognise it without depending on a concrete store.
package repository

import (
	"fmt"

	"github.com/iliyamo/karting-reservation/internal/model"
)

// ErrCustomerNotFound is returned when no customer has the requested id.
var ErrCustomerNotFound = fmt.Errorf("customer %w", model.ErrNotFound)

// ErrKartNotFound is returned when no kart has the requested id.
var ErrKartNotFound = fmt.Errorf("kart %w", model.ErrNotFound)

// ErrReservationNotFound is returned when no reservation has the requested id.
var ErrReservationNotFound = fmt.Errorf("reservation %w", model.ErrNotFound)
