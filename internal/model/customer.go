package model

import "errors"

// ErrNotFound is wrapped by every store-level "not found" error so that
// callers can test for a missing record without knowing which store
// produced it.
var ErrNotFound = errors.New("not found")

// Customer is a registered track customer.  It corresponds to a row in
// the `clientes` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name.
//  Visits    – number of past visits, maintained outside the reservation flow.
//  BirthDate – optional date of birth used for the birthday discount.
//  Email     – mandatory Gmail address receiving receipts.
type Customer struct {
	ID        uint64 `json:"id"`              // clientes.id
	Name      string `json:"nombre"`          // clientes.nombre
	Visits    int    `json:"numeroVisitas"`   // clientes.numero_visitas
	BirthDate *Date  `json:"fechaNacimiento"` // clientes.fecha_nacimiento (nullable)
	Email     string `json:"email"`           // clientes.email
}
