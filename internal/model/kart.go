package model

import "strings"

// KartAvailable is the status value of a kart that can be booked.
const KartAvailable = "disponible"

// Kart is a vehicle of the track fleet (row in `karts`).  Status is free
// text; only KartAvailable, compared case-insensitively and trimmed,
// marks the kart as bookable.
type Kart struct {
	ID     uint64 `json:"id"`     // karts.id
	Code   string `json:"codigo"` // karts.codigo
	Status string `json:"estado"` // karts.estado
}

// Available reports whether the kart may be added to a reservation.
func (k Kart) Available() bool {
	return strings.EqualFold(strings.TrimSpace(k.Status), KartAvailable)
}
