// Package queue publishes and consumes reservation events over RabbitMQ.
package queue

import (
	"time"

	"github.com/iliyamo/karting-reservation/internal/model"
)

// ReservationCreatedQueue is the durable queue carrying ReservationCreatedEvent.
const ReservationCreatedQueue = "reserva.creada"

// ReservationCreatedEvent is published after a reservation is stored.  It
// carries enough for consumers to log or notify without reading the
// database.
type ReservationCreatedEvent struct {
	ReservationID uint64   `json:"reservation_id"`
	Date          string   `json:"fecha_reserva"`
	StartTime     string   `json:"hora_reserva,omitempty"`
	Laps          int      `json:"numero_vueltas"`
	Duration      int      `json:"duracion_total"`
	Persons       int      `json:"numero_personas"`
	FinalPrice    int      `json:"precio_final"`
	CustomerIDs   []uint64 `json:"clientes"`
	KartCodes     []string `json:"karts"`
	Emails        []string `json:"emails"`
	CreatedAt     string   `json:"created_at"`
}

// NewReservationCreatedEvent builds the event for a stored reservation.
func NewReservationCreatedEvent(r model.Reservation, now time.Time) ReservationCreatedEvent {
	ev := ReservationCreatedEvent{
		ReservationID: r.ID,
		Laps:          r.Laps,
		Duration:      r.Duration,
		Persons:       r.Persons,
		FinalPrice:    r.FinalPrice,
		CustomerIDs:   r.CustomerIDs(),
		KartCodes:     make([]string, 0, len(r.Karts)),
		Emails:        make([]string, 0, len(r.Customers)),
		CreatedAt:     now.UTC().Format(time.RFC3339),
	}
	if r.Date != nil {
		ev.Date = r.Date.String()
	}
	if r.StartTime != nil {
		ev.StartTime = r.StartTime.String()
	}
	for _, k := range r.Karts {
		ev.KartCodes = append(ev.KartCodes, k.Code)
	}
	for _, c := range r.Customers {
		ev.Emails = append(ev.Emails, c.Email)
	}
	return ev
}
