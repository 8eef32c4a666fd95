package model

// Reservation is a booked track session for a group of customers using one
// or more karts.  The input fields (karts, customers, laps, date and start
// time) are supplied by the caller; every other field is derived once by
// the pricing engine when the reservation is created.
//
// Money amounts are whole pesos.  Discounts are percentages in [0,100].
type Reservation struct {
	ID        uint64     `json:"id"`
	Karts     []Kart     `json:"karts"`
	Customers []Customer `json:"clientes"`
	Laps      int        `json:"numeroVueltas"`
	Date      *Date      `json:"fechaReserva"`
	StartTime *TimeOfDay `json:"horaReserva"`

	BasePrice        int `json:"precioBase"`
	FinalPrice       int `json:"precioFinal"`
	Duration         int `json:"duracionTotal"` // minutes
	GroupDiscount    int `json:"descuentoPorPersonas"`
	VisitDiscount    int `json:"descuentoPorVisitas"`
	BirthdayDiscount int `json:"descuentoPorCumpleaños"`
	TotalDiscount    int `json:"descuentoTotal"`
	Persons          int `json:"numeroPersonas"`
}

// CustomerIDs returns the ids of the referenced customers in order.
func (r Reservation) CustomerIDs() []uint64 {
	ids := make([]uint64, 0, len(r.Customers))
	for _, c := range r.Customers {
		ids = append(ids, c.ID)
	}
	return ids
}

// KartIDs returns the ids of the referenced karts in order.
func (r Reservation) KartIDs() []uint64 {
	ids := make([]uint64, 0, len(r.Karts))
	for _, k := range r.Karts {
		ids = append(ids, k.ID)
	}
	return ids
}

// Clone returns a copy whose association slices do not alias r's.
func (r Reservation) Clone() Reservation {
	out := r
	out.Karts = append([]Kart(nil), r.Karts...)
	out.Customers = append([]Customer(nil), r.Customers...)
	return out
}
