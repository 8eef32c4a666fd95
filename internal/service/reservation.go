// Package service holds the business rules of the track: customer and
// kart registration, reservation pricing, the weekly rack and revenue
// reports.  Services depend on small store interfaces so that the MySQL
// repositories and the in-memory stores are interchangeable.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/iliyamo/karting-reservation/internal/model"
)

// CustomerLookup resolves customers referenced by a reservation.
type CustomerLookup interface {
	GetByID(ctx context.Context, id uint64) (*model.Customer, error)
}

// KartLookup resolves karts referenced by a reservation.
type KartLookup interface {
	GetByID(ctx context.Context, id uint64) (*model.Kart, error)
}

// ReservationStore persists priced reservations.  Implementations return
// an error wrapping model.ErrNotFound for unknown ids.
type ReservationStore interface {
	Create(ctx context.Context, r model.Reservation) (model.Reservation, error)
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	ListAll(ctx context.Context) ([]model.Reservation, error)
	ListByDateRange(ctx context.Context, from, to model.Date) ([]model.Reservation, error)
}

// EventPublisher announces stored reservations to other systems.
type EventPublisher interface {
	PublishReservationCreated(ctx context.Context, r model.Reservation) error
}

// ReservationService validates, prices and stores reservations, and builds
// the rack and revenue views on top of the stored data.  It keeps no state
// between calls.
type ReservationService struct {
	customers    CustomerLookup
	karts        KartLookup
	reservations ReservationStore
	events       EventPublisher
	log          *zap.Logger
}

// NewReservationService panics when a required store is nil.  events may
// be nil, in which case no event is published; a nil logger is replaced
// by a no-op one.
func NewReservationService(customers CustomerLookup, karts KartLookup, reservations ReservationStore, events EventPublisher, log *zap.Logger) *ReservationService {
	if customers == nil || karts == nil || reservations == nil {
		panic("nil store passed to NewReservationService")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ReservationService{
		customers:    customers,
		karts:        karts,
		reservations: reservations,
		events:       events,
		log:          log,
	}
}

// Create validates the request, resolves its customers and karts, prices
// it and stores the result.  req is never modified; the stored
// reservation is returned.
//
// Checks run in a fixed order: date, customers, karts, then pricing.
func (s *ReservationService) Create(ctx context.Context, req model.Reservation) (model.Reservation, error) {
	if req.Date == nil {
		return model.Reservation{}, ErrMissingReservationDate
	}
	customers, err := s.resolveCustomers(ctx, req.Customers)
	if err != nil {
		return model.Reservation{}, err
	}
	karts, err := s.resolveKarts(ctx, req.Karts)
	if err != nil {
		return model.Reservation{}, err
	}

	quote, err := Price(req.Laps, customers, *req.Date)
	if err != nil {
		return model.Reservation{}, err
	}
	for _, l := range quote.Lines {
		s.log.Debug("customer priced",
			zap.Uint64("customer_id", l.CustomerID),
			zap.String("name", l.Name),
			zap.Int("visit_discount", l.VisitDiscount),
			zap.Int("birthday_discount", l.BirthdayDiscount),
			zap.Int("price", l.Price),
		)
	}

	res := model.Reservation{
		Karts:     karts,
		Customers: customers,
		Laps:      req.Laps,
		Date:      req.Date,
		StartTime: req.StartTime,
	}
	quote.apply(&res)

	stored, err := s.reservations.Create(ctx, res)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("store reservation: %w", err)
	}
	s.log.Info("reservation created",
		zap.Uint64("reservation_id", stored.ID),
		zap.Int("persons", stored.Persons),
		zap.Int("base_price", stored.BasePrice),
		zap.Int("final_price", stored.FinalPrice),
	)

	if s.events != nil {
		if err := s.events.PublishReservationCreated(ctx, stored); err != nil {
			s.log.Warn("publish reservation event failed", zap.Uint64("reservation_id", stored.ID), zap.Error(err))
		}
	}
	return stored, nil
}

func (s *ReservationService) resolveCustomers(ctx context.Context, refs []model.Customer) ([]model.Customer, error) {
	if len(refs) == 0 {
		return nil, ErrNoCustomersSpecified
	}
	out := make([]model.Customer, 0, len(refs))
	for _, ref := range refs {
		c, err := s.customers.GetByID(ctx, ref.ID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil, &ReferenceError{Kind: ErrCustomerNotFound, ID: ref.ID}
			}
			return nil, fmt.Errorf("load customer %d: %w", ref.ID, err)
		}
		out = append(out, *c)
	}
	return out, nil
}

// resolveKarts only checks the static availability flag; a kart already
// booked for an overlapping slot is still accepted.
func (s *ReservationService) resolveKarts(ctx context.Context, refs []model.Kart) ([]model.Kart, error) {
	if len(refs) == 0 {
		return nil, ErrNoKartsSpecified
	}
	out := make([]model.Kart, 0, len(refs))
	for _, ref := range refs {
		k, err := s.karts.GetByID(ctx, ref.ID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil, &ReferenceError{Kind: ErrKartNotFound, ID: ref.ID}
			}
			return nil, fmt.Errorf("load kart %d: %w", ref.ID, err)
		}
		if !k.Available() {
			return nil, &ReferenceError{Kind: ErrKartUnavailable, ID: ref.ID}
		}
		out = append(out, *k)
	}
	return out, nil
}

// List returns every stored reservation with its customers and karts.
func (s *ReservationService) List(ctx context.Context) ([]model.Reservation, error) {
	return s.reservations.ListAll(ctx)
}

// Get returns a stored reservation or ErrReservationNotFound.
func (s *ReservationService) Get(ctx context.Context, id uint64) (model.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Reservation{}, ErrReservationNotFound
		}
		return model.Reservation{}, err
	}
	return *r, nil
}
