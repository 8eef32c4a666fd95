package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/iliyamo/karting-reservation/internal/model"
	"github.com/iliyamo/karting-reservation/internal/repository"
)

type ReservationStore struct {
	mu           sync.RWMutex
	nextID       uint64
	reservations map[uint64]model.Reservation
}

func NewReservationStore() *ReservationStore {
	return &ReservationStore{reservations: make(map[uint64]model.Reservation)}
}

// Create stores a copy of r under a new id and returns it.
func (s *ReservationStore) Create(ctx context.Context, r model.Reservation) (model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	r = r.Clone()
	r.ID = s.nextID
	s.reservations[r.ID] = r
	return r.Clone(), nil
}

func (s *ReservationStore) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reservations[id]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	r = r.Clone()
	return &r, nil
}

func (s *ReservationStore) ListAll(ctx context.Context) ([]model.Reservation, error) {
	return s.list(func(model.Reservation) bool { return true }), nil
}

// ListByDateRange returns reservations dated within [from, to]; undated
// reservations never match.
func (s *ReservationStore) ListByDateRange(ctx context.Context, from, to model.Date) ([]model.Reservation, error) {
	return s.list(func(r model.Reservation) bool {
		return r.Date != nil && r.Date.Between(from, to)
	}), nil
}

func (s *ReservationStore) list(keep func(model.Reservation) bool) []model.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		if keep(r) {
			out = append(out, r.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
