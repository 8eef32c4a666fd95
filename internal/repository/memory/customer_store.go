// Package memory provides map-backed stores used when the service runs
// without MySQL (STORAGE_DRIVER=memory) and as fakes in tests.  Records
// are copied on the way in and out so callers never share state with the
// store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/iliyamo/karting-reservation/internal/model"
	"github.com/iliyamo/karting-reservation/internal/repository"
)

type CustomerStore struct {
	mu        sync.RWMutex
	nextID    uint64
	customers map[uint64]model.Customer
}

func NewCustomerStore() *CustomerStore {
	return &CustomerStore{customers: make(map[uint64]model.Customer)}
}

// Create assigns the next id to c and stores a copy.
func (s *CustomerStore) Create(ctx context.Context, c *model.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	c.ID = s.nextID
	s.customers[c.ID] = *c
	return nil
}

func (s *CustomerStore) Update(ctx context.Context, c *model.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[c.ID]; !ok {
		return repository.ErrCustomerNotFound
	}
	s.customers[c.ID] = *c
	return nil
}

func (s *CustomerStore) GetByID(ctx context.Context, id uint64) (*model.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	return &c, nil
}

// ListAll returns customers ordered by id.
func (s *CustomerStore) ListAll(ctx context.Context) ([]model.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
