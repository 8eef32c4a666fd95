package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/iliyamo/karting-reservation/internal/model"
	"github.com/iliyamo/karting-reservation/internal/repository"
)

type KartStore struct {
	mu     sync.RWMutex
	nextID uint64
	karts  map[uint64]model.Kart
}

func NewKartStore() *KartStore {
	return &KartStore{karts: make(map[uint64]model.Kart)}
}

func (s *KartStore) Create(ctx context.Context, k *model.Kart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	k.ID = s.nextID
	s.karts[k.ID] = *k
	return nil
}

func (s *KartStore) GetByID(ctx context.Context, id uint64) (*model.Kart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	k, ok := s.karts[id]
	if !ok {
		return nil, repository.ErrKartNotFound
	}
	return &k, nil
}

func (s *KartStore) ListAll(ctx context.Context) ([]model.Kart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Kart, 0, len(s.karts))
	for _, k := range s.karts {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
