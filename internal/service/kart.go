package service

import (
	"context"
	"fmt"

	"github.com/iliyamo/karting-reservation/internal/model"
)

// KartStore persists karts.
type KartStore interface {
	KartLookup
	Create(ctx context.Context, k *model.Kart) error
	ListAll(ctx context.Context) ([]model.Kart, error)
}

// KartService manages the kart fleet.
type KartService struct {
	store KartStore
}

func NewKartService(store KartStore) *KartService {
	if store == nil {
		panic("nil store passed to NewKartService")
	}
	return &KartService{store: store}
}

// Create stores a new kart as given.
func (s *KartService) Create(ctx context.Context, k model.Kart) (model.Kart, error) {
	k.ID = 0
	if err := s.store.Create(ctx, &k); err != nil {
		return model.Kart{}, fmt.Errorf("create kart: %w", err)
	}
	return k, nil
}

func (s *KartService) List(ctx context.Context) ([]model.Kart, error) {
	return s.store.ListAll(ctx)
}
