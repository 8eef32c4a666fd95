package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/iliyamo/karting-reservation/internal/model"
)

var gmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@gmail\.com$`)

// ValidateEmail checks that email is present and is a Gmail address.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if !gmailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// CustomerStore persists customers.
type CustomerStore interface {
	CustomerLookup
	Create(ctx context.Context, c *model.Customer) error
	Update(ctx context.Context, c *model.Customer) error
	ListAll(ctx context.Context) ([]model.Customer, error)
}

// CustomerService registers and updates customers.
type CustomerService struct {
	store CustomerStore
}

func NewCustomerService(store CustomerStore) *CustomerService {
	if store == nil {
		panic("nil store passed to NewCustomerService")
	}
	return &CustomerService{store: store}
}

// Create validates the email and stores a new customer.
func (s *CustomerService) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	c.Email = strings.TrimSpace(c.Email)
	if err := ValidateEmail(c.Email); err != nil {
		return model.Customer{}, err
	}
	c.ID = 0
	if err := s.store.Create(ctx, &c); err != nil {
		return model.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

// Update replaces name, visits, birth date and email of customer id.
func (s *CustomerService) Update(ctx context.Context, id uint64, in model.Customer) (model.Customer, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Customer{}, &ReferenceError{Kind: ErrCustomerNotFound, ID: id}
		}
		return model.Customer{}, err
	}
	in.Email = strings.TrimSpace(in.Email)
	if err := ValidateEmail(in.Email); err != nil {
		return model.Customer{}, err
	}
	updated := *existing
	updated.Name = in.Name
	updated.Visits = in.Visits
	updated.BirthDate = in.BirthDate
	updated.Email = in.Email
	if err := s.store.Update(ctx, &updated); err != nil {
		return model.Customer{}, fmt.Errorf("update customer %d: %w", id, err)
	}
	return updated, nil
}

// List returns all customers ordered by id.
func (s *CustomerService) List(ctx context.Context) ([]model.Customer, error) {
	return s.store.ListAll(ctx)
}
