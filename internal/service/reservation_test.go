package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/karting-reservation/internal/model"
	"github.com/iliyamo/karting-reservation/internal/repository/memory"
)

type recordingPublisher struct {
	published []model.Reservation
	err       error
}

func (p *recordingPublisher) PublishReservationCreated(_ context.Context, r model.Reservation) error {
	p.published = append(p.published, r)
	return p.err
}

type fixture struct {
	customers    *memory.CustomerStore
	karts        *memory.KartStore
	reservations *memory.ReservationStore
	events       *recordingPublisher
	svc          *ReservationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		customers:    memory.NewCustomerStore(),
		karts:        memory.NewKartStore(),
		reservations: memory.NewReservationStore(),
		events:       &recordingPublisher{},
	}
	f.svc = NewReservationService(f.customers, f.karts, f.reservations, f.events, nil)
	return f
}

func (f *fixture) customer(t *testing.T, c model.Customer) model.Customer {
	t.Helper()
	require.NoError(t, f.customers.Create(context.Background(), &c))
	return c
}

func (f *fixture) kart(t *testing.T, status string) model.Kart {
	t.Helper()
	k := model.Kart{Code: "K", Status: status}
	require.NoError(t, f.karts.Create(context.Background(), &k))
	return k
}

func request(date *model.Date, laps int, customers []uint64, karts []uint64) model.Reservation {
	start := model.NewTimeOfDay(10, 0)
	r := model.Reservation{Laps: laps, Date: date, StartTime: &start}
	for _, id := range customers {
		r.Customers = append(r.Customers, model.Customer{ID: id})
	}
	for _, id := range karts {
		r.Karts = append(r.Karts, model.Kart{ID: id})
	}
	return r
}

func TestCreatePricesAndStores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.customer(t, model.Customer{Name: "Ana", Email: "ana@gmail.com"})
	b := f.customer(t, model.Customer{Name: "Luis", Email: "luis@gmail.com"})
	c := f.customer(t, model.Customer{Name: "Eva", Email: "eva@gmail.com"})
	k := f.kart(t, " Disponible ")

	date := model.NewDate(2025, time.April, 14)
	req := request(&date, 10, []uint64{a.ID, b.ID, c.ID}, []uint64{k.ID})
	got, err := f.svc.Create(ctx, req)
	require.NoError(t, err)

	assert.NotZero(t, got.ID)
	assert.Equal(t, 40500, got.FinalPrice)
	assert.Equal(t, 15000, got.BasePrice)
	assert.Equal(t, 30, got.Duration)
	assert.Equal(t, 3, got.Persons)
	assert.Equal(t, 10, got.GroupDiscount)
	assert.Equal(t, "Ana", got.Customers[0].Name)
	assert.Equal(t, "K", got.Karts[0].Code)

	// The request is left untouched.
	assert.Zero(t, req.FinalPrice)
	assert.Empty(t, req.Customers[0].Name)

	stored, err := f.svc.Get(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, got, stored)
	require.Len(t, f.events.published, 1)
	assert.Equal(t, got.ID, f.events.published[0].ID)
}

func TestCreateValidationOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := model.NewDate(2025, time.April, 14)

	// Missing date wins over everything else.
	_, err := f.svc.Create(ctx, request(nil, 7, nil, nil))
	assert.ErrorIs(t, err, ErrMissingReservationDate)

	_, err = f.svc.Create(ctx, request(&date, 7, nil, nil))
	assert.ErrorIs(t, err, ErrNoCustomersSpecified)

	c := f.customer(t, model.Customer{Email: "ana@gmail.com"})
	_, err = f.svc.Create(ctx, request(&date, 7, []uint64{c.ID}, nil))
	assert.ErrorIs(t, err, ErrNoKartsSpecified)

	k := f.kart(t, "disponible")
	_, err = f.svc.Create(ctx, request(&date, 7, []uint64{c.ID}, []uint64{k.ID}))
	assert.ErrorIs(t, err, ErrInvalidLapCount)

	for _, e := range []error{ErrMissingReservationDate, ErrNoCustomersSpecified, ErrNoKartsSpecified, ErrInvalidLapCount} {
		assert.True(t, IsValidation(e))
	}
}

func TestCreateReferenceErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := model.NewDate(2025, time.April, 14)
	c := f.customer(t, model.Customer{Email: "ana@gmail.com"})
	broken := f.kart(t, "mantenimiento")

	_, err := f.svc.Create(ctx, request(&date, 10, []uint64{c.ID, 99}, []uint64{broken.ID}))
	var ref *ReferenceError
	require.ErrorAs(t, err, &ref)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Equal(t, uint64(99), ref.ID)

	_, err = f.svc.Create(ctx, request(&date, 10, []uint64{c.ID}, []uint64{42}))
	assert.ErrorIs(t, err, ErrKartNotFound)

	_, err = f.svc.Create(ctx, request(&date, 10, []uint64{c.ID}, []uint64{broken.ID}))
	assert.ErrorIs(t, err, ErrKartUnavailable)
	assert.True(t, IsValidation(err))

	all, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, f.events.published)
}

func TestCreateAllowsDoubleBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := model.NewDate(2025, time.April, 14)
	c := f.customer(t, model.Customer{Email: "ana@gmail.com"})
	k := f.kart(t, "disponible")

	_, err := f.svc.Create(ctx, request(&date, 10, []uint64{c.ID}, []uint64{k.ID}))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, request(&date, 10, []uint64{c.ID}, []uint64{k.ID}))
	require.NoError(t, err)
}

func TestCreateSurvivesPublishFailure(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("broker down")
	date := model.NewDate(2025, time.April, 14)
	c := f.customer(t, model.Customer{Email: "ana@gmail.com"})
	k := f.kart(t, "disponible")

	got, err := f.svc.Create(context.Background(), request(&date, 20, []uint64{c.ID}, []uint64{k.ID}))
	require.NoError(t, err)
	assert.Equal(t, 25000, got.FinalPrice)
}

func TestGetUnknown(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Get(context.Background(), 5)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestListIsStable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := model.NewDate(2025, time.April, 14)
	c := f.customer(t, model.Customer{Email: "ana@gmail.com"})
	k := f.kart(t, "disponible")
	for i := 0; i < 3; i++ {
		_, err := f.svc.Create(ctx, request(&date, 15, []uint64{c.ID}, []uint64{k.ID}))
		require.NoError(t, err)
	}

	first, err := f.svc.List(ctx)
	require.NoError(t, err)
	second, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 3)
	assert.Equal(t, first, second)
}

func TestWeeklyRackAndReportsFromStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.customer(t, model.Customer{Email: "ana@gmail.com"})
	k := f.kart(t, "disponible")

	april := model.NewDate(2025, time.April, 14)
	may := model.NewDate(2025, time.May, 5)
	_, err := f.svc.Create(ctx, request(&april, 10, []uint64{c.ID}, []uint64{k.ID}))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, request(&may, 10, []uint64{c.ID}, []uint64{k.ID}))
	require.NoError(t, err)

	rack, err := f.svc.WeeklyRack(ctx)
	require.NoError(t, err)
	assert.Len(t, rack["Lunes"]["10:00-11:00"], 2)

	rack, err = f.svc.WeeklyRackBetween(ctx, model.NewDate(2025, time.April, 1), model.NewDate(2025, time.April, 30))
	require.NoError(t, err)
	assert.Len(t, rack["Lunes"]["10:00-11:00"], 1)

	byLaps, err := f.svc.RevenueByLaps(ctx, april, may)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"APRIL": 17850, "MAY": 17850, "TOTAL": 35700}, byLaps["10 vueltas o máx 30 min"])

	byPersons, err := f.svc.RevenueByPersons(ctx, may, may)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"MAY": 17850, "TOTAL": 17850}, byPersons["1-2 personas"])
}
