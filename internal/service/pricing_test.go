package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/karting-reservation/internal/model"
)

func TestLapTable(t *testing.T) {
	cases := []struct {
		laps, price, minutes int
	}{
		{10, 15000, 30},
		{15, 20000, 35},
		{20, 25000, 40},
	}
	for _, tc := range cases {
		price, err := BasePrice(tc.laps)
		require.NoError(t, err)
		assert.Equal(t, tc.price, price, "laps=%d", tc.laps)

		minutes, err := Duration(tc.laps)
		require.NoError(t, err)
		assert.Equal(t, tc.minutes, minutes, "laps=%d", tc.laps)
	}

	for _, laps := range []int{0, 5, 12, 25} {
		_, err := BasePrice(laps)
		assert.ErrorIs(t, err, ErrInvalidLapCount)
		_, err = Duration(laps)
		assert.ErrorIs(t, err, ErrInvalidLapCount)
	}
}

func TestGroupDiscountSteps(t *testing.T) {
	want := map[int]int{1: 0, 2: 0, 3: 10, 5: 10, 6: 20, 10: 20, 11: 30, 15: 30}
	for n, pct := range want {
		assert.Equal(t, pct, GroupDiscount(n), "n=%d", n)
	}
}

func TestVisitDiscountSteps(t *testing.T) {
	want := map[int]int{0: 0, 1: 0, 2: 10, 4: 10, 5: 20, 6: 20, 7: 30, 40: 30}
	for v, pct := range want {
		assert.Equal(t, pct, VisitDiscount(v), "visits=%d", v)
	}
}

func TestBirthdayDiscountIgnoresYear(t *testing.T) {
	on := model.NewDate(2025, time.April, 12)
	birth := model.NewDate(1990, time.April, 12)
	other := model.NewDate(1990, time.April, 13)

	assert.Equal(t, 50, BirthdayDiscount(&birth, on))
	assert.Equal(t, 0, BirthdayDiscount(&other, on))
	assert.Equal(t, 0, BirthdayDiscount(nil, on))
}

func TestPriceSingleCustomer(t *testing.T) {
	q, err := Price(10, []model.Customer{{ID: 1}}, model.NewDate(2025, time.April, 1))
	require.NoError(t, err)

	assert.Equal(t, 15000, q.BasePrice)
	assert.Equal(t, 15000, q.FinalPrice)
	assert.Equal(t, 30, q.Duration)
	assert.Equal(t, 1, q.Persons)
	assert.Zero(t, q.GroupDiscount)
	assert.Zero(t, q.VisitDiscount)
	assert.Zero(t, q.BirthdayDiscount)
	assert.Zero(t, q.TotalDiscount)
}

func TestPriceGroupOfThree(t *testing.T) {
	customers := []model.Customer{{ID: 1}, {ID: 2}, {ID: 3}}
	q, err := Price(10, customers, model.NewDate(2025, time.April, 1))
	require.NoError(t, err)

	assert.Equal(t, 10, q.GroupDiscount)
	assert.Equal(t, 40500, q.FinalPrice)
	assert.Len(t, q.Lines, 3)
}

func TestPriceIndividualDiscounts(t *testing.T) {
	date := model.NewDate(2025, time.April, 12)
	birth := model.NewDate(2000, time.April, 12)
	customers := []model.Customer{
		{ID: 1, Visits: 7},                   // 30%
		{ID: 2, Visits: 2, BirthDate: &birth}, // 10% + 50%
	}
	q, err := Price(15, customers, date)
	require.NoError(t, err)

	// 20000 - 6000 = 14000; 20000 - 12000 = 8000
	assert.Equal(t, 14000, q.Lines[0].Price)
	assert.Equal(t, 8000, q.Lines[1].Price)
	assert.Equal(t, 22000, q.FinalPrice)
	assert.Equal(t, 20, q.VisitDiscount) // (30+10)/2
	assert.Equal(t, 50, q.BirthdayDiscount)
	assert.Equal(t, 70, q.TotalDiscount)
}

func TestPriceRecordedBirthdayIsCapped(t *testing.T) {
	date := model.NewDate(2025, time.June, 1)
	birth := model.NewDate(1999, time.June, 1)
	customers := []model.Customer{
		{ID: 1, BirthDate: &birth},
		{ID: 2, BirthDate: &birth},
		{ID: 3},
	}
	q, err := Price(20, customers, date)
	require.NoError(t, err)

	assert.Equal(t, 50, q.BirthdayDiscount)
	// (12500 + 12500 + 25000) - 10%
	assert.Equal(t, 45000, q.FinalPrice)
	assert.LessOrEqual(t, q.FinalPrice, q.BasePrice*q.Persons)
}

func TestPriceTotalDiscountCappedAt100(t *testing.T) {
	date := model.NewDate(2025, time.June, 1)
	birth := model.NewDate(1999, time.June, 1)
	customers := make([]model.Customer, 11)
	for i := range customers {
		customers[i] = model.Customer{ID: uint64(i + 1), Visits: 9, BirthDate: &birth}
	}
	q, err := Price(10, customers, date)
	require.NoError(t, err)
	assert.Equal(t, 100, q.TotalDiscount)
	assert.GreaterOrEqual(t, q.FinalPrice, 0)
}

func TestPriceTruncates(t *testing.T) {
	// 15000 * 0.9 per person * 3 = 40500, then 10% group: 36450.
	customers := []model.Customer{{Visits: 2}, {Visits: 3}, {Visits: 4}}
	q, err := Price(10, customers, model.NewDate(2025, time.January, 1))
	require.NoError(t, err)
	assert.Equal(t, 36450, q.FinalPrice)
}
