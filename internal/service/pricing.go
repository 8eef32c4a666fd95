package service

import (
	"github.com/iliyamo/karting-reservation/internal/model"
)

// lapRate is the fixed price and session length for a lap count.
type lapRate struct {
	price   int // base price per person
	minutes int // total session duration
}

var lapRates = map[int]lapRate{
	10: {price: 15000, minutes: 30},
	15: {price: 20000, minutes: 35},
	20: {price: 25000, minutes: 40},
}

// BirthdayDiscountPercent is granted to a customer whose birthday falls on
// the reservation date.  It is also the cap for the recorded
// reservation-level birthday discount.
const BirthdayDiscountPercent = 50

// BasePrice returns the per-person price for a lap count.
func BasePrice(laps int) (int, error) {
	r, ok := lapRates[laps]
	if !ok {
		return 0, ErrInvalidLapCount
	}
	return r.price, nil
}

// Duration returns the session length in minutes for a lap count.
func Duration(laps int) (int, error) {
	r, ok := lapRates[laps]
	if !ok {
		return 0, ErrInvalidLapCount
	}
	return r.minutes, nil
}

// GroupDiscount returns the percentage applied to the whole reservation
// for a group of n people.
func GroupDiscount(n int) int {
	switch {
	case n >= 11:
		return 30
	case n >= 6:
		return 20
	case n >= 3:
		return 10
	}
	return 0
}

// VisitDiscount returns the loyalty percentage for a customer's visit count.
func VisitDiscount(visits int) int {
	switch {
	case visits >= 7:
		return 30
	case visits >= 5:
		return 20
	case visits >= 2:
		return 10
	}
	return 0
}

// BirthdayDiscount returns BirthdayDiscountPercent when birth shares day
// and month with on, regardless of year.
func BirthdayDiscount(birth *model.Date, on model.Date) int {
	if birth == nil {
		return 0
	}
	if birth.Day() == on.Day() && birth.Month() == on.Month() {
		return BirthdayDiscountPercent
	}
	return 0
}

// QuoteLine is the individual price of one customer.
type QuoteLine struct {
	CustomerID       uint64
	Name             string
	VisitDiscount    int
	BirthdayDiscount int
	Price            int
}

// Quote is the outcome of pricing a reservation.
type Quote struct {
	BasePrice        int
	FinalPrice       int
	Duration         int
	Persons          int
	GroupDiscount    int
	VisitDiscount    int
	BirthdayDiscount int
	TotalDiscount    int
	Lines            []QuoteLine
}

// Price computes the quote for a session of the given laps on date for the
// listed customers.  Each customer's visit and birthday discounts reduce
// that customer's own base price; the group discount is then taken off the
// summed amount.  All arithmetic truncates like integer division.
func Price(laps int, customers []model.Customer, date model.Date) (Quote, error) {
	base, err := BasePrice(laps)
	if err != nil {
		return Quote{}, err
	}
	minutes, err := Duration(laps)
	if err != nil {
		return Quote{}, err
	}

	q := Quote{
		BasePrice: base,
		Duration:  minutes,
		Persons:   len(customers),
	}
	if len(customers) == 0 {
		q.FinalPrice = base
		return q, nil
	}
	q.GroupDiscount = GroupDiscount(len(customers))

	var total, visitSum, birthdaySum int
	q.Lines = make([]QuoteLine, 0, len(customers))
	for _, c := range customers {
		visit := VisitDiscount(c.Visits)
		birthday := BirthdayDiscount(c.BirthDate, date)
		price := base - base*(visit+birthday)/100

		visitSum += visit
		birthdaySum += birthday
		total += price
		q.Lines = append(q.Lines, QuoteLine{
			CustomerID:       c.ID,
			Name:             c.Name,
			VisitDiscount:    visit,
			BirthdayDiscount: birthday,
			Price:            price,
		})
	}
	if q.GroupDiscount > 0 {
		total -= total * q.GroupDiscount / 100
	}

	q.FinalPrice = total
	q.VisitDiscount = visitSum / len(customers)
	q.BirthdayDiscount = min(birthdaySum, BirthdayDiscountPercent)
	q.TotalDiscount = min(q.GroupDiscount+q.VisitDiscount+q.BirthdayDiscount, 100)
	return q, nil
}

// apply copies the derived fields of q onto r.
func (q Quote) apply(r *model.Reservation) {
	r.BasePrice = q.BasePrice
	r.FinalPrice = q.FinalPrice
	r.Duration = q.Duration
	r.Persons = q.Persons
	r.GroupDiscount = q.GroupDiscount
	r.VisitDiscount = q.VisitDiscount
	r.BirthdayDiscount = q.BirthdayDiscount
	r.TotalDiscount = q.TotalDiscount
}
