package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/iliyamo/karting-reservation/internal/model"
)

// TaxRate is the VAT (IVA) added to final prices in revenue figures.
const TaxRate = 0.19

// TotalKey is the synthetic month holding a category's overall revenue.
const TotalKey = "TOTAL"

// RevenueReport maps category → month name → tax-inclusive revenue.
type RevenueReport map[string]map[string]int

// WithTax returns price plus VAT rounded to the nearest integer.
func WithTax(price int) int {
	return int(math.Round(float64(price) * (1 + TaxRate)))
}

// LapsCategory is the by-laps report key of r.
func LapsCategory(r model.Reservation) string {
	return fmt.Sprintf("%d vueltas o máx %d min", r.Laps, r.Duration)
}

// PersonsCategory is the by-group-size report key for n people.
func PersonsCategory(n int) string {
	switch {
	case n <= 2:
		return "1-2 personas"
	case n <= 5:
		return "3-5 personas"
	case n <= 10:
		return "6-10 personas"
	}
	return "11-15 personas"
}

// MonthKey is the report column of d, e.g. "APRIL".
func MonthKey(d model.Date) string {
	return strings.ToUpper(d.Month().String())
}

// BuildRevenueReport buckets reservations by category and month and adds
// a TOTAL entry per category.  Reservations without a date are skipped.
func BuildRevenueReport(reservations []model.Reservation, category func(model.Reservation) string, log *zap.Logger) RevenueReport {
	if log == nil {
		log = zap.NewNop()
	}
	report := RevenueReport{}
	for _, r := range reservations {
		if r.Date == nil {
			log.Warn("reservation skipped in report: no date", zap.Uint64("reservation_id", r.ID))
			continue
		}
		key := category(r)
		months, ok := report[key]
		if !ok {
			months = map[string]int{}
			report[key] = months
		}
		months[MonthKey(*r.Date)] += WithTax(r.FinalPrice)
	}
	for _, months := range report {
		total := 0
		for m, v := range months {
			if m != TotalKey {
				total += v
			}
		}
		months[TotalKey] = total
	}
	return report
}

// RevenueByLaps reports revenue per lap category for reservations dated
// within [from, to].
func (s *ReservationService) RevenueByLaps(ctx context.Context, from, to model.Date) (RevenueReport, error) {
	rs, err := s.reservations.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	s.log.Debug("building laps revenue report", zap.Stringer("from", from), zap.Stringer("to", to), zap.Int("reservations", len(rs)))
	return BuildRevenueReport(rs, LapsCategory, s.log), nil
}

// RevenueByPersons reports revenue per group-size category for
// reservations dated within [from, to].
func (s *ReservationService) RevenueByPersons(ctx context.Context, from, to model.Date) (RevenueReport, error) {
	rs, err := s.reservations.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	s.log.Debug("building persons revenue report", zap.Stringer("from", from), zap.Stringer("to", to), zap.Int("reservations", len(rs)))
	return BuildRevenueReport(rs, func(r model.Reservation) string { return PersonsCategory(r.Persons) }, s.log), nil
}
