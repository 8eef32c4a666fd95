package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/karting-reservation/internal/model"
)

func dated(d model.Date, laps, duration, persons, final int) model.Reservation {
	return model.Reservation{Date: &d, Laps: laps, Duration: duration, Persons: persons, FinalPrice: final}
}

func TestWithTaxRounds(t *testing.T) {
	assert.Equal(t, 59500, WithTax(50000))
	assert.Equal(t, 17850, WithTax(15000))
	assert.Equal(t, 1, WithTax(1))   // 1.19
	assert.Equal(t, 2, WithTax(2))   // 2.38
	assert.Equal(t, 12, WithTax(10)) // 11.9
}

func TestCategories(t *testing.T) {
	assert.Equal(t, "10 vueltas o máx 30 min", LapsCategory(model.Reservation{Laps: 10, Duration: 30}))
	assert.Equal(t, "1-2 personas", PersonsCategory(1))
	assert.Equal(t, "1-2 personas", PersonsCategory(2))
	assert.Equal(t, "3-5 personas", PersonsCategory(5))
	assert.Equal(t, "6-10 personas", PersonsCategory(6))
	assert.Equal(t, "11-15 personas", PersonsCategory(11))
	assert.Equal(t, "APRIL", MonthKey(model.NewDate(2025, time.April, 3)))
}

func TestBuildRevenueReportByLaps(t *testing.T) {
	report := BuildRevenueReport([]model.Reservation{
		dated(model.NewDate(2025, time.April, 3), 10, 30, 1, 50000),
	}, LapsCategory, nil)

	assert.Equal(t, RevenueReport{
		"10 vueltas o máx 30 min": {"APRIL": 59500, "TOTAL": 59500},
	}, report)
}

func TestBuildRevenueReportAcrossMonths(t *testing.T) {
	report := BuildRevenueReport([]model.Reservation{
		dated(model.NewDate(2025, time.April, 3), 10, 30, 2, 15000),
		dated(model.NewDate(2025, time.April, 9), 10, 30, 4, 40500),
		dated(model.NewDate(2025, time.May, 1), 15, 35, 2, 20000),
		{Laps: 10, Duration: 30, Persons: 1, FinalPrice: 99999}, // undated
	}, func(r model.Reservation) string { return PersonsCategory(r.Persons) }, nil)

	assert.Equal(t, map[string]int{"APRIL": 17850, "MAY": 23800, "TOTAL": 41650}, report["1-2 personas"])
	assert.Equal(t, map[string]int{"APRIL": 48195, "TOTAL": 48195}, report["3-5 personas"])
	assert.Len(t, report, 2)
}

func TestBuildRevenueReportEmpty(t *testing.T) {
	assert.Empty(t, BuildRevenueReport(nil, LapsCategory, nil))
}
