package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/karting-reservation/internal/model"
)

// 2025-04-14 is a Monday.
var monday = model.NewDate(2025, time.April, 14)

func session(id uint64, d model.Date, h, m, minutes int) model.Reservation {
	start := model.NewTimeOfDay(h, m)
	return model.Reservation{ID: id, Date: &d, StartTime: &start, Duration: minutes}
}

func ids(rs []model.Reservation) []uint64 {
	out := make([]uint64, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestNewRackHasEveryCell(t *testing.T) {
	rack := NewRack()
	require.Len(t, rack, 7)
	for _, day := range Weekdays {
		require.Len(t, rack[day], len(TimeBlocks))
		for _, b := range TimeBlocks {
			assert.NotNil(t, rack[day][b])
			assert.Empty(t, rack[day][b])
		}
	}
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "Lunes", WeekdayName(monday))
	assert.Equal(t, "Domingo", WeekdayName(model.NewDate(2025, time.April, 20)))
	assert.Equal(t, "Sábado", WeekdayName(model.NewDate(2025, time.April, 19)))
}

func TestBuildRackSingleBlock(t *testing.T) {
	rack := BuildRack([]model.Reservation{session(1, monday, 10, 0, 30)}, nil)

	assert.Equal(t, []uint64{1}, ids(rack["Lunes"]["10:00-11:00"]))
	assert.Empty(t, rack["Lunes"]["09:00-10:00"])
	assert.Empty(t, rack["Lunes"]["11:00-12:00"])
}

func TestBuildRackSpansTwoBlocks(t *testing.T) {
	rack := BuildRack([]model.Reservation{session(2, monday, 9, 45, 30)}, nil)

	assert.Equal(t, []uint64{2}, ids(rack["Lunes"]["09:00-10:00"]))
	assert.Equal(t, []uint64{2}, ids(rack["Lunes"]["10:00-11:00"]))
}

func TestBuildRackHalfOpenBoundaries(t *testing.T) {
	// Ends exactly at 11:00, so the 11:00 block is not touched.
	rack := BuildRack([]model.Reservation{session(3, monday, 10, 20, 40)}, nil)
	assert.Equal(t, []uint64{3}, ids(rack["Lunes"]["10:00-11:00"]))
	assert.Empty(t, rack["Lunes"]["11:00-12:00"])
}

func TestBuildRackLunchGap(t *testing.T) {
	rack := BuildRack([]model.Reservation{session(4, monday, 13, 0, 30)}, nil)
	for _, day := range rack {
		for _, cell := range day {
			assert.Empty(t, cell)
		}
	}
}

func TestBuildRackSkipsIncomplete(t *testing.T) {
	noStart := model.Reservation{ID: 5, Date: &monday, Duration: 30}
	noDate := session(6, monday, 10, 0, 30)
	noDate.Date = nil
	noDuration := session(7, monday, 10, 0, 0)

	rack := BuildRack([]model.Reservation{noStart, noDate, noDuration}, nil)
	assert.Empty(t, rack["Lunes"]["10:00-11:00"])
}

func TestBuildRackKeepsInputOrder(t *testing.T) {
	tuesday := model.NewDate(2025, time.April, 15)
	rack := BuildRack([]model.Reservation{
		session(8, tuesday, 15, 0, 35),
		session(9, tuesday, 15, 30, 35),
	}, nil)
	assert.Equal(t, []uint64{8, 9}, ids(rack["Martes"]["15:00-16:00"]))
	assert.Equal(t, []uint64{9}, ids(rack["Martes"]["16:00-17:00"]))
}
