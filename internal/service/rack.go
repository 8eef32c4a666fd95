package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/iliyamo/karting-reservation/internal/model"
)

// Weekdays lists the rack columns, Monday first.
var Weekdays = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

// TimeBlocks lists the rack rows.  The track is closed between 13:00 and
// 14:00, so no block covers that hour.
var TimeBlocks = []string{
	"09:00-10:00",
	"10:00-11:00",
	"11:00-12:00",
	"12:00-13:00",
	"14:00-15:00",
	"15:00-16:00",
	"16:00-17:00",
}

const blockMinutes = 60

// Rack maps weekday → time block → reservations overlapping that block.
type Rack map[string]map[string][]model.Reservation

type timeBlock struct {
	label string
	start int // minutes since midnight
}

var rackBlocks = parseBlocks(TimeBlocks)

func parseBlocks(labels []string) []timeBlock {
	out := make([]timeBlock, 0, len(labels))
	for _, l := range labels {
		start, err := model.ParseTimeOfDay(l[:5])
		if err != nil {
			panic("bad time block label " + l)
		}
		out = append(out, timeBlock{label: l, start: start.Minutes()})
	}
	return out
}

// NewRack returns a rack with every weekday and block present and empty.
func NewRack() Rack {
	rack := make(Rack, len(Weekdays))
	for _, day := range Weekdays {
		blocks := make(map[string][]model.Reservation, len(TimeBlocks))
		for _, b := range TimeBlocks {
			blocks[b] = []model.Reservation{}
		}
		rack[day] = blocks
	}
	return rack
}

// WeekdayName returns the rack column for d.
func WeekdayName(d model.Date) string {
	// time.Weekday counts from Sunday.
	return Weekdays[(int(d.Weekday())+6)%7]
}

// BuildRack places each reservation in every block its session overlaps.
// A session [start, start+duration) overlaps a block [b, b+1h) when
// start < b+1h and start+duration > b.  Reservations without a date, a
// start time or a duration are skipped.
func BuildRack(reservations []model.Reservation, log *zap.Logger) Rack {
	if log == nil {
		log = zap.NewNop()
	}
	rack := NewRack()
	for _, r := range reservations {
		if r.StartTime == nil || r.Duration == 0 || r.Date == nil {
			log.Warn("reservation skipped in rack: missing start time, date or duration", zap.Uint64("reservation_id", r.ID))
			continue
		}
		day := rack[WeekdayName(*r.Date)]
		start := r.StartTime.Minutes()
		end := start + r.Duration
		for _, b := range rackBlocks {
			if start < b.start+blockMinutes && end > b.start {
				day[b.label] = append(day[b.label], r)
			}
		}
	}
	return rack
}

// WeeklyRack aggregates every stored reservation.
func (s *ReservationService) WeeklyRack(ctx context.Context) (Rack, error) {
	all, err := s.reservations.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildRack(all, s.log), nil
}

// WeeklyRackBetween aggregates reservations dated within [from, to].
func (s *ReservationService) WeeklyRackBetween(ctx context.Context, from, to model.Date) (Rack, error) {
	rs, err := s.reservations.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return BuildRack(rs, s.log), nil
}
