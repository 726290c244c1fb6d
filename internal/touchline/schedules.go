package touchline

import "github.com/bassista/go_touchline/internal/model"

// Period is one of the two day-groups of a global schedule, temperatures in degrees.
type Period struct {
	Days        []string
	SetbackTemp float64
	Intervals   []model.Interval
}

// Schedule is a read-only view of a global schedule in one snapshot.
type Schedule struct {
	rec *model.GlobalSchedule
}

func (s *Schedule) ID() int      { return s.rec.ID }
func (s *Schedule) Index() int   { return s.rec.Index }
func (s *Schedule) Name() string { return s.rec.Name }

// P0 returns the first period. Empty interval slots are left out.
func (s *Schedule) P0() Period {
	return newPeriod(s.rec.P0Days, s.rec.P0SetbackTemp, s.rec.P0Intervals)
}

// P1 returns the second period. Empty interval slots are left out.
func (s *Schedule) P1() Period {
	return newPeriod(s.rec.P1Days, s.rec.P1SetbackTemp, s.rec.P1Intervals)
}

// Record returns the underlying snapshot record. Callers must not modify it.
func (s *Schedule) Record() *model.GlobalSchedule { return s.rec }

func newPeriod(days []string, setback int, intervals []model.Interval) Period {
	p := Period{Days: days, SetbackTemp: tenthsToCelsius(setback)}
	for _, iv := range intervals {
		if !iv.Empty() {
			p.Intervals = append(p.Intervals, iv)
		}
	}
	return p
}

// ScheduleIndex looks up global schedules of one snapshot. Identifier and
// position index are separate keys.
type ScheduleIndex struct {
	items []*Schedule
}

func newScheduleIndex(snap *model.Module) *ScheduleIndex {
	elems := snap.Zones.GlobalSchedules.Elements
	idx := &ScheduleIndex{items: make([]*Schedule, 0, len(elems))}
	for i := range elems {
		idx.items = append(idx.items, &Schedule{rec: &elems[i]})
	}
	return idx
}

// All returns the schedules in snapshot order.
func (x *ScheduleIndex) All() []*Schedule {
	out := make([]*Schedule, len(x.items))
	copy(out, x.items)
	return out
}

func (x *ScheduleIndex) ByID(id int) (*Schedule, bool) {
	return x.first(func(s *Schedule) bool { return s.rec.ID == id })
}

func (x *ScheduleIndex) ByName(name string) (*Schedule, bool) {
	return x.first(func(s *Schedule) bool { return s.rec.Name == name })
}

func (x *ScheduleIndex) ByIndex(index int) (*Schedule, bool) {
	return x.first(func(s *Schedule) bool { return s.rec.Index == index })
}

func (x *ScheduleIndex) first(match func(*Schedule) bool) (*Schedule, bool) {
	for _, s := range x.items {
		if match(s) {
			return s, true
		}
	}
	return nil, false
}
