package controller

import (
	"github.com/bassista/go_touchline/internal/model"
	"github.com/bassista/go_touchline/internal/touchline"
)

type ModuleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Type        string `json:"type"`
	Version     string `json:"version"`
	LastFetched int64  `json:"lastFetched"`
}

func newModuleResponse(m *touchline.Module) ModuleResponse {
	return ModuleResponse{
		ID:          m.ID(),
		Name:        m.Name(),
		Email:       m.Email(),
		Type:        m.Type(),
		Version:     m.Version(),
		LastFetched: m.LastFetched(),
	}
}

// ZoneResponse is the API view of a zone. Temperatures are in degrees Celsius.
type ZoneResponse struct {
	ID                int        `json:"id"`
	Name              string     `json:"name"`
	Mode              model.Mode `json:"mode"`
	Enabled           bool       `json:"enabled"`
	Temperature       *float64   `json:"temperature"`
	TargetTemperature float64    `json:"targetTemperature"`
	Humidity          float64    `json:"humidity"`
	BatteryLevel      *int       `json:"batteryLevel"`
	SignalStrength    *int       `json:"signalStrength"`
	RelayOn           bool       `json:"relayOn"`
	Algorithm         string     `json:"algorithm"`
	ScheduleID        *int       `json:"scheduleId,omitempty"`
	ScheduleName      string     `json:"scheduleName,omitempty"`

	// LocalSchedule is set only for zones in local schedule mode.
	LocalSchedule *LocalScheduleResponse `json:"localSchedule,omitempty"`
}

type LocalScheduleResponse struct {
	P0 PeriodResponse `json:"p0"`
	P1 PeriodResponse `json:"p1"`
}

func newZoneResponse(z *touchline.Zone) ZoneResponse {
	r := ZoneResponse{
		ID:                z.ID(),
		Name:              z.Name(),
		Mode:              z.Mode(),
		Enabled:           z.Enabled(),
		TargetTemperature: z.TargetTemperature(),
		Humidity:          z.Humidity(),
		RelayOn:           z.RelayOn(),
		Algorithm:         z.Algorithm(),
	}
	if t, ok := z.Temperature(); ok {
		r.Temperature = &t
	}
	if b, ok := z.BatteryLevel(); ok {
		r.BatteryLevel = &b
	}
	if s, ok := z.SignalStrength(); ok {
		r.SignalStrength = &s
	}
	if s := z.Schedule(); s != nil {
		id := s.ID()
		r.ScheduleID = &id
		r.ScheduleName = s.Name()
	}
	if ls := z.LocalSchedule(); ls != nil {
		r.LocalSchedule = &LocalScheduleResponse{
			P0: newPeriodResponse(localPeriod(ls.P0Days, ls.P0SetbackTemp, ls.P0Intervals)),
			P1: newPeriodResponse(localPeriod(ls.P1Days, ls.P1SetbackTemp, ls.P1Intervals)),
		}
	}
	return r
}

func localPeriod(days []string, setback int, intervals []model.Interval) touchline.Period {
	p := touchline.Period{Days: days, SetbackTemp: float64(setback) / 10}
	for _, iv := range intervals {
		if !iv.Empty() {
			p.Intervals = append(p.Intervals, iv)
		}
	}
	return p
}

func newZoneResponses(zones []*touchline.Zone) []ZoneResponse {
	out := make([]ZoneResponse, 0, len(zones))
	for _, z := range zones {
		out = append(out, newZoneResponse(z))
	}
	return out
}

type ScheduleResponse struct {
	ID    int            `json:"id"`
	Index int            `json:"index"`
	Name  string         `json:"name"`
	P0    PeriodResponse `json:"p0"`
	P1    PeriodResponse `json:"p1"`
}

type PeriodResponse struct {
	Days        []string           `json:"days"`
	SetbackTemp float64            `json:"setbackTemperature"`
	Intervals   []IntervalResponse `json:"intervals"`
}

// IntervalResponse has start and stop in minutes after midnight.
type IntervalResponse struct {
	Start       int     `json:"start"`
	Stop        int     `json:"stop"`
	Temperature float64 `json:"temperature"`
}

func newScheduleResponse(s *touchline.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:    s.ID(),
		Index: s.Index(),
		Name:  s.Name(),
		P0:    newPeriodResponse(s.P0()),
		P1:    newPeriodResponse(s.P1()),
	}
}

func newPeriodResponse(p touchline.Period) PeriodResponse {
	out := PeriodResponse{
		Days:        p.Days,
		SetbackTemp: p.SetbackTemp,
		Intervals:   make([]IntervalResponse, 0, len(p.Intervals)),
	}
	for _, iv := range p.Intervals {
		out.Intervals = append(out.Intervals, IntervalResponse{
			Start:       iv.Start,
			Stop:        iv.Stop,
			Temperature: float64(iv.Temp) / 10,
		})
	}
	return out
}
