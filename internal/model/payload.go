package model

// SchedulePayload is the body of a "set global schedule" request. The remote side
// treats it as a full overwrite: SetInZones replaces the schedule's zone list.
type SchedulePayload struct {
	ScheduleName string           `json:"scheduleName"`
	SetInZones   []ZoneAssignment `json:"setInZones"`
	Schedule     ScheduleBody     `json:"schedule"`
}

// ZoneAssignment addresses a zone through its zone and mode record identifiers.
type ZoneAssignment struct {
	ZoneID int `json:"zoneId"`
	ModeID int `json:"modeId"`
}

type ScheduleBody struct {
	ID            int        `json:"id"`
	Index         int        `json:"index"`
	P0Days        []string   `json:"p0Days"`
	P0SetbackTemp int        `json:"p0SetbackTemp"`
	P0Intervals   []Interval `json:"p0Intervals"`
	P1Days        []string   `json:"p1Days"`
	P1SetbackTemp int        `json:"p1SetbackTemp"`
	P1Intervals   []Interval `json:"p1Intervals"`
}

// NewScheduleBody copies a schedule into an outbound body, dropping empty interval slots
// which the remote side rejects.
func NewScheduleBody(s GlobalSchedule) ScheduleBody {
	return ScheduleBody{
		ID:            s.ID,
		Index:         s.Index,
		P0Days:        s.P0Days,
		P0SetbackTemp: s.P0SetbackTemp,
		P0Intervals:   nonEmptyIntervals(s.P0Intervals),
		P1Days:        s.P1Days,
		P1SetbackTemp: s.P1SetbackTemp,
		P1Intervals:   nonEmptyIntervals(s.P1Intervals),
	}
}

func nonEmptyIntervals(in []Interval) []Interval {
	out := make([]Interval, 0, len(in))
	for _, iv := range in {
		if iv.Empty() {
			continue
		}
		out = append(out, iv)
	}
	return out
}

// ConstantTemperature is the body of a "set zone" request switching a zone to a
// constant target.
type ConstantTemperature struct {
	Mode ConstantTemperatureMode `json:"mode"`
}

type ConstantTemperatureMode struct {
	ID             int  `json:"id"`
	ParentID       int  `json:"parentId"`
	Mode           Mode `json:"mode"`
	ConstTempTime  int  `json:"constTempTime"`
	SetTemperature int  `json:"setTemperature"`
	ScheduleIndex  int  `json:"scheduleIndex"`
}

// NewConstantTemperature builds the request for zoneID using its mode record modeID.
func NewConstantTemperature(modeID, zoneID, tenths int) ConstantTemperature {
	return ConstantTemperature{Mode: ConstantTemperatureMode{
		ID:             modeID,
		ParentID:       zoneID,
		Mode:           ModeConstantTemp,
		SetTemperature: tenths,
	}}
}
