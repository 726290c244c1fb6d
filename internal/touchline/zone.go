package touchline

import (
	"context"

	"github.com/bassista/go_touchline/internal/model"
)

// Zone is a read-only view of one zone in a snapshot. A view captured before a
// mutation keeps describing the pre-mutation state; re-resolve it to see changes.
type Zone struct {
	rec      *model.Zone
	schedule *Schedule
	module   *Module
}

func (z *Zone) ID() int      { return z.rec.Zone.ID }
func (z *Zone) Name() string { return z.rec.Description.Name }

// ModeID is the identifier of the zone's mode record, used to address temperature changes.
func (z *Zone) ModeID() int { return z.rec.Mode.ID }

func (z *Zone) Mode() model.Mode { return z.rec.Mode.Mode }

// Temperature is the measured temperature. It is absent when the sensor reports none.
func (z *Zone) Temperature() (float64, bool) {
	t := z.rec.Zone.CurrentTemperature
	if t == nil || *t == 0 {
		return 0, false
	}
	return tenthsToCelsius(*t), true
}

func (z *Zone) TargetTemperature() float64 {
	return tenthsToCelsius(z.rec.Zone.SetTemperature)
}

func (z *Zone) Humidity() float64 {
	return float64(z.rec.Zone.Humidity)
}

func (z *Zone) BatteryLevel() (int, bool) {
	return optionalInt(z.rec.Zone.BatteryLevel)
}

func (z *Zone) SignalStrength() (int, bool) {
	return optionalInt(z.rec.Zone.SignalStrength)
}

func (z *Zone) Enabled() bool {
	return z.rec.Zone.ZoneState != model.ZoneStateOff
}

func (z *Zone) RelayOn() bool {
	return z.rec.Zone.Flags.RelayState == "on"
}

func (z *Zone) Algorithm() string {
	return z.rec.Zone.Flags.Algorithm
}

// Schedule is the global schedule the zone follows, or nil unless the zone is in
// global schedule mode.
func (z *Zone) Schedule() *Schedule {
	return z.schedule
}

// LocalSchedule returns the zone's own schedule when the zone is in local schedule mode.
func (z *Zone) LocalSchedule() *model.LocalSchedule {
	if z.rec.Mode.Mode != model.ModeLocalSchedule {
		return nil
	}
	return &z.rec.Schedule
}

// Record returns the underlying snapshot record. Callers must not modify it.
func (z *Zone) Record() *model.Zone { return z.rec }

// SetTemperature switches the zone to a constant target in degrees Celsius.
func (z *Zone) SetTemperature(ctx context.Context, celsius float64) error {
	return z.module.setTemperature(ctx, z.ID(), z.ModeID(), celsius)
}

// SetSchedule moves the zone onto the global schedule with the given identifier.
func (z *Zone) SetSchedule(ctx context.Context, scheduleID int, opts ...AssignOption) error {
	return z.module.AssignZoneSchedule(ctx, z.ID(), scheduleID, opts...)
}

func tenthsToCelsius(v int) float64 {
	return float64(v) / 10
}

// CelsiusToTenths encodes a temperature the way the controller expects,
// truncating toward zero.
func CelsiusToTenths(celsius float64) int {
	return int(celsius * 10)
}

func optionalInt(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}
