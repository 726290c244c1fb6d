package touchline

import (
	"context"
	"fmt"

	"github.com/bassista/go_touchline/internal/logger"
	"github.com/bassista/go_touchline/internal/model"
	"github.com/containerd/errdefs"
)

// AssignZoneSchedule moves a zone onto a global schedule.
//
// The remote "set schedule" call overwrites the schedule's whole zone list, so the
// request carries every zone currently on the target schedule plus the moved zone.
// The snapshot is fetched fresh unless AllowStale is given. Nothing is written
// locally: on success the cache is invalidated and the next read fetches.
func (m *Module) AssignZoneSchedule(ctx context.Context, zoneID, scheduleID int, opts ...AssignOption) error {
	var o assignOptions
	for _, opt := range opts {
		opt(&o)
	}

	v, err := m.load(ctx, !o.allowStale)
	if err != nil {
		return err
	}

	target, ok := v.schedules.ByID(scheduleID)
	if !ok {
		return fmt.Errorf("schedule %d: %w: %w", scheduleID, ErrScheduleNotFound, errdefs.ErrFailedPrecondition)
	}
	if _, ok := v.zones.ByID(zoneID); !ok {
		return zoneMissing(zoneID)
	}

	payload := model.SchedulePayload{
		ScheduleName: target.Name(),
		SetInZones:   membership(v.zones, target.Index(), zoneID),
		Schedule:     model.NewScheduleBody(*target.Record()),
	}

	if err := m.api.SetZoneSchedule(ctx, m.id, zoneID, payload); err != nil {
		return fmt.Errorf("assign zone %d to schedule %d: %w", zoneID, scheduleID, err)
	}
	logger.WithComponent("module").Infof("zone %d of %s assigned to schedule %q (%d zones)",
		zoneID, m.id, target.Name(), len(payload.SetInZones))

	m.InvalidateCache()
	return nil
}

// membership lists, in snapshot order, every zone following the schedule at
// scheduleIndex together with the zone being moved.
func membership(zones *ZoneIndex, scheduleIndex, movedZoneID int) []model.ZoneAssignment {
	var out []model.ZoneAssignment
	for _, z := range zones.All(true) {
		onTarget := z.Mode() == model.ModeGlobalSchedule && z.rec.Mode.ScheduleIndex == scheduleIndex
		if onTarget || z.ID() == movedZoneID {
			out = append(out, model.ZoneAssignment{ZoneID: z.ID(), ModeID: z.ModeID()})
		}
	}
	return out
}

func zoneMissing(zoneID int) error {
	return fmt.Errorf("zone %d: %w: %w", zoneID, ErrZoneNotFound, errdefs.ErrFailedPrecondition)
}
