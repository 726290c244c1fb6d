package touchline

import "github.com/bassista/go_touchline/internal/model"

// ZoneIndex looks up the zones of one snapshot.
type ZoneIndex struct {
	items []*Zone
}

func newZoneIndex(m *Module, snap *model.Module, schedules *ScheduleIndex) *ZoneIndex {
	elems := snap.Zones.Elements
	idx := &ZoneIndex{items: make([]*Zone, 0, len(elems))}
	for i := range elems {
		z := &Zone{rec: &elems[i], module: m}
		if z.rec.Mode.Mode == model.ModeGlobalSchedule {
			if s, ok := schedules.ByIndex(z.rec.Mode.ScheduleIndex); ok {
				z.schedule = s
			}
		}
		idx.items = append(idx.items, z)
	}
	return idx
}

// All returns zones in snapshot order, skipping disabled ones unless includeDisabled is set.
func (x *ZoneIndex) All(includeDisabled bool) []*Zone {
	out := make([]*Zone, 0, len(x.items))
	for _, z := range x.items {
		if includeDisabled || z.Enabled() {
			out = append(out, z)
		}
	}
	return out
}

// ByID finds a zone by identifier, disabled or not.
func (x *ZoneIndex) ByID(id int) (*Zone, bool) {
	for _, z := range x.items {
		if z.rec.Zone.ID == id {
			return z, true
		}
	}
	return nil, false
}

// ByName returns the first zone with the given name, disabled or not.
func (x *ZoneIndex) ByName(name string) (*Zone, bool) {
	for _, z := range x.items {
		if z.rec.Description.Name == name {
			return z, true
		}
	}
	return nil, false
}
