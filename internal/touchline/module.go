package touchline

import (
	"context"
	"fmt"
	"sync"

	"github.com/bassista/go_touchline/internal/cache"
	"github.com/bassista/go_touchline/internal/logger"
	"github.com/bassista/go_touchline/internal/model"
)

// Module is one controller of an account. It owns the module's snapshot cache and
// the views derived from the current snapshot.
type Module struct {
	id      string
	name    string
	email   string
	kind    string
	version string

	api   RemoteAPI
	cache cache.SnapshotSource

	mu    sync.Mutex
	views *views
}

// views are the indexes built over one snapshot. They are rebuilt whenever the
// cache hands out a different snapshot and dropped on invalidation.
type views struct {
	snap      *model.Module
	zones     *ZoneIndex
	schedules *ScheduleIndex
}

// NewModule creates a module facade for the given account module summary.
func NewModule(api RemoteAPI, summary model.AccountModule, opts ...ModuleOption) *Module {
	var cfg moduleConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Module{
		id:    summary.UDID,
		name:  summary.Name,
		email: summary.Email,
		kind:  summary.Type,
		api:   api,
	}
	if summary.Version != nil {
		m.version = *summary.Version
	}

	if cfg.source != nil {
		m.cache = cfg.source
	} else {
		fetch := func(ctx context.Context) (*model.Module, error) {
			return api.FetchModule(ctx, m.id)
		}
		m.cache = cache.NewEntry(fetch, append([]cache.Option{cache.WithName(m.id)}, cfg.cacheOpts...)...)
	}
	return m
}

func (m *Module) ID() string      { return m.id }
func (m *Module) Name() string    { return m.name }
func (m *Module) Email() string   { return m.email }
func (m *Module) Type() string    { return m.kind }
func (m *Module) Version() string { return m.version }

// LastFetched returns the Unix millisecond time of the last successful fetch, or 0.
func (m *Module) LastFetched() int64 {
	return m.cache.LastFetched()
}

// InvalidateCache forces the next read to fetch and drops derived views.
func (m *Module) InvalidateCache() {
	m.cache.Invalidate()
	m.mu.Lock()
	m.views = nil
	m.mu.Unlock()
}

// Zones returns the module's zones in controller order. Disabled zones are left
// out unless IncludeDisabled is given.
func (m *Module) Zones(ctx context.Context, opts ...ReadOption) ([]*Zone, error) {
	o := collectReadOptions(opts)
	v, err := m.load(ctx, o.refresh)
	if err != nil {
		return nil, err
	}
	return v.zones.All(o.includeDisabled), nil
}

// Zone looks a zone up by identifier. Disabled zones are always found.
func (m *Module) Zone(ctx context.Context, id int, opts ...ReadOption) (*Zone, bool, error) {
	v, err := m.load(ctx, collectReadOptions(opts).refresh)
	if err != nil {
		return nil, false, err
	}
	z, ok := v.zones.ByID(id)
	return z, ok, nil
}

// ZoneByName returns the first zone with the given name.
func (m *Module) ZoneByName(ctx context.Context, name string, opts ...ReadOption) (*Zone, bool, error) {
	v, err := m.load(ctx, collectReadOptions(opts).refresh)
	if err != nil {
		return nil, false, err
	}
	z, ok := v.zones.ByName(name)
	return z, ok, nil
}

func (m *Module) Schedules(ctx context.Context, opts ...ReadOption) ([]*Schedule, error) {
	v, err := m.load(ctx, collectReadOptions(opts).refresh)
	if err != nil {
		return nil, err
	}
	return v.schedules.All(), nil
}

func (m *Module) Schedule(ctx context.Context, id int, opts ...ReadOption) (*Schedule, bool, error) {
	v, err := m.load(ctx, collectReadOptions(opts).refresh)
	if err != nil {
		return nil, false, err
	}
	s, ok := v.schedules.ByID(id)
	return s, ok, nil
}

func (m *Module) ScheduleByName(ctx context.Context, name string, opts ...ReadOption) (*Schedule, bool, error) {
	v, err := m.load(ctx, collectReadOptions(opts).refresh)
	if err != nil {
		return nil, false, err
	}
	s, ok := v.schedules.ByName(name)
	return s, ok, nil
}

// ScheduleByIndex looks a schedule up by its position index, not its identifier.
func (m *Module) ScheduleByIndex(ctx context.Context, index int, opts ...ReadOption) (*Schedule, bool, error) {
	v, err := m.load(ctx, collectReadOptions(opts).refresh)
	if err != nil {
		return nil, false, err
	}
	s, ok := v.schedules.ByIndex(index)
	return s, ok, nil
}

// SetZoneTemperature switches a zone to a constant target in degrees Celsius.
func (m *Module) SetZoneTemperature(ctx context.Context, zoneID int, celsius float64) error {
	v, err := m.load(ctx, false)
	if err != nil {
		return err
	}
	z, ok := v.zones.ByID(zoneID)
	if !ok {
		return zoneMissing(zoneID)
	}
	return m.setTemperature(ctx, z.ID(), z.ModeID(), celsius)
}

func (m *Module) setTemperature(ctx context.Context, zoneID, modeID int, celsius float64) error {
	tenths := CelsiusToTenths(celsius)
	if err := m.api.SetZoneTemperature(ctx, m.id, modeID, zoneID, tenths); err != nil {
		return fmt.Errorf("set temperature of zone %d: %w", zoneID, err)
	}
	logger.WithComponent("module").Infof("zone %d of %s set to constant %d tenths", zoneID, m.id, tenths)
	m.InvalidateCache()
	return nil
}

// load returns the views over the current snapshot, building them on first use.
func (m *Module) load(ctx context.Context, refresh bool) (*views, error) {
	snap, err := m.cache.Get(ctx, refresh)
	if err != nil {
		return nil, fmt.Errorf("load module %s: %w", m.id, err)
	}
	return m.viewsFor(snap), nil
}

func (m *Module) viewsFor(snap *model.Module) *views {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.views != nil && m.views.snap == snap {
		return m.views
	}
	schedules := newScheduleIndex(snap)
	m.views = &views{
		snap:      snap,
		schedules: schedules,
		zones:     newZoneIndex(m, snap, schedules),
	}
	return m.views
}
