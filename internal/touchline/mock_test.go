package touchline

import (
	"context"

	"github.com/bassista/go_touchline/internal/fixture"
	"github.com/bassista/go_touchline/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockRemoteAPI is a mock implementation of the RemoteAPI interface
type MockRemoteAPI struct {
	mock.Mock
}

// FetchModule accepts either a *model.Module or a func() *model.Module as the
// first return value, the latter producing a new snapshot on every call.
func (m *MockRemoteAPI) FetchModule(ctx context.Context, moduleID string) (*model.Module, error) {
	args := m.Called(ctx, moduleID)
	if fn, ok := args.Get(0).(func() *model.Module); ok {
		return fn(), args.Error(1)
	}
	mod, _ := args.Get(0).(*model.Module)
	return mod, args.Error(1)
}

func (m *MockRemoteAPI) FetchModules(ctx context.Context) ([]model.AccountModule, error) {
	args := m.Called(ctx)
	mods, _ := args.Get(0).([]model.AccountModule)
	return mods, args.Error(1)
}

func (m *MockRemoteAPI) SetZoneTemperature(ctx context.Context, moduleID string, modeID, zoneID, tenths int) error {
	args := m.Called(ctx, moduleID, modeID, zoneID, tenths)
	return args.Error(0)
}

func (m *MockRemoteAPI) SetZoneSchedule(ctx context.Context, moduleID string, zoneID int, payload model.SchedulePayload) error {
	args := m.Called(ctx, moduleID, zoneID, payload)
	return args.Error(0)
}

// fixtureSnapshots returns a snapshot producer for FetchModule, applying mutate
// to each fresh copy.
func fixtureSnapshots(mutate func(*model.Module)) func() *model.Module {
	return func() *model.Module {
		m := fixture.Module()
		if mutate != nil {
			mutate(m)
		}
		return m
	}
}

func newFixtureModule(mutate func(*model.Module)) (*Module, *MockRemoteAPI) {
	api := &MockRemoteAPI{}
	api.On("FetchModule", mock.Anything, fixture.ModuleID).Return(fixtureSnapshots(mutate), nil)
	return NewModule(api, fixture.Modules()[0]), api
}
