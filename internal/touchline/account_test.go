package touchline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bassista/go_touchline/internal/fixture"
	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type identifiedRemote struct {
	*MockRemoteAPI
	userID int
}

func (r identifiedRemote) UserID(ctx context.Context) (int, error) {
	return r.userID, nil
}

func TestAccount_ModulesCached(t *testing.T) {
	api := &MockRemoteAPI{}
	api.On("FetchModules", mock.Anything).Return(fixture.Modules(), nil)
	a := NewAccount(api)
	ctx := context.Background()

	mods, err := a.Modules(ctx, false)
	require.NoError(t, err)
	require.Len(t, mods, 1)
	assert.Equal(t, fixture.ModuleID, mods[0].ID())

	again, err := a.Modules(ctx, false)
	require.NoError(t, err)
	assert.Same(t, mods[0], again[0])
	api.AssertNumberOfCalls(t, "FetchModules", 1)
}

func TestAccount_RefreshKeepsModuleInstances(t *testing.T) {
	api := &MockRemoteAPI{}
	api.On("FetchModules", mock.Anything).Return(fixture.Modules(), nil)
	a := NewAccount(api)
	ctx := context.Background()

	first, err := a.Modules(ctx, false)
	require.NoError(t, err)
	refreshed, err := a.Modules(ctx, true)
	require.NoError(t, err)

	api.AssertNumberOfCalls(t, "FetchModules", 2)
	assert.Same(t, first[0], refreshed[0])
}

func TestAccount_ModuleListTTL(t *testing.T) {
	api := &MockRemoteAPI{}
	api.On("FetchModules", mock.Anything).Return(fixture.Modules(), nil)
	a := NewAccount(api, WithModuleListTTL(5*time.Millisecond))
	ctx := context.Background()

	_, err := a.Modules(ctx, false)
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	_, err = a.Modules(ctx, false)
	require.NoError(t, err)

	api.AssertNumberOfCalls(t, "FetchModules", 2)
}

func TestAccount_Module(t *testing.T) {
	api := &MockRemoteAPI{}
	api.On("FetchModules", mock.Anything).Return(fixture.Modules(), nil)
	a := NewAccount(api)
	ctx := context.Background()

	m, ok, err := a.Module(ctx, fixture.ModuleID, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Home", m.Name())

	m, ok, err = a.Module(ctx, "missing", false)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, m)
}

func TestAccount_ModuleOptionsApplied(t *testing.T) {
	api := &MockRemoteAPI{}
	api.On("FetchModules", mock.Anything).Return(fixture.Modules(), nil)
	api.On("FetchModule", mock.Anything, fixture.ModuleID).Return(fixtureSnapshots(nil), nil)
	a := NewAccount(api, WithModuleOptions(WithCacheValidity(0)))
	ctx := context.Background()

	m, ok, err := a.Module(ctx, fixture.ModuleID, false)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = m.Zones(ctx)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = m.Zones(ctx)
	require.NoError(t, err)
	api.AssertNumberOfCalls(t, "FetchModule", 2)
}

func TestAccount_ModulesError(t *testing.T) {
	api := &MockRemoteAPI{}
	denied := fmt.Errorf("status 401: %w", errdefs.ErrUnauthenticated)
	api.On("FetchModules", mock.Anything).Return(nil, denied)
	a := NewAccount(api)

	_, _, err := a.Module(context.Background(), fixture.ModuleID, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, denied))
	assert.True(t, IsAuthError(err))
}

func TestAccount_UserID(t *testing.T) {
	a := NewAccount(identifiedRemote{MockRemoteAPI: &MockRemoteAPI{}, userID: 2563})
	id, err := a.UserID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2563, id)

	_, err = NewAccount(&MockRemoteAPI{}).UserID(context.Background())
	assert.True(t, errdefs.IsNotImplemented(err))
}
