package controller

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bassista/go_touchline/internal/api/middleware"
	"github.com/bassista/go_touchline/internal/client"
	"github.com/bassista/go_touchline/internal/fixture"
	"github.com/bassista/go_touchline/internal/model"
	"github.com/bassista/go_touchline/internal/touchline"
	"github.com/containerd/errdefs"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneController_AllZones(t *testing.T) {
	tests := []struct {
		name  string
		query string
		count int
	}{
		{"enabled only", "", 10},
		{"including disabled", "?include_off=true", 40},
		{"refresh", "?refresh=true", 10},
		{"by name", "?name=Bathroom", 1},
		{"by unknown name", "?name=Cellar", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeRemote{})

			w := do(t, r, http.MethodGet, modulePath+"/zones"+tt.query, nil)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Len(t, decode[[]ZoneResponse](t, w), tt.count)
		})
	}
}

func TestZoneController_AllZones_BadQuery(t *testing.T) {
	r := newTestRouter(&fakeRemote{})

	w := do(t, r, http.MethodGet, modulePath+"/zones?include_off=sometimes", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestZoneController_GetZone(t *testing.T) {
	r := newTestRouter(&fakeRemote{})

	w := do(t, r, http.MethodGet, modulePath+"/zones/4000", nil)
	require.Equal(t, http.StatusOK, w.Code)

	z := decode[ZoneResponse](t, w)
	assert.Equal(t, "Kitchen", z.Name)
	assert.Equal(t, model.ModeGlobalSchedule, z.Mode)
	require.NotNil(t, z.Temperature)
	assert.InDelta(t, 22.1, *z.Temperature, 1e-9)
	assert.InDelta(t, 18.0, z.TargetTemperature, 1e-9)
	assert.InDelta(t, 61.0, z.Humidity, 1e-9)
	require.NotNil(t, z.ScheduleID)
	assert.Equal(t, 2948, *z.ScheduleID)
	assert.Equal(t, "Living Spaces", z.ScheduleName)
	assert.True(t, z.Enabled)
}

func TestZoneController_GetZone_LocalSchedule(t *testing.T) {
	r := newTestRouter(&fakeRemote{})

	w := do(t, r, http.MethodGet, modulePath+"/zones/4004", nil)
	require.Equal(t, http.StatusOK, w.Code)

	z := decode[ZoneResponse](t, w)
	require.NotNil(t, z.LocalSchedule)
	assert.Nil(t, z.ScheduleID)
	assert.Equal(t, []IntervalResponse{{Start: 360, Stop: 1320, Temperature: 20.0}}, z.LocalSchedule.P0.Intervals)
	assert.InDelta(t, 17.0, z.LocalSchedule.P0.SetbackTemp, 1e-9)
	assert.Empty(t, z.LocalSchedule.P1.Intervals)

	kitchen := decode[ZoneResponse](t, do(t, r, http.MethodGet, modulePath+"/zones/4000", nil))
	assert.Nil(t, kitchen.LocalSchedule)
}

func TestZoneController_GetZone_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"not a number", "/zones/kitchen", http.StatusBadRequest},
		{"unknown zone", "/zones/9999", http.StatusNotFound},
		{"zone zero is looked up", "/zones/0", http.StatusNotFound},
		{"negative zone", "/zones/-1", http.StatusBadRequest},
		{"disabled zone found", "/zones/4020", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeRemote{})
			assert.Equal(t, tt.status, do(t, r, http.MethodGet, modulePath+tt.path, nil).Code)
		})
	}
}

func TestZoneController_SetTemperature(t *testing.T) {
	remote := &fakeRemote{}
	r := newTestRouter(remote)

	w := do(t, r, http.MethodPost, modulePath+"/zones/4002/temperature", map[string]any{"temperature": 21.5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.Len(t, remote.temperatures, 1)
	assert.Equal(t, temperatureCall{moduleID: fixture.ModuleID, modeID: 6002, zoneID: 4002, tenths: 215}, remote.temperatures[0])

	// the mutation invalidates the snapshot
	require.Equal(t, http.StatusOK, do(t, r, http.MethodGet, modulePath+"/zones/4002", nil).Code)
	assert.Equal(t, 2, remote.fetchCount())
}

func TestZoneController_SetTemperature_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   any
		setErr error
		status int
	}{
		{"missing temperature", "/zones/4002/temperature", map[string]any{}, nil, http.StatusBadRequest},
		{"malformed body", "/zones/4002/temperature", "{", nil, http.StatusBadRequest},
		{"zero is a value", "/zones/4002/temperature", map[string]any{"temperature": 0}, nil, http.StatusOK},
		{"unknown zone", "/zones/9999/temperature", map[string]any{"temperature": 20}, nil, http.StatusNotFound},
		{"upstream down", "/zones/4002/temperature", map[string]any{"temperature": 20}, fmt.Errorf("post: %w", errdefs.ErrUnavailable), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeRemote{setErr: tt.setErr})
			w := do(t, r, http.MethodPost, modulePath+tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestZoneController_SetSchedule(t *testing.T) {
	remote := &fakeRemote{}
	r := newTestRouter(remote)

	w := do(t, r, http.MethodPost, modulePath+"/zones/4002/schedule", map[string]any{"scheduleId": 2948})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.Len(t, remote.schedules, 1)
	call := remote.schedules[0]
	assert.Equal(t, 4002, call.zoneID)
	assert.Equal(t, "Living Spaces", call.payload.ScheduleName)
	assert.Equal(t, []model.ZoneAssignment{
		{ZoneID: 4000, ModeID: 6000},
		{ZoneID: 4002, ModeID: 6002},
		{ZoneID: 4006, ModeID: 6006},
	}, call.payload.SetInZones)
	// reassignment reads a fresh snapshot
	assert.Equal(t, 1, remote.fetchCount())
}

func TestZoneController_SetSchedule_AllowStale(t *testing.T) {
	remote := &fakeRemote{}
	r := newTestRouter(remote)

	require.Equal(t, http.StatusOK, do(t, r, http.MethodGet, modulePath+"/zones", nil).Code)
	w := do(t, r, http.MethodPost, modulePath+"/zones/4002/schedule", map[string]any{"scheduleId": 2948, "allowStale": true})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1, remote.fetchCount())
}

func TestZoneController_SetSchedule_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"missing schedule id", "/zones/4002/schedule", map[string]any{}, http.StatusBadRequest},
		{"unknown schedule", "/zones/4002/schedule", map[string]any{"scheduleId": 1234}, http.StatusConflict},
		{"schedule zero is looked up", "/zones/4002/schedule", map[string]any{"scheduleId": 0}, http.StatusConflict},
		{"negative schedule id", "/zones/4002/schedule", map[string]any{"scheduleId": -3}, http.StatusBadRequest},
		{"unknown zone", "/zones/9999/schedule", map[string]any{"scheduleId": 2948}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := &fakeRemote{}
			r := newTestRouter(remote)
			w := do(t, r, http.MethodPost, modulePath+tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Empty(t, remote.schedules)
		})
	}
}

func TestZoneController_UpstreamTimeoutIsBadGateway(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"bare deadline", context.DeadlineExceeded},
		{"client timeout", fmt.Errorf("get module: %w: %w", errdefs.ErrUnavailable, context.DeadlineExceeded)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeRemote{fetchErr: tt.err})

			w := do(t, r, http.MethodGet, modulePath+"/zones", nil)

			assert.Equal(t, http.StatusBadGateway, w.Code)
			assert.Equal(t, "upstream unavailable", decode[map[string]string](t, w)["error"])
		})
	}
}

func TestZoneController_ExpiredRequestLeavesResponseToMiddleware(t *testing.T) {
	r := newTestRouter(&fakeRemote{fetchErr: context.DeadlineExceeded})

	ctx, cancel := context.WithTimeout(context.Background(), -time.Second)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, modulePath+"/zones", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Empty(t, w.Body.String())
}

func TestZoneController_UpstreamClientTimeout(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch {
		case req.URL.Path == "/authentication":
			_, _ = w.Write([]byte(`{"user_id": 2563, "token": "tok"}`))
		case strings.HasSuffix(req.URL.Path, "/modules"):
			_, _ = w.Write(fixture.ModulesJSON())
		default:
			time.Sleep(300 * time.Millisecond)
			_, _ = w.Write(fixture.ModuleJSON())
		}
	}))
	defer upstream.Close()

	remote := client.New(client.Config{
		BaseURL:  upstream.URL,
		Username: "user",
		Password: "secret",
		Timeout:  100 * time.Millisecond,
		Burst:    1,
	})
	zc := NewZoneController(touchline.NewAccount(remote))
	r := gin.New()
	r.GET("/api/modules/:module/zones", middleware.RequestTimeout(5*time.Second), zc.AllZones)

	w := do(t, r, http.MethodGet, modulePath+"/zones", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code, w.Body.String())
}
