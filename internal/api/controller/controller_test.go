package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/bassista/go_touchline/internal/fixture"
	"github.com/bassista/go_touchline/internal/model"
	"github.com/bassista/go_touchline/internal/touchline"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeRemote serves the fixture and records mutations.
type fakeRemote struct {
	mu sync.Mutex

	listErr  error
	fetchErr error
	setErr   error

	fetches      int
	temperatures []temperatureCall
	schedules    []scheduleCall
}

type temperatureCall struct {
	moduleID       string
	modeID, zoneID int
	tenths         int
}

type scheduleCall struct {
	moduleID string
	zoneID   int
	payload  model.SchedulePayload
}

func (f *fakeRemote) FetchModule(_ context.Context, _ string) (*model.Module, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return fixture.Module(), nil
}

func (f *fakeRemote) FetchModules(_ context.Context) ([]model.AccountModule, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return fixture.Modules(), nil
}

func (f *fakeRemote) SetZoneTemperature(_ context.Context, moduleID string, modeID, zoneID, tenths int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.temperatures = append(f.temperatures, temperatureCall{moduleID, modeID, zoneID, tenths})
	return nil
}

func (f *fakeRemote) SetZoneSchedule(_ context.Context, moduleID string, zoneID int, payload model.SchedulePayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.schedules = append(f.schedules, scheduleCall{moduleID, zoneID, payload})
	return nil
}

func (f *fakeRemote) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

// newTestRouter mounts every module controller the way the route package does.
func newTestRouter(remote *fakeRemote) *gin.Engine {
	account := touchline.NewAccount(remote)
	mc := NewModuleController(account)
	zc := NewZoneController(account)
	sc := NewScheduleController(account)

	r := gin.New()
	api := r.Group("/api/modules")
	api.GET("", mc.AllModules)
	api.POST("/:module/cache/invalidate", mc.InvalidateCache)
	api.GET("/:module/zones", zc.AllZones)
	api.GET("/:module/zones/:zone", zc.GetZone)
	api.POST("/:module/zones/:zone/temperature", zc.SetTemperature)
	api.POST("/:module/zones/:zone/schedule", zc.SetSchedule)
	api.GET("/:module/schedules", sc.AllSchedules)
	api.GET("/:module/schedules/:schedule", sc.GetSchedule)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to unmarshal %q: %v", w.Body.String(), err)
	}
	return out
}

const modulePath = "/api/modules/" + fixture.ModuleID
