// Package touchline binds the module snapshot cache, zone and schedule indexes
// and the mutation protocols of a TouchlineSL account.
package touchline

import (
	"context"

	"github.com/bassista/go_touchline/internal/model"
)

// RemoteAPI is the vendor capability the package consumes. Implementations return
// validated records, or errors classified with the errdefs classes listed in errors.go.
type RemoteAPI interface {
	FetchModule(ctx context.Context, moduleID string) (*model.Module, error)
	FetchModules(ctx context.Context) ([]model.AccountModule, error)
	SetZoneTemperature(ctx context.Context, moduleID string, modeID, zoneID, tenths int) error
	SetZoneSchedule(ctx context.Context, moduleID string, zoneID int, payload model.SchedulePayload) error
}

// UserIdentifier is implemented by remotes that know the authenticated user.
type UserIdentifier interface {
	UserID(ctx context.Context) (int, error)
}
