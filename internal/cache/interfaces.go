package cache

import (
	"context"

	"github.com/bassista/go_touchline/internal/model"
)

// SnapshotSource is the cache API the module facade depends on.
type SnapshotSource interface {
	Get(ctx context.Context, force bool) (*model.Module, error)
	Invalidate()
	LastFetched() int64
}

var _ SnapshotSource = (*Entry)(nil)
