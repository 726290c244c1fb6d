package touchline

import (
	"time"

	"github.com/bassista/go_touchline/internal/cache"
)

type readOptions struct {
	includeDisabled bool
	refresh         bool
}

// ReadOption tunes a zone or schedule read.
type ReadOption func(*readOptions)

// IncludeDisabled makes Zones return switched-off zones too.
func IncludeDisabled() ReadOption {
	return func(o *readOptions) { o.includeDisabled = true }
}

// Refresh forces a fetch regardless of the cache validity window.
func Refresh() ReadOption {
	return func(o *readOptions) { o.refresh = true }
}

func collectReadOptions(opts []ReadOption) readOptions {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type assignOptions struct {
	allowStale bool
}

// AssignOption tunes a schedule reassignment.
type AssignOption func(*assignOptions)

// AllowStale lets a reassignment build its payload from a cached snapshot instead
// of forcing a fetch. An assignment made by another client since that snapshot
// will be dropped by the overwrite.
func AllowStale() AssignOption {
	return func(o *assignOptions) { o.allowStale = true }
}

type moduleConfig struct {
	cacheOpts []cache.Option
	source    cache.SnapshotSource
}

// ModuleOption configures a Module at construction.
type ModuleOption func(*moduleConfig)

// WithCacheValidity sets how long a fetched snapshot is served.
func WithCacheValidity(d time.Duration) ModuleOption {
	return func(c *moduleConfig) { c.cacheOpts = append(c.cacheOpts, cache.WithValidity(d)) }
}

// WithCacheOptions passes options through to the module's cache entry.
func WithCacheOptions(opts ...cache.Option) ModuleOption {
	return func(c *moduleConfig) { c.cacheOpts = append(c.cacheOpts, opts...) }
}

// WithSnapshotSource replaces the module's cache entry entirely.
func WithSnapshotSource(src cache.SnapshotSource) ModuleOption {
	return func(c *moduleConfig) { c.source = src }
}
