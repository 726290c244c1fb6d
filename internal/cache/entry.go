package cache

import (
	"context"
	"sync"
	"time"

	"github.com/bassista/go_touchline/internal/logger"
	"github.com/bassista/go_touchline/internal/model"
)

// DefaultValidity is how long a snapshot is served before a read triggers a refetch.
const DefaultValidity = 30 * time.Second

// Fetcher retrieves the full module state from the remote side.
type Fetcher func(ctx context.Context) (*model.Module, error)

// Clock returns the current instant. Tests replace it to move time forward.
type Clock func() time.Time

// Entry holds the last fetched snapshot of one module.
type Entry struct {
	mu        sync.RWMutex
	fetch     Fetcher
	now       Clock
	validity  time.Duration
	snapshot  *model.Module
	fetchedAt time.Time // zero when empty or invalidated
	name      string
}

type Option func(*Entry)

// WithValidity sets the freshness window. Negative values are treated as zero.
func WithValidity(d time.Duration) Option {
	return func(e *Entry) {
		if d < 0 {
			d = 0
		}
		e.validity = d
	}
}

func WithClock(c Clock) Option {
	return func(e *Entry) {
		if c != nil {
			e.now = c
		}
	}
}

// WithName labels log lines, usually with the module id.
func WithName(name string) Option {
	return func(e *Entry) { e.name = name }
}

// NewEntry creates an empty entry. The first Get always fetches.
func NewEntry(fetch Fetcher, opts ...Option) *Entry {
	e := &Entry{
		fetch:    fetch,
		now:      time.Now,
		validity: DefaultValidity,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Get returns the stored snapshot while it is fresh, and fetches a new one when
// force is set, when nothing is stored, or when the validity window has elapsed.
// A fresh hit returns the same pointer as the previous call. A failed fetch leaves
// the stored snapshot and timestamp untouched.
func (e *Entry) Get(ctx context.Context, force bool) (*model.Module, error) {
	if !force {
		e.mu.RLock()
		snap, fresh := e.snapshot, e.freshLocked()
		e.mu.RUnlock()
		if fresh {
			logger.WithComponent("cache").Tracef("hit for %s", e.name)
			return snap, nil
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// another caller may have refreshed while we waited for the lock
	if !force && e.freshLocked() {
		return e.snapshot, nil
	}

	logger.WithComponent("cache").Debugf("fetching snapshot for %s (forced=%t)", e.name, force)
	snap, err := e.fetch(ctx)
	if err != nil {
		return nil, err
	}
	e.snapshot = snap
	e.fetchedAt = e.now()
	return snap, nil
}

// Invalidate marks the snapshot stale so the next Get refetches. The snapshot
// itself is kept until that fetch succeeds.
func (e *Entry) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fetchedAt = time.Time{}
	logger.WithComponent("cache").Debugf("invalidated %s", e.name)
}

// LastFetched returns the instant of the last successful fetch in Unix
// milliseconds, or 0 when empty or invalidated.
func (e *Entry) LastFetched() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.fetchedAt.IsZero() {
		return 0
	}
	return e.fetchedAt.UnixMilli()
}

// Validity returns the configured freshness window.
func (e *Entry) Validity() time.Duration {
	return e.validity
}

func (e *Entry) freshLocked() bool {
	if e.snapshot == nil || e.fetchedAt.IsZero() {
		return false
	}
	return e.now().Sub(e.fetchedAt) <= e.validity
}
