package touchline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bassista/go_touchline/internal/logger"
	"github.com/containerd/errdefs"
	gocache "github.com/patrickmn/go-cache"
)

const modulesKey = "modules"

// Account lists the modules reachable with one set of credentials.
type Account struct {
	api        RemoteAPI
	moduleOpts []ModuleOption
	ttl        time.Duration

	mu    sync.Mutex
	list  *gocache.Cache
	known map[string]*Module
}

type AccountOption func(*Account)

// WithModuleListTTL sets how long the module list is kept. Zero keeps it until a refresh.
func WithModuleListTTL(d time.Duration) AccountOption {
	return func(a *Account) { a.ttl = d }
}

// WithModuleOptions applies opts to every module the account creates.
func WithModuleOptions(opts ...ModuleOption) AccountOption {
	return func(a *Account) { a.moduleOpts = append(a.moduleOpts, opts...) }
}

func NewAccount(api RemoteAPI, opts ...AccountOption) *Account {
	a := &Account{api: api, known: map[string]*Module{}}
	for _, opt := range opts {
		opt(a)
	}
	exp := gocache.NoExpiration
	if a.ttl > 0 {
		exp = a.ttl
	}
	a.list = gocache.New(exp, 10*time.Minute)
	return a
}

// Modules returns the account's modules, listing them upstream on first use,
// after the list expires, or when refresh is set. A module keeps its snapshot
// cache across list refreshes.
func (a *Account) Modules(ctx context.Context, refresh bool) ([]*Module, error) {
	if !refresh {
		if v, ok := a.list.Get(modulesKey); ok {
			return v.([]*Module), nil
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if !refresh {
		if v, ok := a.list.Get(modulesKey); ok {
			return v.([]*Module), nil
		}
	}

	summaries, err := a.api.FetchModules(ctx)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}

	mods := make([]*Module, 0, len(summaries))
	for _, s := range summaries {
		m, ok := a.known[s.UDID]
		if !ok {
			m = NewModule(a.api, s, a.moduleOpts...)
			a.known[s.UDID] = m
		}
		mods = append(mods, m)
	}
	a.list.SetDefault(modulesKey, mods)
	logger.WithComponent("account").Debugf("listed %d modules", len(mods))
	return mods, nil
}

// Module returns the module with the given udid.
func (a *Account) Module(ctx context.Context, id string, refresh bool) (*Module, bool, error) {
	mods, err := a.Modules(ctx, refresh)
	if err != nil {
		return nil, false, err
	}
	for _, m := range mods {
		if m.ID() == id {
			return m, true, nil
		}
	}
	return nil, false, nil
}

// UserID returns the authenticated user's identifier when the remote exposes it.
func (a *Account) UserID(ctx context.Context) (int, error) {
	ui, ok := a.api.(UserIdentifier)
	if !ok {
		return 0, fmt.Errorf("user id: %w", errdefs.ErrNotImplemented)
	}
	return ui.UserID(ctx)
}
