package app

import (
	"context"
	"errors"

	"github.com/bassista/go_touchline/internal/client"
	"github.com/bassista/go_touchline/internal/config"
	"github.com/bassista/go_touchline/internal/logger"
	"github.com/bassista/go_touchline/internal/touchline"
)

// App is the application container (immutable dependencies + lifecycle context).
// It is not a request context; handlers should still use gin's request context.
type App struct {
	Config  *config.Config
	Account *touchline.Account

	BaseCtx context.Context
	Cancel  context.CancelFunc

	// watch is replaceable in tests.
	watch func(func(*config.Config)) bool
}

func New(cfg *config.Config, account *touchline.Account) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if account == nil {
		return nil, errors.New("account is nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Config:  cfg,
		Account: account,
		BaseCtx: ctx,
		Cancel:  cancel,
		watch:   config.Watch,
	}, nil
}

// NewAccount wires the vendor client and the account facade from cfg.
func NewAccount(cfg *config.Config) *touchline.Account {
	remote := client.New(client.Config{
		BaseURL:    cfg.Remote.BaseURL,
		Username:   cfg.Remote.Username,
		Password:   cfg.Remote.Password,
		Timeout:    cfg.Remote.HTTPTimeout,
		RatePerSec: cfg.Remote.RateLimitPerSec,
		Burst:      cfg.Remote.RateBurst,
	})
	return touchline.NewAccount(remote,
		touchline.WithModuleListTTL(cfg.Cache.ModuleListTTL),
		touchline.WithModuleOptions(touchline.WithCacheValidity(cfg.Cache.Validity())),
	)
}

func (a *App) Shutdown() {
	if a == nil || a.Cancel == nil {
		return
	}
	a.Cancel()
}

// StartWatchers follows the config file and re-applies the log level when it changes.
// Other settings take effect on restart.
func (a *App) StartWatchers() {
	started := a.watch(func(cfg *config.Config) {
		if err := logger.ApplyLevel(cfg.Misc.LogLevel); err != nil {
			logger.WithComponent("app").Warnf("cannot apply log level %q: %v", cfg.Misc.LogLevel, err)
		}
	})
	if !started {
		logger.WithComponent("app").Info("no config file in use, config watcher not started")
	}
}

// Warm lists the account's modules so credential problems surface at startup.
func (a *App) Warm(ctx context.Context) error {
	mods, err := a.Account.Modules(ctx, false)
	if err != nil {
		return err
	}
	for _, m := range mods {
		logger.WithComponent("app").Infof("module %q (%s) available", m.Name(), m.ID())
	}
	return nil
}
