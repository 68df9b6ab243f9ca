package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/goliatone/go-workboard/components/dashboard"
	"github.com/goliatone/go-workboard/components/dashboard/httpapi"
	"github.com/goliatone/go-workboard/components/dedupe"
	"github.com/goliatone/go-workboard/pkg/activity"
	"github.com/goliatone/go-workboard/pkg/activity/usersink"
	"github.com/goliatone/go-workboard/pkg/config"
	"github.com/goliatone/go-workboard/pkg/hosted"
	"github.com/goliatone/go-workboard/pkg/logging"
	"github.com/goliatone/go-workboard/pkg/sqlstore"
)

// app holds the wired components shared by subcommands.
type app struct {
	cfg       config.Config
	logger    zerolog.Logger
	db        *sql.DB
	settings  dashboard.SettingsStore
	products  dedupe.Store
	tokens    httpapi.TokenResolver
	broadcast *dashboard.BroadcastHook
	hooks     activity.Hooks
	telemetry dashboard.Telemetry
	service   *dashboard.Service
	job       *dedupe.Job
}

func newApp(g *Globals) (*app, error) {
	cfg, err := config.Load(config.Options{File: g.Config})
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}

	a := &app{cfg: cfg}
	a.logger = logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: "stderr"})

	if err := a.openStores(); err != nil {
		return nil, err
	}

	catalog, err := dashboard.BootstrapCatalog(cfg.Manifest.Path)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.broadcast = dashboard.NewBroadcastHook()
	a.hooks = activity.Hooks{usersink.Hook{Sink: usersink.LogSink{Logger: a.logger}}}
	a.telemetry = dashboard.LogTelemetry{Logger: a.logger}
	a.service = dashboard.NewService(dashboard.Options{
		SettingsStore:  a.settings,
		Cache:          dashboard.NewSettingsCache(cfg.Cache.TTL),
		Catalog:        catalog,
		RefreshHook:    a.broadcast,
		Telemetry:      a.telemetry,
		ActivityHooks:  a.hooks,
		ActivityConfig: activity.Config{Enabled: true},
		Logger:         &a.logger,
	})

	var limiter *rate.Limiter
	if cfg.Dedupe.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Dedupe.RateLimit), 1)
	}
	a.job = dedupe.NewJob(a.products, dedupe.Options{
		BatchSize: cfg.Dedupe.BatchSize,
		Limiter:   limiter,
		Logger:    &a.logger,
	})
	return a, nil
}

func (a *app) openStores() error {
	if a.cfg.UseHosted() {
		client, err := hosted.NewClient(hosted.Config{BaseURL: a.cfg.Hosted.URL, APIKey: a.cfg.Hosted.APIKey})
		if err != nil {
			return err
		}
		a.settings = hosted.NewSettingsStore(client)
		a.products = hosted.NewProductStore(client)
		a.tokens = client
		a.logger.Debug().Str("url", a.cfg.Hosted.URL).Msg("using hosted store")
		return nil
	}

	db, err := sqlstore.Open(a.cfg.Database.Path, sqlstore.Options{MaxOpenConns: a.cfg.Database.MaxOpenConns})
	if err != nil {
		return err
	}
	a.db = db
	a.settings = sqlstore.NewSettingsStore(db)
	a.products = sqlstore.NewProductStore(db)
	a.tokens = sqlstore.NewTokenStore(db)
	a.logger.Debug().Str("path", a.cfg.Database.Path).Msg("using sqlite store")
	return nil
}

// emitter returns an activity emitter over the app's hooks.
func (a *app) emitter() *activity.Emitter {
	return activity.NewEmitter(a.hooks, activity.Config{Enabled: true})
}

// localDB returns the SQLite handle or an error when the hosted backend is in use.
func (a *app) localDB() (*sql.DB, error) {
	if a.db == nil {
		return nil, errors.New("workboardctl: command requires the local sqlite store")
	}
	return a.db, nil
}

func (a *app) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("close database")
	}
}

func ownerRequired(owner string) error {
	if owner == "" {
		return fmt.Errorf("workboardctl: --owner is required")
	}
	return nil
}
