package commands

import (
	"context"
	"fmt"

	"github.com/wonny/twdiff/internal/external/yahoo"
	"github.com/wonny/twdiff/internal/marketdata"
	"github.com/wonny/twdiff/internal/report"
	"github.com/wonny/twdiff/internal/resolver"
	"github.com/wonny/twdiff/internal/store"
	"github.com/wonny/twdiff/pkg/config"
	"github.com/wonny/twdiff/pkg/database"
	"github.com/wonny/twdiff/pkg/httputil"
	"github.com/wonny/twdiff/pkg/logger"
	"github.com/wonny/twdiff/pkg/redis"
)

// cachePrefix namespaces every Redis key of this service
const cachePrefix = "twdiff"

// app holds the wired components shared by serve and report
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	provider marketdata.Provider
	service  *report.Service
	db       *database.DB // nil unless a database is opened
	store    *store.PriceStore
	closers  []func()
}

// newApp wires provider → cache → resolver → report service
func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	// 1. Market data provider
	switch cfg.Provider {
	case config.ProviderPostgres:
		if err := a.openStore(ctx); err != nil {
			a.Close()
			return nil, err
		}
		a.provider = a.store
	default:
		httpClient := httputil.New(cfg, log)
		a.provider = yahoo.NewClient(httpClient, log, cfg.Yahoo.BaseURL)
	}

	// 2. Optional Redis cache for raw daily series
	rc, err := redis.New(cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.closers = append(a.closers, func() { rc.Close() })
	if rc.Enabled() {
		a.provider = marketdata.NewCachedProvider(a.provider, redis.NewCache(rc, cachePrefix), cfg.CacheTTL, log)
	}

	// 3. Resolver + report pipeline
	res := resolver.New(a.provider, cfg.Suffixes, log)
	a.service = report.NewService(res, log).WithTimeout(cfg.QueryTimeout)

	log.WithFields(map[string]interface{}{
		"provider": marketdata.Name(a.provider),
		"suffixes": res.Suffixes(),
	}).Debug("Application wired")

	return a, nil
}

// openStore connects to PostgreSQL and prepares daily_prices
func (a *app) openStore(ctx context.Context) error {
	if a.store != nil {
		return nil
	}
	if a.cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required for the postgres store")
	}

	db, err := database.New(a.cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	a.db = db
	a.closers = append(a.closers, db.Close)

	a.store = store.NewPriceStore(db.Pool)
	if err := a.store.EnsureSchema(ctx); err != nil {
		return err
	}

	a.log.Info("Connected to database")
	return nil
}

// Close releases connections in reverse order
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
