package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/coursebridge-backend/internal/data/db"
	"github.com/yungbote/coursebridge-backend/internal/http"
	"github.com/yungbote/coursebridge-backend/internal/observability"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

type App struct {
	Log        *logger.Logger
	DB         *gorm.DB
	Server     *http.Server
	Cfg        Config
	Clients    Clients
	Repos      Repos
	Aggregates Aggregates
	Services   Services
	Metrics    *observability.Metrics

	store        db.Service
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New(cfg Config) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		Enabled:     cfg.OtelEnabled,
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})
	metrics := observability.Init(log, cfg.MetricsEnabled)

	store, err := openStore(cfg, log)
	if err != nil {
		log.Sync()
		return nil, err
	}
	if err := store.AutoMigrateAll(); err != nil {
		_ = store.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := store.DB()

	clients, err := wireClients(log, cfg)
	if err != nil {
		_ = store.Close()
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	aggs := wireAggregates(theDB, log, metrics, reposet)
	if err := checkContracts(log, aggs.all()...); err != nil {
		clients.Close()
		_ = store.Close()
		log.Sync()
		return nil, fmt.Errorf("aggregate contracts: %w", err)
	}
	serviceset := wireServices(theDB, log, cfg, metrics, clients.Redis, reposet)
	handlerset := wireHandlers(theDB, log, aggs, serviceset)

	return &App{
		Log:          log,
		DB:           theDB,
		Server:       wireServer(log, cfg, metrics, handlerset),
		Cfg:          cfg,
		Clients:      clients,
		Repos:        reposet,
		Aggregates:   aggs,
		Services:     serviceset,
		Metrics:      metrics,
		store:        store,
		otelShutdown: otelShutdown,
	}, nil
}

func openStore(cfg Config, log *logger.Logger) (db.Service, error) {
	switch cfg.DBDriver {
	case "sqlite":
		s, err := db.NewSQLiteService(cfg.SQLitePath, log)
		if err != nil {
			return nil, fmt.Errorf("init sqlite: %w", err)
		}
		return s, nil
	default:
		s, err := db.NewPostgresService(cfg.Postgres(), log)
		if err != nil {
			return nil, fmt.Errorf("init postgres: %w", err)
		}
		return s, nil
	}
}

// Start launches the background metric collectors.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	a.Metrics.StartPostgresCollector(ctx, a.Log, a.DB)
	a.Metrics.StartRedisCollector(ctx, a.Log, a.Clients.Redis)
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Serving HTTP", "addr", a.Cfg.Addr())
	return a.Server.Run(a.Cfg.Addr())
}

// Shutdown drains the server, then releases clients, the database and the tracer.
func (a *App) Shutdown(ctx context.Context) error {
	if a == nil {
		return nil
	}
	var firstErr error
	if err := a.Server.Shutdown(ctx); err != nil {
		firstErr = err
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.Clients.Close()
	if a.store != nil {
		if err := a.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
	return firstErr
}
