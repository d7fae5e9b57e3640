// Package app owns the process lifecycle: it opens the configured store
// and cache, wires services and handlers, serves HTTP and tears everything
// down in reverse order.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/redis/go-redis/v9"

	"github.com/redmonkez12/profile-directory/internal/auth"
	"github.com/redmonkez12/profile-directory/internal/config"
	"github.com/redmonkez12/profile-directory/internal/database"
	httpServer "github.com/redmonkez12/profile-directory/internal/http"
	"github.com/redmonkez12/profile-directory/internal/logging"
	"github.com/redmonkez12/profile-directory/internal/user"
)

// App holds every long-lived resource of the API process
type App struct {
	cfg     *config.Config
	logger  *logging.Logger
	server  *httpServer.Server
	closers []func() error
}

// New opens connections and builds the HTTP server. On error every
// resource opened so far is released.
func New(ctx context.Context, cfg *config.Config, logger *logging.Logger) (_ *App, err error) {
	app := &App{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			_ = app.Close()
		}
	}()

	repo, err := app.openStore(ctx)
	if err != nil {
		return nil, err
	}

	cache, err := app.openCache(ctx)
	if err != nil {
		return nil, err
	}

	hasher := auth.NewArgon2Hasher(auth.Argon2Params{
		Memory:      uint32(cfg.Password.MemoryKiB),
		Iterations:  uint32(cfg.Password.Iterations),
		Parallelism: uint8(cfg.Password.Parallelism),
	})

	authService, err := auth.NewService(repo, hasher, cache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	profileService := user.NewService(repo, cache, logger)

	router := httpServer.NewRouter(cfg,
		auth.NewHandler(authService),
		user.NewHandler(profileService),
		profileService,
		logger,
	)

	app.server = httpServer.NewServer(
		net.JoinHostPort("", cfg.Server.Port),
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	return app, nil
}

// Run serves until ctx is cancelled or the server fails, then shuts the
// server down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- a.server.Start()
	}()

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		a.logger.Info("shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Close releases connections in reverse order of opening
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openStore(ctx context.Context) (user.Repository, error) {
	switch a.cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := database.OpenPostgres(ctx, a.cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		if a.cfg.Database.AutoMigrate {
			if err := database.Migrate(ctx, db.DB); err != nil {
				return nil, err
			}
		}

		a.logger.Info("using postgres store", "host", a.cfg.Database.Host, "db", a.cfg.Database.DBName)
		return user.NewPostgresRepository(db), nil

	case config.DriverMongo:
		client, err := database.OpenMongo(ctx, a.cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize mongo: %w", err)
		}
		a.closers = append(a.closers, func() error {
			return client.Disconnect(context.Background())
		})

		coll := client.Database(a.cfg.Mongo.Database).Collection(a.cfg.Mongo.Collection)
		if err := database.EnsureUserIndexes(ctx, coll); err != nil {
			return nil, err
		}

		a.logger.Info("using mongo store", "db", a.cfg.Mongo.Database, "collection", a.cfg.Mongo.Collection)
		return user.NewMongoRepository(coll), nil

	case config.DriverMemory:
		a.logger.Warn("using in-memory store; data is lost on restart")
		return user.NewMemoryRepository(), nil
	}

	return nil, fmt.Errorf("unsupported store driver %q", a.cfg.Store.Driver)
}

func (a *App) openCache(ctx context.Context) (user.ProfileCache, error) {
	if !a.cfg.Redis.Enabled {
		return user.NopCache{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.Redis.Address(),
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
	a.closers = append(a.closers, client.Close)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	a.logger.Info("profile cache enabled", "addr", a.cfg.Redis.Address(), "ttl", a.cfg.Redis.ProfilesTTL.String())
	return user.NewRedisProfileCache(client, a.cfg.Redis.ProfilesTTL), nil
}
