// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, storage, queue) that
// domain systems require.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mcggEz/gradalyze/internal/config"
	"github.com/mcggEz/gradalyze/pkg/database"
	"github.com/mcggEz/gradalyze/pkg/lifecycle"
	"github.com/mcggEz/gradalyze/pkg/storage"
	"github.com/redis/go-redis/v9"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, database access, file storage, and the Redis queue.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Queue     *redis.Client
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	queue := redis.NewClient(&redis.Options{
		Addr:     cfg.Queue.Addr,
		Password: cfg.Queue.Password,
		DB:       cfg.Queue.DB,
	})

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Queue:     queue,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// Database, storage, and queue hooks are registered for startup and shutdown
// coordination.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}

	i.Lifecycle.OnStartup(func(ctx context.Context) error {
		if err := i.Queue.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("queue ping failed: %w", err)
		}
		i.Logger.Info("queue connected")
		return nil
	})
	i.Lifecycle.OnShutdown(func(ctx context.Context) error {
		return i.Queue.Close()
	})
	return nil
}
