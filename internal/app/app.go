// Package app wires configuration into the session store and API
// client shared by the commands.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/project-tktt/jobby/internal/config"
	"github.com/project-tktt/jobby/internal/jobsapi"
	"github.com/project-tktt/jobby/internal/session"
)

type App struct {
	Store  session.Store
	Client *jobsapi.Client

	closers []func() error
}

// New opens the configured session backend and builds the API client
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{}
	store, err := a.openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.Store = store
	a.Client = jobsapi.NewClient(jobsapi.Config{
		BaseURL:   cfg.API.BaseURL,
		UserAgent: cfg.API.UserAgent,
		Timeout:   cfg.API.Timeout,
	}, store, logger)
	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.Store, error) {
	switch cfg.Session.Backend {
	case config.BackendMemory:
		return session.NewMemoryStore(nil), nil

	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		a.closers = append(a.closers, rdb.Close)
		logger.Info("session store", zap.String("backend", "redis"), zap.String("addr", cfg.Redis.Addr))
		return session.NewRedisStore(rdb, cfg.Session.RedisPrefix), nil

	case config.BackendFile:
		path := cfg.Session.File
		if path == "" {
			path = session.DefaultFilePath()
		}
		logger.Info("session store", zap.String("backend", "file"), zap.String("path", path))
		return session.NewFileStore(path), nil
	}
	return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
}

// Close releases backend connections
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
