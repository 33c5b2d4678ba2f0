package main

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yukikurage/kanbanflow/internal/config"
	"github.com/yukikurage/kanbanflow/internal/database"
	"github.com/yukikurage/kanbanflow/internal/logging"
	"github.com/yukikurage/kanbanflow/internal/repository"
	"github.com/yukikurage/kanbanflow/internal/services"
)

// app owns the process-wide resources behind a Board
type app struct {
	cfg   *config.Config
	log   *logrus.Logger
	gw    *database.Gateway
	redis *redis.Client
	board *services.Board
}

func newApp(path string) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, gw: database.Open(cfg, log)}

	var blobs repository.BlobStore
	switch cfg.BlobBackend {
	case "redis":
		a.redis = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr(),
			DB:   cfg.RedisDB,
		})
		blobs = repository.NewRedisBlobStore(a.redis)
	default:
		blobs = repository.NewBlobStore(a.gw)
	}

	a.board = services.NewBoard(services.Deps{
		Tasks:   repository.NewTaskRepository(a.gw),
		Members: repository.NewMemberRepository(a.gw),
		Config:  repository.NewConfigRepository(a.gw),
		Blobs:   blobs,
		Logger:  log,
	})
	log.WithFields(logrus.Fields{
		"db_driver":    cfg.DBDriver,
		"blob_backend": cfg.BlobBackend,
	}).Debug("board configured")
	return a, nil
}

func (a *app) Close() error {
	var firstErr error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close redis client: %w", err)
		}
	}
	if err := a.gw.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to close database: %w", err)
	}
	return firstErr
}
