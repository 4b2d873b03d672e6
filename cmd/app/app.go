package app

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"memories/internal/config"
	"memories/internal/database"
	"memories/internal/repository"
	"memories/internal/service"
	"memories/internal/storage"
)

// App holds the long lived dependencies of the API process.
type App struct {
	DB       *database.DB
	Redis    *redis.Client
	Repo     *repository.Repository
	Services *service.Service
}

func NewApp(cfg *config.Config) *App {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// connection MinIO
	var store storage.Storage
	if cfg.StorageEnabled() {
		minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to initialize MinIO")
		}
		store = minioClient
		logrus.WithField("bucket", cfg.MinIO.BucketName).Info("Image storage enabled")
	} else {
		logrus.Info("MINIO_ENDPOINT not set, images are stored inline")
	}

	// connection Redis
	var rdb *redis.Client
	if cfg.RateLimitEnabled() {
		rdb, err = storage.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logrus.WithError(err).Warn("Redis unavailable, rate limiting disabled")
			rdb = nil
		}
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, store)

	return &App{
		DB:       db,
		Redis:    rdb,
		Repo:     repo,
		Services: services,
	}
}

func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close redis client")
		}
	}
	if err := a.DB.CloseDB(); err != nil {
		logrus.WithError(err).Warn("Failed to close database")
	}
}
