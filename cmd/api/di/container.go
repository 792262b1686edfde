package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-service/cmd/api/infrastructure"
	"user-service/internal/adapter/cache"
	"user-service/internal/adapter/db/postgres"
	"user-service/internal/adapter/gin/handler"
	"user-service/internal/adapter/gin/middleware"
	ginrouter "user-service/internal/adapter/gin/router"
	"user-service/internal/adapter/repository/cached"
	"user-service/internal/config"
	"user-service/internal/usecase/user"
	redisclient "user-service/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	DB            *gorm.DB
	RedisClient   *redisclient.Client // nil unless REDIS_ENABLED
	UserUC        *user.Usecase
	RateLimiter   *middleware.RateLimiter // nil unless RATE_LIMIT_ENABLED
	UserHandler   *handler.UserHandler
	HealthHandler *handler.HealthHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.RateLimit.Enabled && !cfg.Redis.Enabled {
		return nil, errors.New("config validation failed: RATE_LIMIT_ENABLED requires REDIS_ENABLED")
	}

	c := &Container{Config: cfg, Logger: l}

	// Initialize database
	db, err := infrastructure.NewDatabase(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c.DB = db

	checks := map[string]handler.CheckFunc{
		"database": infrastructure.PingDatabase(db),
	}

	// Initialize repository
	var repo user.Repository = postgres.NewUserRepoPG(db, l)

	if cfg.Redis.Enabled {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb
		checks["redis"] = rdb.Ping

		// Initialize cache layer
		userCache := cache.NewRedisUserCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			l,
		)
		repo = cached.NewCachedUserRepository(repo, userCache, l)

		if cfg.RateLimit.Enabled {
			c.RateLimiter = middleware.NewRateLimiter(
				rdb.Client,
				middleware.RateLimiterConfig{
					RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
					BurstCapacity:     cfg.RateLimit.BurstCapacity,
				},
				l,
			)
		}
	}

	// Initialize use case
	c.UserUC = user.New(repo, l)

	// Initialize Gin handlers
	c.UserHandler = handler.NewUserHandler(c.UserUC, l)
	c.HealthHandler = handler.NewHealthHandler(cfg.Logger.ServiceName, checks, l)

	l.Info("container initialized",
		zap.Bool("redis_cache", cfg.Redis.Enabled),
		zap.Bool("rate_limit", c.RateLimiter != nil),
		zap.Bool("grpc_health", cfg.App.GRPCEnabled),
	)

	return c, nil
}

// RouterOptions returns the dependencies the HTTP router needs.
func (c *Container) RouterOptions() ginrouter.Options {
	return ginrouter.Options{
		UserHandler:   c.UserHandler,
		HealthHandler: c.HealthHandler,
		RateLimiter:   c.RateLimiter,
		Log:           c.Logger,
	}
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}
