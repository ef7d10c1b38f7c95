package app

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/poofware/buyer-leads-service/internal/config"
	"github.com/poofware/buyer-leads-service/internal/utils"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

//go:embed schema.sql
var schemaSQL string

type App struct {
	Config *config.Config
	DB     *pgxpool.Pool
	// Redis is nil unless REDIS_URL is set.
	Redis *redis.Client
}

func NewApp(cfg *config.Config) (*App, error) {
	dbPool, err := connectWithRetry(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, DB: dbPool}

	if err := a.migrate(context.Background()); err != nil {
		a.Close()
		return nil, err
	}

	if cfg.RedisURL != "" {
		if a.Redis, err = newRedisClient(cfg.RedisURL); err != nil {
			a.Close()
			return nil, err
		}
		utils.Logger.Info("Using Redis for rate limit windows")
	} else {
		utils.Logger.Info("REDIS_URL not set; rate limit windows are kept in memory")
	}

	return a, nil
}

func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			utils.Logger.WithError(err).Warn("Failed to close Redis client")
		}
	}
	if a.DB != nil {
		a.DB.Close()
		utils.Logger.Info("Database connection closed.")
	}
}

func connectWithRetry(databaseURL string) (*pgxpool.Pool, error) {
	backoff := initialBackoff
	var lastErr error

	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		dbPool, err := newDBPool(ctx, databaseURL)
		cancel()
		if err == nil {
			utils.Logger.Infof("Successfully connected to database on attempt %d", i)
			return dbPool, nil
		}
		lastErr = err

		utils.Logger.WithError(err).Warnf(
			"Failed to connect to database on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)
		if i < maxRetries {
			time.Sleep(backoff)
			backoff *= 2
		}
	}

	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, lastErr)
}

// newDBPool constructs the pgx pool. Idle sockets are retired before
// typical proxy timeouts and kept warm with periodic health checks.
func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	return pgxpool.ConnectConfig(ctx, cfg)
}

// migrate applies the embedded DDL. Every statement is idempotent.
func (a *App) migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := a.DB.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	utils.Logger.Debug("Database schema is up to date")
	return nil
}

func newRedisClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping Redis: %w", err)
	}
	return client, nil
}
