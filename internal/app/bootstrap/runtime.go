package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/wolfman30/yt-re-growth-api/internal/config"
	"github.com/wolfman30/yt-re-growth-api/internal/storage"
	"github.com/wolfman30/yt-re-growth-api/pkg/logging"
)

// AWSConfigLoader resolves SDK configuration for the DynamoDB driver.
type AWSConfigLoader func(ctx context.Context, cfg *appconfig.Config) (aws.Config, error)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildStore opens the document store named by cfg.StorageDriver. The
// returned cleanup func is never nil.
func BuildStore(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, loadAWS AWSConfigLoader) (storage.Store, func(), error) {
	noop := func() {}
	if logger == nil {
		logger = logging.Default()
	}

	if cfg.StorageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.StorageTimeout)
		defer cancel()
	}

	driver := strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	switch driver {
	case "", storage.DriverMemory:
		logger.Info("using in-memory document store")
		return storage.NewMemoryStore(), noop, nil

	case storage.DriverMongo:
		client, store, err := storage.ConnectMongo(ctx, cfg.DatabaseURL, cfg.DatabaseName)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("using mongo document store", "database", cfg.DatabaseName)
		return store, func() { _ = client.Disconnect(context.Background()) }, nil

	case storage.DriverPostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, noop, fmt.Errorf("bootstrap: DATABASE_URL required for %s driver", driver)
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("bootstrap: postgres pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("bootstrap: postgres ping: %w", err)
		}
		logger.Info("using postgres document store")
		return storage.NewPostgresStore(pool), pool.Close, nil

	case storage.DriverDynamo:
		if loadAWS == nil {
			return nil, noop, fmt.Errorf("bootstrap: no AWS config loader for %s driver", driver)
		}
		awsCfg, err := loadAWS(ctx, cfg)
		if err != nil {
			return nil, noop, fmt.Errorf("bootstrap: aws config: %w", err)
		}
		logger.Info("using dynamodb document store", "table_prefix", cfg.DynamoTablePrefix)
		return storage.NewDynamoStore(dynamodb.NewFromConfig(awsCfg), cfg.DynamoTablePrefix), noop, nil

	case storage.DriverRedis:
		client := BuildRedisClient(ctx, cfg, logger, true)
		if client == nil {
			return nil, noop, fmt.Errorf("bootstrap: redis unavailable at %q", cfg.RedisAddr)
		}
		logger.Info("using redis document store", "addr", cfg.RedisAddr)
		return storage.NewRedisStore(client), func() { _ = client.Close() }, nil
	}

	return nil, noop, fmt.Errorf("%w: %q", storage.ErrUnknownDriver, cfg.StorageDriver)
}
