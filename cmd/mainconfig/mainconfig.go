package mainconfig

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/joho/godotenv"

	"github.com/wolfman30/yt-re-growth-api/internal/app/bootstrap"
	appconfig "github.com/wolfman30/yt-re-growth-api/internal/config"
	"github.com/wolfman30/yt-re-growth-api/internal/storage"
	"github.com/wolfman30/yt-re-growth-api/pkg/logging"
)

// LoadAWSConfig centralizes AWS SDK initialization so both binaries share the
// same LocalStack/production wiring.
func LoadAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	loaders := []func(*config.LoadOptions) error{config.WithRegion(cfg.AWSRegion)}
	if strings.TrimSpace(cfg.AWSAccessKeyID) != "" && strings.TrimSpace(cfg.AWSSecretAccessKey) != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return aws.Config{}, err
	}

	if endpoint := cfg.AWSEndpointOverride; endpoint != "" {
		awsCfg.EndpointResolverWithOptions = aws.EndpointResolverWithOptionsFunc(
			func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
				switch service {
				case dynamodb.ServiceID, sesv2.ServiceID:
					return aws.Endpoint{
						URL:           endpoint,
						PartitionID:   "aws",
						SigningRegion: cfg.AWSRegion,
					}, nil
				default:
					return aws.Endpoint{}, &aws.EndpointNotFoundError{}
				}
			},
		)
	}

	return awsCfg, nil
}

// Load reads .env (when present) and the environment, then builds the
// logger both binaries share.
func Load() (*appconfig.Config, *logging.Logger) {
	_ = godotenv.Load()
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName, "env", cfg.Env)
	return cfg, logger
}

// OpenStore builds the configured document store. A failure is logged and
// yields a nil store so the service still starts and reports the problem
// through its diagnostics endpoint.
func OpenStore(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (storage.Store, func()) {
	store, cleanup, err := bootstrap.BuildStore(ctx, cfg, logger, LoadAWSConfig)
	if err != nil {
		logger.Error("storage unavailable, continuing without it", "driver", cfg.StorageDriver, "error", err)
		return nil, cleanup
	}
	return store, cleanup
}

// BuildAPI opens storage and lead alerts for cfg and assembles the API. The
// returned cleanup waits for pending alerts and closes the store.
func BuildAPI(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*bootstrap.API, func()) {
	store, closeStore := OpenStore(ctx, cfg, logger)

	alerts, err := bootstrap.BuildLeadAlerts(ctx, cfg, logger, LoadAWSConfig)
	if err != nil {
		logger.Error("lead alerts disabled", "error", err)
	}

	api := bootstrap.BuildAPI(cfg, logger, bootstrap.APIDeps{Store: store, Alerts: alerts})
	return api, func() {
		api.Wait()
		closeStore()
	}
}
