package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/wolfman30/yt-re-growth-api/internal/config"
	"github.com/wolfman30/yt-re-growth-api/internal/leads"
	"github.com/wolfman30/yt-re-growth-api/internal/storage"
	"github.com/wolfman30/yt-re-growth-api/pkg/logging"
)

func TestBuildRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	logger := logging.Discard()

	client := BuildRedisClient(context.Background(), &appconfig.Config{RedisAddr: mr.Addr()}, logger, true)
	require.NotNil(t, client)
	_ = client.Close()

	assert.Nil(t, BuildRedisClient(context.Background(), &appconfig.Config{}, logger, true))
	assert.Nil(t, BuildRedisClient(context.Background(), nil, logger, true))
}

func TestBuildRedisClientUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client := BuildRedisClient(context.Background(), &appconfig.Config{RedisAddr: addr}, logging.Discard(), true)
	assert.Nil(t, client)
}

func TestBuildStoreMemory(t *testing.T) {
	store, cleanup, err := BuildStore(context.Background(), &appconfig.Config{StorageDriver: "memory"}, logging.Discard(), nil)
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &storage.MemoryStore{}, store)
}

func TestBuildStoreRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &appconfig.Config{StorageDriver: "redis", RedisAddr: mr.Addr()}

	store, cleanup, err := BuildStore(context.Background(), cfg, logging.Discard(), nil)
	require.NoError(t, err)
	defer cleanup()

	id, err := store.Insert(context.Background(), storage.CollectionLead, storage.Document{"name": "Jane"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestBuildStoreDynamo(t *testing.T) {
	loader := func(context.Context, *appconfig.Config) (aws.Config, error) {
		return aws.Config{Region: "us-east-1"}, nil
	}
	cfg := &appconfig.Config{StorageDriver: "dynamodb", DynamoTablePrefix: "test_"}

	store, cleanup, err := BuildStore(context.Background(), cfg, logging.Discard(), loader)
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &storage.DynamoStore{}, store)
}

func TestBuildStoreErrors(t *testing.T) {
	failingLoader := func(context.Context, *appconfig.Config) (aws.Config, error) {
		return aws.Config{}, errors.New("no credentials")
	}

	tests := []struct {
		name   string
		cfg    *appconfig.Config
		loader AWSConfigLoader
	}{
		{"unknown driver", &appconfig.Config{StorageDriver: "cassandra"}, nil},
		{"postgres without url", &appconfig.Config{StorageDriver: "postgres"}, nil},
		{"mongo without url", &appconfig.Config{StorageDriver: "mongo", DatabaseName: "ytre"}, nil},
		{"mongo without name", &appconfig.Config{StorageDriver: "mongo", DatabaseURL: "mongodb://localhost"}, nil},
		{"dynamodb without loader", &appconfig.Config{StorageDriver: "dynamodb"}, nil},
		{"dynamodb loader failure", &appconfig.Config{StorageDriver: "dynamodb"}, failingLoader},
		{"redis disabled", &appconfig.Config{StorageDriver: "redis"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup, err := BuildStore(context.Background(), tt.cfg, logging.Discard(), tt.loader)
			require.Error(t, err)
			assert.Nil(t, store)
			require.NotNil(t, cleanup)
			cleanup()
		})
	}
}

func TestBuildStoreUnknownDriverSentinel(t *testing.T) {
	_, _, err := BuildStore(context.Background(), &appconfig.Config{StorageDriver: "sqlite"}, logging.Discard(), nil)
	assert.ErrorIs(t, err, storage.ErrUnknownDriver)
}

func TestBuildAPIServesRoutes(t *testing.T) {
	cfg := &appconfig.Config{CORSAllowedOrigins: []string{"*"}}
	handler := BuildAPI(cfg, logging.Discard(), APIDeps{Store: storage.NewMemoryStore()})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(`{"name":"Jane","email":"jane@example.com"}`)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Lead captured")

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `ytre_leads_submissions_total{outcome="captured"} 1`)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}

func TestBuildAPINilStore(t *testing.T) {
	handler := BuildAPI(&appconfig.Config{}, logging.Discard(), APIDeps{})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Not Connected")
}

type countingNotifier struct{ calls int }

func (c *countingNotifier) LeadCaptured(context.Context, string, leads.Lead) error {
	c.calls++
	return nil
}

func TestBuildAPIWiresAlerts(t *testing.T) {
	alerts := &countingNotifier{}
	api := BuildAPI(&appconfig.Config{}, logging.Discard(), APIDeps{Store: storage.NewMemoryStore(), Alerts: alerts})

	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(`{"name":"Jane","email":"jane@example.com"}`)))
	require.Equal(t, http.StatusOK, rr.Code)

	api.Wait()
	assert.Equal(t, 1, alerts.calls)
}
