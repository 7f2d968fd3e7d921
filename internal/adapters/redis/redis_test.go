package redis_test

import (
	"context"
	"log"
	"os"
	"testing"

	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/rafaelleal24/inventory/internal/adapters/config"
	adaptredis "github.com/rafaelleal24/inventory/internal/adapters/redis"
)

var testClient *adaptredis.Client

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		log.Fatalf("failed to start redis container: %v", err)
	}

	endpoint, err := container.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("failed to get connection string: %v", err)
	}

	testClient, err = adaptredis.NewConnection(config.RedisConfig{URL: endpoint})
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	code := m.Run()

	_ = testClient.Close()
	_ = container.Terminate(ctx)

	os.Exit(code)
}

func TestClient_Ping(t *testing.T) {
	if err := testClient.Ping(context.Background()); err != nil {
		t.Fatalf("expected ping to succeed, got %v", err)
	}
}

func TestNewConnection_InvalidURL(t *testing.T) {
	if _, err := adaptredis.NewConnection(config.RedisConfig{URL: "not a url"}); err == nil {
		t.Fatal("expected error for invalid URL")
	}
}
