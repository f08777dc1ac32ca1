package integration

import (
	"context"
	"testing"
	"time"

	"shopfront/internal/storage"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// TestRedis represents a redis test container with a connected client.
type TestRedis struct {
	Container *tcredis.RedisContainer
	Client    *goredis.Client
	KV        storage.KV
}

// SetupTestRedis starts a redis container and returns a storage.KV
// backed by it.
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	ctx := context.Background()

	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := redisContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})

	connStr, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get redis connection string: %v", err)
	}

	opts, err := goredis.ParseURL(connStr)
	if err != nil {
		t.Fatalf("failed to parse redis connection string: %v", err)
	}

	client := goredis.NewClient(opts)
	t.Cleanup(func() { client.Close() })

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		t.Fatalf("failed to ping redis: %v", err)
	}

	return &TestRedis{
		Container: redisContainer,
		Client:    client,
		KV:        storage.NewRedisKVFromClient(client, 0, zerolog.Nop()),
	}
}
