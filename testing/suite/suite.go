package suite

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	containerTTL = 120
	startTimeout = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// Suite is a redis-backed test environment for game storage.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
	Addr    string
}

// New starts a throwaway redis container and returns an empty client for it.
// Set SUITE_LOG=1 to see component logs in test output.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	t.Cleanup(cancel)

	pool, resource := startRedis(t)
	addr := resource.GetHostPort(redisPort)

	client := connect(ctx, t, pool, resource, addr)

	t.Cleanup(func() {
		_ = client.Close()

		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge redis container: %v", err)
		}
	})

	st := &Suite{
		T:       t,
		Logger:  newLogger(),
		Storage: client,
		Addr:    addr,
	}
	st.Flush(ctx)

	return ctx, st
}

// Flush drops every key stored so far.
func (that *Suite) Flush(ctx context.Context) {
	that.Helper()

	if err := that.Storage.FlushDB(ctx).Err(); err != nil {
		that.Fatalf("could not flush redis: %v", err)
	}
}

// Keys returns the sorted keys matching pattern, e.g. "game:*".
func (that *Suite) Keys(ctx context.Context, pattern string) []string {
	that.Helper()

	keys, err := that.Storage.Keys(ctx, pattern).Result()
	if err != nil {
		that.Fatalf("could not list keys %q: %v", pattern, err)
	}
	sort.Strings(keys)

	return keys
}

func startRedis(t *testing.T) (*dockertest.Pool, *dockertest.Resource) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}
	pool.MaxWait = startTimeout

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis container: %v", err)
	}

	// hard kill if cleanup never runs
	_ = resource.Expire(containerTTL)

	return pool, resource
}

func connect(ctx context.Context, t *testing.T, pool *dockertest.Pool, resource *dockertest.Resource, addr string) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: addr})

	// redis inside the container may still be booting
	err := pool.Retry(func() error {
		return client.Ping(ctx).Err()
	})
	if err == nil {
		return client
	}

	_ = client.Close()

	if purgeErr := pool.Purge(resource); purgeErr != nil {
		t.Errorf("could not purge redis container: %v", purgeErr)
	}
	t.Fatalf("could not connect to redis at %s: %v", addr, err)

	return nil
}

func newLogger() *slog.Logger {
	var out io.Writer = io.Discard
	if os.Getenv("SUITE_LOG") != "" {
		out = os.Stdout
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
