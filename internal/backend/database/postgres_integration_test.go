package database

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jo-hoe/colorstash/internal/common"
)

// setupPostgres starts PostgreSQL in a container. Set TEST_INTEGRATION to run it.
func setupPostgres(t *testing.T) Config {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("skipping integration test: TEST_INTEGRATION is not set")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("colorstash_test"),
		postgres.WithUsername("colorstash"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}
	portNumber, err := strconv.Atoi(port.Port())
	if err != nil {
		t.Fatalf("invalid mapped port %q: %v", port.Port(), err)
	}

	return Config{
		Type:         TypePostgres,
		Host:         host,
		Port:         portNumber,
		User:         "colorstash",
		Password:     "test-password",
		DatabaseName: "colorstash_test",
		TableName:    "colors",
	}
}

func TestPostgres_InsertAndCount(t *testing.T) {
	cfg := setupPostgres(t)
	ctx := context.Background()

	ds, err := NewDatabase(ctx, cfg)
	if err != nil {
		t.Fatalf("NewDatabase error: %v", err)
	}
	t.Cleanup(func() { _ = ds.Close() })

	// A second adapter on the same table must not fail on schema creation
	second, err := NewDatabase(ctx, cfg)
	if err != nil {
		t.Fatalf("second NewDatabase error: %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })

	color := common.NewColor(100, 50, 25)
	before, err := ds.CountByColor(ctx, color)
	if err != nil {
		t.Fatalf("CountByColor error: %v", err)
	}
	if err := second.InsertColor(ctx, color); err != nil {
		t.Fatalf("InsertColor error: %v", err)
	}
	after, err := ds.CountByColor(ctx, color)
	if err != nil {
		t.Fatalf("CountByColor error: %v", err)
	}
	if after != before+1 {
		t.Fatalf("expected count %d, got %d", before+1, after)
	}
}
