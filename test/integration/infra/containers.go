//go:build integration

package infra

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const startupTimeout = 90 * time.Second

// Env holds the endpoints of the containers a test runs against.
type Env struct {
	PostgresDSN string
	RedisAddr   string
	RabbitURL   string
}

func (e Env) String() string {
	return fmt.Sprintf("Env{PostgresDSN=%q RedisAddr=%q RabbitURL=%q}", e.PostgresDSN, e.RedisAddr, e.RabbitURL)
}

func skipWithoutDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
}

// StartPostgres runs a throwaway Postgres and returns its DSN.
func StartPostgres(t *testing.T) string {
	t.Helper()
	skipWithoutDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	ctr, err := postgres.Run(ctx, "postgres:17-alpine",
		postgres.WithDatabase("langlearn"),
		postgres.WithUsername("langlearn"),
		postgres.WithPassword("langlearn"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err, "start postgres container")

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

// StartRedis runs a throwaway Redis and returns host:port.
func StartRedis(t *testing.T) string {
	t.Helper()
	skipWithoutDocker(t)

	ctr := startGeneric(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	})
	return endpoint(t, ctr, "6379/tcp")
}

// StartRabbit runs a throwaway RabbitMQ and returns its AMQP URL.
func StartRabbit(t *testing.T) string {
	t.Helper()
	skipWithoutDocker(t)

	ctr := startGeneric(t, testcontainers.ContainerRequest{
		Image:        "rabbitmq:3-alpine",
		ExposedPorts: []string{"5672/tcp"},
		WaitingFor:   wait.ForLog("Server startup complete").WithStartupTimeout(startupTimeout),
	})
	return "amqp://guest:guest@" + endpoint(t, ctr, "5672/tcp") + "/"
}

func startGeneric(t *testing.T, req testcontainers.ContainerRequest) testcontainers.Container {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err, "start %s container", req.Image)
	return ctr
}

func endpoint(t *testing.T, ctr testcontainers.Container, port string) string {
	t.Helper()

	ctx := context.Background()
	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	mapped, err := ctr.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)
	return host + ":" + mapped.Port()
}
