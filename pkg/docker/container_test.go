package docker_test

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/pseudomuto/sqlign/pkg/consts"
	"github.com/pseudomuto/sqlign/pkg/docker"
	"github.com/stretchr/testify/require"
)

// skipIfNoDocker skips the test if Docker is not available
func skipIfNoDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Docker test in short mode")
	}

	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("Docker not available")
	}

	// Check if Docker daemon is running
	cmd := exec.Command("docker", "ps")
	if err := cmd.Run(); err != nil {
		t.Skip("Docker daemon not running")
	}
}

func TestContainer_Defaults(t *testing.T) {
	container := docker.New()
	require.False(t, container.IsRunning())
	require.Equal(t, "clickhouse/clickhouse-server:"+consts.DefaultClickHouseVersion+"-alpine", container.Image())

	container = docker.NewWithOptions(docker.DockerOptions{Version: "24.8"})
	require.Equal(t, "clickhouse/clickhouse-server:24.8-alpine", container.Image())
}

func TestContainer_NotRunning(t *testing.T) {
	container := docker.New()

	_, err := container.GetDSN(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "container is not running")

	// Stopping a container that never started is a no-op
	require.NoError(t, container.Stop(context.Background()))
}

func TestContainer_Lifecycle(t *testing.T) {
	skipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	container := docker.NewWithOptions(docker.DockerOptions{Version: consts.DefaultClickHouseVersion})
	require.NoError(t, container.Start(ctx))
	defer func() { _ = container.Stop(ctx) }()

	require.True(t, container.IsRunning())
	require.ErrorContains(t, container.Start(ctx), "container is already running")

	dsn, err := container.GetDSN(ctx)
	require.NoError(t, err)
	require.Contains(t, dsn, "clickhouse://")

	require.NoError(t, container.Stop(ctx))
	require.False(t, container.IsRunning())
}
