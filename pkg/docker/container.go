package docker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlign/pkg/consts"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DefaultClickHouseHTTPPort is the HTTP port probed before the server is considered ready
const DefaultClickHouseHTTPPort = nat.Port("8123/tcp")

type (
	// DockerOptions represents options for running ClickHouse in Docker
	DockerOptions struct {
		// Version is the ClickHouse image tag to run (default: consts.DefaultClickHouseVersion)
		Version string

		// StartupTimeout bounds how long Start waits for the server (default: 5m)
		StartupTimeout time.Duration
	}

	// Container manages a throwaway ClickHouse server used to verify formatted statements
	Container struct {
		options   DockerOptions
		container *clickhouse.ClickHouseContainer
	}
)

// New creates a new Docker container with default options
//
// Example:
//
//	container := docker.New()
//
//	// Start ClickHouse container
//	if err := container.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer container.Stop(ctx)
func New() *Container {
	return NewWithOptions(DockerOptions{})
}

// NewWithOptions creates a new Docker container with custom options
func NewWithOptions(opts DockerOptions) *Container {
	if opts.Version == "" {
		opts.Version = consts.DefaultClickHouseVersion
	}
	if opts.StartupTimeout <= 0 {
		opts.StartupTimeout = 5 * time.Minute
	}

	return &Container{options: opts}
}

// Image returns the image reference that Start will run.
func (c *Container) Image() string {
	return fmt.Sprintf("clickhouse/clickhouse-server:%s-alpine", c.options.Version)
}

// Start starts a ClickHouse Docker container with the configured version
func (c *Container) Start(ctx context.Context) error {
	if c.container != nil {
		return errors.New("container is already running")
	}

	slog.Debug("starting ClickHouse container", "image", c.Image())

	container, err := clickhouse.Run(ctx,
		c.Image(),
		clickhouse.WithUsername("default"),
		clickhouse.WithPassword(""),
		testcontainers.WithEnv(map[string]string{"CLICKHOUSE_DEFAULT_ACCESS_MANAGEMENT": "1"}),
		testcontainers.WithWaitStrategyAndDeadline(
			c.options.StartupTimeout,
			wait.
				NewHTTPStrategy("/").
				WithPort(DefaultClickHouseHTTPPort).
				WithStatusCodeMatcher(func(status int) bool {
					return status == 200
				}),
		),
	)
	if err != nil {
		return errors.Wrap(err, "failed to start ClickHouse container")
	}

	c.container = container
	return nil
}

// Stop stops and removes the ClickHouse Docker container
func (c *Container) Stop(ctx context.Context) error {
	if c.container == nil {
		return nil // Already stopped
	}

	err := c.container.Terminate(ctx)
	c.container = nil

	if err != nil {
		return errors.Wrap(err, "failed to stop ClickHouse container")
	}

	return nil
}

// GetDSN returns the DSN for connecting to the Docker ClickHouse instance
func (c *Container) GetDSN(ctx context.Context) (string, error) {
	if c.container == nil {
		return "", errors.New("container is not running")
	}

	connectionString, err := c.container.ConnectionString(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to get connection string")
	}

	return connectionString, nil
}

// IsRunning returns true if the container is currently running
func (c *Container) IsRunning() bool {
	return c.container != nil
}
