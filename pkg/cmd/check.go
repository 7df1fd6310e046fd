package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlign/pkg/config"
	"github.com/pseudomuto/sqlign/pkg/docker"
	"github.com/pseudomuto/sqlign/pkg/format"
	"github.com/pseudomuto/sqlign/pkg/verify"
	"github.com/urfave/cli/v3"
)

// explainer is satisfied by *verify.Client
type explainer interface {
	Explain(ctx context.Context, statement string) ([]string, error)
	Close() error
}

// checkCmd creates a CLI command that proves formatting is safe for the given
// files.
//
// For every file the command:
//   - formats it and re-parses the result
//   - fails if the statements no longer have the same structure
//   - fails if formatting the result again changes it
//   - optionally asks ClickHouse to EXPLAIN AST each formatted statement
//
// Examples:
//
//	# Structural checks only
//	sqlign check db/
//
//	# Also verify against a running server
//	sqlign check --dsn clickhouse://localhost:9000 db/
//
//	# Also verify against a temporary server in Docker
//	sqlign check --docker db/
func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Verify that formatting preserves SQL files",
		ArgsUsage: "<path>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dsn",
				Usage:   "ClickHouse DSN used to verify formatted statements",
				Sources: cli.EnvVars("SQLIGN_DSN"),
			},
			&cli.BoolFlag{
				Name:  "docker",
				Usage: "Verify formatted statements against a temporary ClickHouse container",
			},
			&cli.StringFlag{
				Name:  "clickhouse-version",
				Usage: "ClickHouse image tag used with --docker",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return errors.New("at least one path argument is required")
			}

			cfg := configFrom(ctx)
			if version := cmd.String("clickhouse-version"); version != "" {
				cfg.Verify.Version = version
			}

			formatter := format.New(cfg.FormatterOptions())

			files, err := collectFiles(cmd.Args().Slice())
			if err != nil {
				return err
			}

			sources, err := formatFiles(ctx, formatter, files)
			if err != nil {
				return err
			}

			for _, src := range sources {
				if err := checkFixedPoint(formatter, src); err != nil {
					return err
				}
			}

			client, err := connect(ctx, cfg, cmd.String("dsn"), cmd.Bool("docker"))
			if err != nil {
				return err
			}
			if client != nil {
				defer func() { _ = client.Close() }()
			}

			for _, src := range sources {
				count, err := verifyStatements(ctx, formatter, client, src)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.Root().Writer, "%s: ok (%d statements)\n", src.path, count)
			}

			return nil
		},
	}
}

// checkFixedPoint formats the already formatted output again and compares
// both the statement structure and the text.
func checkFixedPoint(formatter *format.Formatter, src *sourceFile) error {
	again, err := formatSource(formatter, src.path, []byte(src.formatted))
	if err != nil {
		return errors.Wrapf(err, "formatted output no longer parses: %s", src.path)
	}

	before := statementNodes(src.tree)
	after := statementNodes(again.tree)
	if len(before) != len(after) {
		return errors.Errorf("formatting changed the statement count of %s: %d != %d", src.path, len(before), len(after))
	}

	for i := range before {
		if !before[i].Equal(after[i]) {
			return errors.Errorf("formatting changed the structure of statement %d in %s", i+1, src.path)
		}
	}

	if again.formatted != src.formatted {
		return errors.Errorf("formatting is not stable for %s", src.path)
	}

	return nil
}

// verifyStatements sends every formatted statement of src to the server. A
// nil client skips verification and only counts the statements.
func verifyStatements(ctx context.Context, formatter *format.Formatter, client explainer, src *sourceFile) (int, error) {
	blocks, err := formatter.Statements(src.tree)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to format SQL in file: %s", src.path)
	}

	if client == nil {
		return len(blocks), nil
	}

	for i, block := range blocks {
		if _, err := client.Explain(ctx, block); err != nil {
			return 0, errors.Wrapf(err, "statement %d in %s", i+1, src.path)
		}
		slog.Debug("verified statement", "path", src.path, "statement", i+1)
	}

	return len(blocks), nil
}

// connect opens a verification client. It returns nil when neither a DSN nor
// Docker was requested.
func connect(ctx context.Context, cfg *config.Config, dsn string, useDocker bool) (explainer, error) {
	if useDocker && dsn != "" {
		return nil, errors.New("--dsn and --docker are mutually exclusive")
	}

	if useDocker {
		return startContainer(ctx, cfg)
	}

	if dsn == "" {
		dsn = cfg.Verify.DSN
	}
	if dsn == "" {
		return nil, nil
	}

	slog.Debug("connecting to ClickHouse", "dsn", dsn)
	client, err := verify.NewClient(ctx, cfg.ClientOptions(dsn))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ClickHouse client")
	}

	return client, nil
}

// containerClient closes the container along with the client
type containerClient struct {
	*verify.Client
	container *docker.Container
}

func (c *containerClient) Close() error {
	err := c.Client.Close()
	if stopErr := c.container.Stop(context.Background()); err == nil {
		err = stopErr
	}
	return err
}

func startContainer(ctx context.Context, cfg *config.Config) (explainer, error) {
	container := docker.NewWithOptions(docker.DockerOptions{Version: cfg.Verify.Version})
	if err := container.Start(ctx); err != nil {
		return nil, err
	}

	dsn, err := container.GetDSN(ctx)
	if err != nil {
		_ = container.Stop(ctx) // Clean up container on error
		return nil, errors.Wrap(err, "failed to get container DSN")
	}

	client, err := verify.NewClient(ctx, verify.ClientOptions{DSN: dsn})
	if err != nil {
		_ = container.Stop(ctx) // Clean up container on error
		return nil, errors.Wrap(err, "failed to create ClickHouse client")
	}

	return &containerClient{Client: client, container: container}, nil
}
