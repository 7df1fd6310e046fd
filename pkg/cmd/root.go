package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlign/pkg/config"
	"github.com/pseudomuto/sqlign/pkg/consts"
	"github.com/urfave/cli/v3"
)

type (
	// Version describes the running build. The fields are set by the release
	// tooling and printed by --version.
	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}

	configKey struct{}
)

// Run creates and executes the sqlign CLI application with the given version
// and command-line arguments.
//
// Global Flags:
//   - --config, -c: Configuration file (defaults to .sqlign.yaml, optional)
//   - --verbose: Enable debug logging on stderr
//
// Example usage:
//
//	err := Run(ctx, &Version{Version: "v1.0.0"}, []string{"sqlign", "fmt", "-w", "queries/"})
//
// Returns an error if configuration loading or command execution fails.
func Run(ctx context.Context, version *Version, args []string) error {
	return NewApp(version).Run(ctx, args)
}

// NewApp builds the root command with all subcommands registered.
func NewApp(version *Version) *cli.Command {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Root().Writer, "Version:", version.Version)
		fmt.Fprintln(cmd.Root().Writer, "Commit:", version.Commit)
		fmt.Fprintln(cmd.Root().Writer, "Date:", version.Timestamp)
	}

	return &cli.Command{
		Name:  "sqlign",
		Usage: "A structure-aware SQL formatter",
		Description: `sqlign lays out SQL statements one clause per line with the clause
keywords right-aligned, leaving every token exactly as it was written.`,
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the sqlign config file",
				Sources: cli.EnvVars("SQLIGN_CONFIG"),
				Value:   consts.DefaultConfigFile,
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := slog.LevelInfo
			if cmd.Bool("verbose") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.Root().ErrWriter, &slog.HandlerOptions{Level: level})))

			cfg, err := loadConfig(cmd.String("config"), cmd.IsSet("config"))
			if err != nil {
				return ctx, err
			}

			return context.WithValue(ctx, configKey{}, cfg), nil
		},
		Commands: []*cli.Command{
			fmtCmd(),
			checkCmd(),
		},
	}
}

// loadConfig reads the config file at path. A missing file falls back to the
// defaults unless the path was given explicitly.
func loadConfig(path string, required bool) (*config.Config, error) {
	cfg, err := config.LoadConfigFile(path)
	if err == nil {
		slog.Debug("loaded config", "path", path)
		return cfg, nil
	}

	if !required && errors.Is(err, fs.ErrNotExist) {
		slog.Debug("no config file found, using defaults", "path", path)
		return config.Default(), nil
	}

	return nil, err
}

// configFrom returns the config installed by the root command, or the
// defaults when a subcommand runs on its own.
func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}
