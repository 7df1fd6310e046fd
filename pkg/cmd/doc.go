// Package cmd provides CLI commands for the sqlign tool.
//
// # Available Commands
//
//   - fmt: Format SQL files, directories or standard input
//   - check: Prove that formatting is a fixed point and, optionally, that
//     ClickHouse still accepts every formatted statement
//
// # Command Structure
//
// Each command is implemented as a separate function that returns a
// *cli.Command, following the urfave/cli/v3 pattern. The root command loads
// the configuration file and installs the slog handler before any subcommand
// runs.
//
// # Global Options
//
//   - --config, -c: Configuration file (default .sqlign.yaml, optional)
//   - --verbose: Debug logging on stderr
//   - --help, -h: Display command help
//   - --version, -v: Display version information
package cmd
