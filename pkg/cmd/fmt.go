package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlign/pkg/consts"
	"github.com/pseudomuto/sqlign/pkg/format"
	"github.com/urfave/cli/v3"
)

// fmtCmd creates a CLI command for formatting SQL files.
//
// The command supports three output modes:
//   - Stdout mode (default): Formatted SQL is written to standard output, or
//     to the file named by -o
//   - Write mode (-w flag): Files are modified in-place with formatted content
//   - List mode (-l flag): Paths of files whose formatting differs are printed
//
// Path handling:
//   - File paths: Format the specified SQL file directly
//   - Directory paths: Recursively find and format all .sql files
//   - No paths, or "-": Read SQL from standard input
//
// Examples:
//
//	# Format single file to stdout
//	sqlign fmt query.sql
//
//	# Format one file into another
//	sqlign fmt -i query.sql -o query.formatted.sql
//
//	# Format all SQL files in a directory tree in-place
//	sqlign fmt -w db/
//
//	# Show which files need formatting
//	sqlign fmt -l db/
//
// Nothing is written when any input fails to parse or render.
func fmtCmd() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Format SQL files",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write result to source files instead of stdout",
			},
			&cli.BoolFlag{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "List files whose formatting differs",
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Read SQL from this file (- for stdin)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write formatted SQL to this file instead of stdout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			formatter := format.New(configFrom(ctx).FormatterOptions())

			paths := cmd.Args().Slice()
			if input := cmd.String("input"); input != "" {
				if len(paths) > 0 {
					return errors.New("--input cannot be combined with path arguments")
				}
				paths = []string{input}
			}

			writeBack := cmd.Bool("write")
			output := cmd.String("output")
			if writeBack && output != "" {
				return errors.New("--output cannot be combined with --write")
			}

			sources, err := readSources(ctx, cmd, formatter, paths)
			if err != nil {
				return err
			}

			if writeBack && len(sources) == 1 && sources[0].path == stdinPath {
				return errors.New("cannot use --write with standard input")
			}

			var buf bytes.Buffer
			if err := emit(&buf, sources, writeBack, cmd.Bool("list")); err != nil {
				return err
			}

			if output != "" {
				return errors.Wrapf(os.WriteFile(output, buf.Bytes(), consts.ModeFile), "failed to write output file: %s", output)
			}

			_, err = buf.WriteTo(cmd.Root().Writer)
			return errors.Wrap(err, "failed to write formatted content to output")
		},
	}
}

// readSources formats the given paths, or standard input when there are none.
func readSources(ctx context.Context, cmd *cli.Command, formatter *format.Formatter, paths []string) ([]*sourceFile, error) {
	if len(paths) == 0 || (len(paths) == 1 && paths[0] == "-") {
		content, err := io.ReadAll(cmd.Root().Reader)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read standard input")
		}

		src, err := formatSource(formatter, stdinPath, content)
		if err != nil {
			return nil, err
		}
		return []*sourceFile{src}, nil
	}

	files, err := collectFiles(paths)
	if err != nil {
		return nil, err
	}

	return formatFiles(ctx, formatter, files)
}

// emit writes the results in input order. With list or writeBack set, only
// changed files are reported or rewritten; otherwise every formatted
// document is written to w.
func emit(w io.Writer, sources []*sourceFile, writeBack, list bool) error {
	for _, src := range sources {
		if !writeBack && !list {
			if _, err := io.WriteString(w, src.formatted); err != nil {
				return errors.Wrap(err, "failed to write formatted content to output")
			}
			continue
		}

		if !src.changed() {
			continue
		}

		if list {
			fmt.Fprintln(w, src.path)
		}

		if writeBack {
			if err := os.WriteFile(src.path, []byte(src.formatted), consts.ModeFile); err != nil {
				return errors.Wrapf(err, "failed to write formatted content to file: %s", src.path)
			}
		}
	}

	return nil
}
