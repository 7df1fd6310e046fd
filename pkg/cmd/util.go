package cmd

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlign/pkg/consts"
	"github.com/pseudomuto/sqlign/pkg/format"
	"github.com/pseudomuto/sqlign/pkg/parser"
	"github.com/pseudomuto/sqlign/pkg/syntax"
	"golang.org/x/sync/errgroup"
)

// stdinPath names standard input in messages and -l output
const stdinPath = "<stdin>"

// sourceFile is a parsed input along with its formatted rendering
type sourceFile struct {
	path      string
	original  []byte
	tree      *syntax.Tree
	formatted string
}

func (s *sourceFile) changed() bool {
	return string(s.original) != s.formatted
}

// collectFiles expands the given paths into a list of SQL files. Directories
// are walked recursively in lexical order; files are taken as given.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to access path: %s", path)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		found := 0
		err = filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !d.IsDir() && strings.EqualFold(filepath.Ext(d.Name()), consts.SQLExtension) {
				files = append(files, path)
				found++
			}

			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to walk directory: %s", path)
		}

		if found == 0 {
			return nil, errors.Errorf("no SQL files found in directory: %s", path)
		}
	}

	return files, nil
}

// formatSource parses and formats a single input.
func formatSource(formatter *format.Formatter, path string, content []byte) (*sourceFile, error) {
	tree, err := parser.ParseBytes(content)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse SQL in file: %s", path)
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, tree); err != nil {
		return nil, errors.Wrapf(err, "failed to format SQL in file: %s", path)
	}

	slog.Debug("formatted file", "path", path, "statements", len(statementNodes(tree)))
	return &sourceFile{
		path:      path,
		original:  content,
		tree:      tree,
		formatted: buf.String(),
	}, nil
}

// formatFiles reads and formats files concurrently. Results are returned in
// the same order as files; the first failure cancels the remaining work.
func formatFiles(ctx context.Context, formatter *format.Formatter, files []string) ([]*sourceFile, error) {
	results := make([]*sourceFile, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			content, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "failed to read file: %s", path)
			}

			src, err := formatSource(formatter, path, content)
			if err != nil {
				return err
			}

			results[i] = src
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// statementNodes returns the statements directly under the tree's root.
func statementNodes(tree *syntax.Tree) []*syntax.Node {
	var stmts []*syntax.Node
	for _, child := range tree.Root.Children {
		if child.Category() == syntax.Statement {
			stmts = append(stmts, child)
		}
	}
	return stmts
}
