package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlign/pkg/format"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

type fakeExplainer struct {
	statements []string
	failAt     int
}

func (f *fakeExplainer) Explain(_ context.Context, statement string) ([]string, error) {
	f.statements = append(f.statements, statement)
	if len(f.statements) == f.failAt {
		return nil, errors.New("Syntax error")
	}
	return []string{"SelectWithUnionQuery (children 1)"}, nil
}

func (f *fakeExplainer) Close() error { return nil }

func runCheck(t *testing.T, args ...string) (string, error) {
	t.Helper()

	command := checkCmd()

	var buf bytes.Buffer
	app := &cli.Command{
		Name:   "test",
		Flags:  command.Flags,
		Action: command.Action,
		Writer: &buf,
	}

	err := app.Run(context.Background(), append([]string{"test"}, args...))
	return buf.String(), err
}

func TestCheckCommand(t *testing.T) {
	tmpDir := t.TempDir()
	sqlFile := filepath.Join(tmpDir, "queries.sql")
	writeFile(t, sqlFile, "select a from t; update t set a = a + 1 where b is null;")

	output, err := runCheck(t, sqlFile)
	require.NoError(t, err)
	require.Equal(t, sqlFile+": ok (2 statements)\n", output)
}

func TestCheckCommand_Errors(t *testing.T) {
	tmpDir := t.TempDir()
	sqlFile := filepath.Join(tmpDir, "queries.sql")
	badFile := filepath.Join(tmpDir, "bad", "bad.sql")
	writeFile(t, sqlFile, "select 1;")
	writeFile(t, badFile, "select (1;")

	tests := []struct {
		name string
		args []string
		err  string
	}{
		{"requires path", nil, "at least one path argument is required"},
		{"parse error", []string{badFile}, "failed to parse SQL in file"},
		{"exclusive servers", []string{"--docker", "--dsn", "localhost:9000", sqlFile}, "--dsn and --docker are mutually exclusive"},
		{"unreachable server", []string{"--dsn", "127.0.0.1:1", sqlFile}, "failed to create ClickHouse client"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCheck(t, tt.args...)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestCheckFixedPoint(t *testing.T) {
	for _, opts := range []format.FormatterOptions{format.Defaults, {TerminatorOnOwnLine: true}} {
		formatter := format.New(opts)

		src, err := formatSource(formatter, "test.sql", []byte("select a, count(*) from t left join u on t.id = u.id group by a"))
		require.NoError(t, err)
		require.NoError(t, checkFixedPoint(formatter, src))
	}
}

func TestVerifyStatements(t *testing.T) {
	formatter := format.NewDefault()
	src, err := formatSource(formatter, "test.sql", []byte("select a from t; delete from t where a = 1;"))
	require.NoError(t, err)

	t.Run("without client", func(t *testing.T) {
		count, err := verifyStatements(context.Background(), formatter, nil, src)
		require.NoError(t, err)
		require.Equal(t, 2, count)
	})

	t.Run("explains each statement", func(t *testing.T) {
		client := &fakeExplainer{}
		count, err := verifyStatements(context.Background(), formatter, client, src)
		require.NoError(t, err)
		require.Equal(t, 2, count)
		require.Equal(t, []string{"select a\n  from t;\n", "delete from t\n      where a = 1;\n"}, client.statements)
	})

	t.Run("reports rejected statement", func(t *testing.T) {
		client := &fakeExplainer{failAt: 2}
		_, err := verifyStatements(context.Background(), formatter, client, src)
		require.Error(t, err)
		require.Contains(t, err.Error(), "statement 2 in test.sql")
	})
}
