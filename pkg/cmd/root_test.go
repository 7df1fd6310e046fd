package cmd

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pseudomuto/sqlign/pkg/config"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	app := NewApp(&Version{Version: "v1.2.3", Commit: "abc123", Timestamp: "2025-01-01"})

	var buf bytes.Buffer
	app.Reader = strings.NewReader(stdin)
	app.Writer = &buf
	app.ErrWriter = io.Discard

	err := app.Run(context.Background(), append([]string{"sqlign"}, args...))
	return buf.String(), err
}

func TestRun_Version(t *testing.T) {
	output, err := runApp(t, "", "--version")
	require.NoError(t, err)
	require.Equal(t, "Version: v1.2.3\nCommit: abc123\nDate: 2025-01-01\n", output)
}

func TestRun_DefaultConfig(t *testing.T) {
	output, err := runApp(t, unformattedSQL, "fmt")
	require.NoError(t, err)
	require.Equal(t, formattedSQL, output)
}

func TestRun_ConfigFile(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, cfgFile, "format:\n  terminator_on_own_line: true\n")

	output, err := runApp(t, unformattedSQL, "--config", cfgFile, "--verbose", "fmt")
	require.NoError(t, err)
	require.Equal(t, "select a.b\n  from t\n where x = 1\n;\n", output)
}

func TestRun_MissingExplicitConfig(t *testing.T) {
	_, err := runApp(t, unformattedSQL, "-c", filepath.Join(t.TempDir(), "missing.yaml"), "fmt")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to open file")
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), ".sqlign.yaml"), false)
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)

	require.Equal(t, config.Default(), configFrom(context.Background()))
}
