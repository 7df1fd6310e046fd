package format_test

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/pseudomuto/sqlign/pkg/format"
	"github.com/pseudomuto/sqlign/pkg/syntax"
	"github.com/stretchr/testify/require"
)

func TestFormatter_Scenario(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Format(&buf, Defaults, scenarioTree()))

	lines := []string{
		"SELECT a.b",
		"  FROM t",
		" WHERE x = 1;",
	}
	require.Equal(t, strings.Join(lines, "\n")+"\n", buf.String())
}

func TestFormatter_Options(t *testing.T) {
	t.Run("terminator on own line", func(t *testing.T) {
		options := FormatterOptions{TerminatorOnOwnLine: true, CompactPunctuation: true}

		var buf bytes.Buffer
		require.NoError(t, Format(&buf, options, scenarioTree()))
		require.Equal(t, "SELECT a.b\n  FROM t\n WHERE x = 1\n;\n", buf.String())
	})

	t.Run("compact punctuation", func(t *testing.T) {
		src := newSource("SELECT count(*), a")
		tree := src.tree(
			syntax.Branch("select_statement",
				syntax.Branch("select_clause",
					src.leaf("keyword", "SELECT"),
					syntax.Branch("function_call",
						src.leaf("function_name", "count"),
						src.leaf("(", "("),
						src.leaf("*", "*"),
						src.leaf(")", ")"),
					),
					src.leaf(",", ","),
					src.leaf("identifier", "a"),
				),
			),
		)

		compact, err := String(tree)
		require.NoError(t, err)
		require.Equal(t, "SELECT count(*), a;\n", compact)

		var buf bytes.Buffer
		require.NoError(t, Format(&buf, FormatterOptions{}, tree))
		require.Equal(t, "SELECT count ( * ) , a;\n", buf.String())
	})
}

func TestFormatter_Statements(t *testing.T) {
	t.Run("empty statement renders only the terminator", func(t *testing.T) {
		tree := newSource("").tree(syntax.Branch("empty_statement"))

		formatted, err := String(tree)
		require.NoError(t, err)
		require.Equal(t, ";\n", formatted)

		var buf bytes.Buffer
		require.NoError(t, Format(&buf, FormatterOptions{TerminatorOnOwnLine: true}, tree))
		require.Equal(t, ";\n", buf.String())
	})

	t.Run("consecutive statements align independently", func(t *testing.T) {
		src := newSource("SELECT a FROM t; DELETE FROM u WHERE b = 2;")
		tree := src.tree(
			syntax.Branch("select_statement",
				syntax.Branch("select_clause", src.leaf("keyword", "SELECT"), src.leaf("identifier", "a")),
				syntax.Branch("from_clause", src.leaf("keyword", "FROM"), src.leaf("identifier", "t")),
			),
			src.leaf(";", ";"),
			syntax.Branch("delete_statement",
				syntax.Branch("delete_from_clause",
					src.leaf("keyword", "DELETE"),
					src.leaf("keyword", "FROM"),
					src.leaf("identifier", "u"),
				),
				syntax.Branch("where_clause",
					src.leaf("keyword", "WHERE"),
					syntax.Branch(syntax.BinaryExpressionKind,
						src.leaf("identifier", "b"),
						src.leaf("=", "="),
						src.leaf("number", "2"),
					),
				),
			),
			src.leaf(";", ";"),
		)

		formatted, err := String(tree)
		require.NoError(t, err)

		lines := []string{
			"SELECT a",
			"  FROM t;",
			"DELETE FROM u",
			"      WHERE b = 2;",
		}
		require.Equal(t, strings.Join(lines, "\n")+"\n", formatted)
		require.NotContains(t, formatted, "\n\n")
	})

	t.Run("non statement children are skipped", func(t *testing.T) {
		src := newSource("; -- note\nSELECT 1")
		tree := src.tree(
			src.leaf(";", ";"),
			src.leaf("comment", "-- note"),
			syntax.Branch("select_statement",
				syntax.Branch("select_clause", src.leaf("keyword", "SELECT"), src.leaf("number", "1")),
			),
		)

		formatted, err := String(tree)
		require.NoError(t, err)
		require.Equal(t, "SELECT 1;\n", formatted)
	})

	t.Run("split per statement", func(t *testing.T) {
		src := newSource("SELECT 1; SELECT 2")
		tree := src.tree(
			syntax.Branch("select_statement",
				syntax.Branch("select_clause", src.leaf("keyword", "SELECT"), src.leaf("number", "1")),
			),
			src.leaf(";", ";"),
			syntax.Branch("select_statement",
				syntax.Branch("select_clause", src.leaf("keyword", "SELECT"), src.leaf("number", "2")),
			),
		)

		blocks, err := NewDefault().Statements(tree)
		require.NoError(t, err)
		require.Equal(t, []string{"SELECT 1;\n", "SELECT 2;\n"}, blocks)
	})
}

func TestFormatter_EmptyInput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Format(&buf, Defaults, nil))
	require.Empty(t, buf.String())

	require.NoError(t, Format(&buf, Defaults, &syntax.Tree{Root: syntax.Branch("source_file")}))
	require.Empty(t, buf.String())
}

func TestFormatter_Deterministic(t *testing.T) {
	tree := scenarioTree()

	first, err := String(tree)
	require.NoError(t, err)

	second, err := String(tree)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestFormatter_Alignment(t *testing.T) {
	tree := scenarioTree()
	stmt := tree.Root.Children[0]

	formatted, err := String(tree)
	require.NoError(t, err)

	width := 0
	for _, clause := range stmt.Children {
		width = max(width, len(clause.Kind))
	}

	lines := strings.Split(strings.TrimSuffix(formatted, "\n"), "\n")
	require.Len(t, lines, len(stmt.Children))

	for i, clause := range stmt.Children {
		padding := len(lines[i]) - len(strings.TrimLeft(lines[i], " "))
		require.Equal(t, width-len(clause.Kind), padding, "clause %s", clause.Kind)
	}
}

func TestOutput(t *testing.T) {
	var out Output
	out.Pad(-3)
	out.Pad(2)
	out.WriteString("FROM t")
	out.Newline()

	require.Equal(t, 9, out.Len())
	require.Equal(t, "  FROM t\n", out.String())

	var buf bytes.Buffer
	n, err := out.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(9), n)
	require.Equal(t, out.String(), buf.String())
}
