package parser_test

import (
	"strings"
	"testing"

	"github.com/pseudomuto/sqlign/pkg/syntax"
	"github.com/stretchr/testify/require"
)

// sexp renders a subtree as an s-expression with leaves shown as their source
// text, e.g. (where_clause WHERE (binary_expression x = 1)).
func sexp(t *testing.T, tree *syntax.Tree, n *syntax.Node) string {
	t.Helper()

	if n.IsTerminal() {
		text, err := tree.Text(n)
		require.NoError(t, err)
		return text
	}

	parts := []string{n.Kind}
	for _, child := range n.Children {
		parts = append(parts, sexp(t, tree, child))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// leafKinds returns the kinds of every terminal in source order.
func leafKinds(tree *syntax.Tree) []string {
	var kinds []string
	syntax.Walk(tree.Root, func(n *syntax.Node) bool {
		if n.IsTerminal() {
			kinds = append(kinds, n.Kind)
		}
		return true
	})
	return kinds
}

// flatten returns the terminals under n in source order.
func flatten(n *syntax.Node) []*syntax.Node {
	var leaves []*syntax.Node
	syntax.Walk(n, func(n *syntax.Node) bool {
		if n.IsTerminal() {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}

// statements returns the statement nodes directly under the root.
func statements(tree *syntax.Tree) []*syntax.Node {
	var stmts []*syntax.Node
	for _, child := range tree.Root.Children {
		if child.Category() == syntax.Statement {
			stmts = append(stmts, child)
		}
	}
	return stmts
}
