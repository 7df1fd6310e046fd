// Package parser turns SQL source text into the syntax trees consumed by the
// format package.
//
// The grammar is built with github.com/alecthomas/participle/v2 and covers a
// portable subset of SQL: SELECT (with CTEs, joins, grouping, ordering and
// paging), INSERT, UPDATE and DELETE. Each grammar struct records the tokens
// it matched, and Build converts the resulting AST into a syntax.Tree whose
// leaves are byte spans into the original source.
//
// Node kinds follow a naming convention that the formatter relies on:
//   - statements end in "_statement" and sit directly under the root
//   - clauses are named after their keywords, e.g. "group_by_clause"
//   - qualified names are "dotted_name" and infix operations "binary_expression"
//   - nested constructs end in "_expression", e.g. "subquery_expression"
//
// Basic usage:
//
//	tree, err := parser.ParseString("SELECT a.b FROM t WHERE x = 1")
//	if err != nil {
//		return err
//	}
//
//	return format.Format(os.Stdout, format.Defaults, tree)
//
// Comments are discarded by the lexer and do not appear in the tree.
package parser
