// Package format renders a syntax tree as canonical, vertically aligned SQL.
//
// The formatter works in three layers:
//
//   - The statement renderer walks the root's children and renders every
//     statement as one block terminated by ";" and a line break. Anything else
//     at the top level (stray terminators, comments) is skipped.
//   - The clause aligner pads every clause of a statement so that its body
//     starts at the column given by the longest clause kind label in that
//     statement. Because clause kinds are named after their keywords
//     (select_clause, from_clause, group_by_clause) the keywords end up
//     right-aligned:
//
//     SELECT a.b
//       FROM t
//      WHERE x = 1;
//
//   - The node printer renders any subtree on a single line. Dotted names are
//     joined without spaces, binary expressions always get one space around
//     the operator and everything else is joined by single spaces.
//
// Defaults enables CompactPunctuation, which departs from the plain single
// space join: no space follows "(", "[", ".", a function name or a unary
// sign, and none precedes ")", "]", ",", "." or ";". The result is "count(*)"
// rather than "count ( * )". Set CompactPunctuation to false for the literal
// single space join.
//
// Usage:
//
//	tree, err := parser.ParseString("select a.b from t where x = 1;")
//	if err != nil {
//		return err
//	}
//
//	var buf bytes.Buffer
//	if err := format.Format(&buf, format.Defaults, tree); err != nil {
//		return err
//	}
//
// Rendering is deterministic and free of I/O. Output is accumulated in memory
// and written to the destination once, after the whole tree rendered without
// error; a malformed leaf aborts the pass and nothing is written.
package format
