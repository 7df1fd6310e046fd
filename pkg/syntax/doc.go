// Package syntax defines the labeled syntax tree consumed by the formatter.
//
// A Tree is an immutable, ordered tree over a source buffer. Every Node carries
// a kind label, zero or more children in source order and, for terminal nodes,
// a byte Span into the buffer that holds the literal token text. Trees are
// produced once (see the parser package) and then only traversed.
//
// Kind labels are free-form strings. Classify maps a label onto the closed set
// of categories the formatter knows how to lay out:
//
//	syntax.Classify("select_statement")  // Statement
//	syntax.Classify("where_clause")      // Clause
//	syntax.Classify("dotted_name")       // DottedName
//	syntax.Classify("binary_expression") // BinaryExpression
//	syntax.Classify("tuple_expression")  // Subexpression
//	syntax.Classify("function_call")     // Generic
//
// Leaf text is recovered with Tree.Text, which reports ErrMalformedLeaf when a
// span does not describe valid text within the buffer.
package syntax
