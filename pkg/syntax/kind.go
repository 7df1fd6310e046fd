package syntax

import "strings"

const (
	// StatementSuffix marks kinds that denote top-level statements.
	StatementSuffix = "statement"

	// ClauseSuffix marks kinds that denote clauses, the direct children of a statement.
	ClauseSuffix = "clause"

	// SubexpressionSuffix marks parenthesized or otherwise nested expressions.
	SubexpressionSuffix = "expression"

	// DottedNameKind is the kind of a qualified identifier such as db.table.column.
	DottedNameKind = "dotted_name"

	// BinaryExpressionKind is the kind of an infix expression: left, operator, right.
	BinaryExpressionKind = "binary_expression"
)

// Category is the closed set of layouts the formatter distinguishes between.
// Every kind label maps to exactly one category; labels that match no
// structural rule fall into Generic.
type Category uint8

const (
	// Generic nodes render their children joined by single spaces.
	Generic Category = iota
	Statement
	Clause
	DottedName
	BinaryExpression
	Subexpression
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case Statement:
		return "Statement"
	case Clause:
		return "Clause"
	case DottedName:
		return "DottedName"
	case BinaryExpression:
		return "BinaryExpression"
	case Subexpression:
		return "Subexpression"
	case Generic:
		return "Generic"
	}
	return "Unknown"
}

// Classify maps a kind label to its Category.
//
// The exact structural kinds are checked before the suffix rules so that
// binary_expression is not mistaken for a generic sub-expression.
func Classify(kind string) Category {
	switch {
	case kind == DottedNameKind:
		return DottedName
	case kind == BinaryExpressionKind:
		return BinaryExpression
	case strings.HasSuffix(kind, StatementSuffix):
		return Statement
	case strings.HasSuffix(kind, ClauseSuffix):
		return Clause
	case strings.HasSuffix(kind, SubexpressionSuffix):
		return Subexpression
	default:
		return Generic
	}
}
