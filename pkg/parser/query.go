package parser

import "github.com/alecthomas/participle/v2/lexer"

// This file contains the statement and clause grammar. Clause structs map to
// clause nodes whose kind is derived from their leading keywords.

type (
	// SelectStatement represents a SELECT statement with its optional clauses
	SelectStatement struct {
		Tokens  []lexer.Token
		With    *WithClause    `parser:"@@?"`
		Select  *SelectClause  `parser:"@@"`
		From    *FromClause    `parser:"@@?"`
		Joins   []*JoinClause  `parser:"@@*"`
		Where   *WhereClause   `parser:"@@?"`
		GroupBy *GroupByClause `parser:"@@?"`
		Having  *HavingClause  `parser:"@@?"`
		OrderBy *OrderByClause `parser:"@@?"`
		Limit   *LimitClause   `parser:"@@?"`
		Offset  *OffsetClause  `parser:"@@?"`
	}

	// WithClause represents WITH clause for CTEs
	WithClause struct {
		Tokens []lexer.Token
		CTEs   []*CommonTableExpression `parser:"'WITH' @@ ( ',' @@ )*"`
	}

	// CommonTableExpression represents a single CTE
	CommonTableExpression struct {
		Tokens []lexer.Token
		Name   *Identifier `parser:"@@ 'AS'"`
		Query  *Subquery   `parser:"@@"`
	}

	// SelectClause represents the SELECT keyword and its projection list
	SelectClause struct {
		Tokens   []lexer.Token
		Distinct string        `parser:"'SELECT' @( 'DISTINCT' | 'ALL' )?"`
		Items    []*SelectItem `parser:"@@ ( ',' @@ )*"`
	}

	// SelectItem represents a column in SELECT clause
	SelectItem struct {
		Tokens []lexer.Token
		Star   bool        `parser:"  @'*'"`
		Expr   *Expression `parser:"| @@"`
		Alias  *Identifier `parser:"( 'AS' @@ )?"`
	}

	// FromClause represents FROM clause
	FromClause struct {
		Tokens []lexer.Token
		Tables []*TableRef `parser:"'FROM' @@ ( ',' @@ )*"`
	}

	// TableRef represents a table reference (table, subquery, or function)
	TableRef struct {
		Tokens   []lexer.Token
		Subquery *Subquery     `parser:"( @@"`
		Function *FunctionCall `parser:"| @@"`
		Table    *Name         `parser:"| @@ )"`
		Alias    *Identifier   `parser:"( 'AS' @@ )?"`
	}

	// JoinClause represents JOIN operations
	JoinClause struct {
		Tokens    []lexer.Token
		Type      []string       `parser:"@'NATURAL'? @( 'LEFT' | 'RIGHT' | 'FULL' | 'INNER' | 'CROSS' )? @'OUTER'? 'JOIN'"`
		Table     *TableRef      `parser:"@@"`
		Condition *JoinCondition `parser:"@@?"`
	}

	// JoinCondition represents ON or USING clause in joins
	JoinCondition struct {
		Tokens []lexer.Token
		On     *Expression   `parser:"  'ON' @@"`
		Using  []*Identifier `parser:"| 'USING' '(' @@ ( ',' @@ )* ')'"`
	}

	// WhereClause represents WHERE clause
	WhereClause struct {
		Tokens    []lexer.Token
		Condition *Expression `parser:"'WHERE' @@"`
	}

	// GroupByClause represents GROUP BY clause
	GroupByClause struct {
		Tokens  []lexer.Token
		Columns []*Expression `parser:"'GROUP' 'BY' @@ ( ',' @@ )*"`
	}

	// HavingClause represents HAVING clause
	HavingClause struct {
		Tokens    []lexer.Token
		Condition *Expression `parser:"'HAVING' @@"`
	}

	// OrderByClause represents ORDER BY clause
	OrderByClause struct {
		Tokens []lexer.Token
		Terms  []*OrderTerm `parser:"'ORDER' 'BY' @@ ( ',' @@ )*"`
	}

	// OrderTerm represents a single column in ORDER BY
	OrderTerm struct {
		Tokens    []lexer.Token
		Expr      *Expression `parser:"@@"`
		Direction string      `parser:"@( 'ASC' | 'DESC' )?"`
		Nulls     string      `parser:"( 'NULLS' @( 'FIRST' | 'LAST' ) )?"`
	}

	// LimitClause represents LIMIT clause
	LimitClause struct {
		Tokens []lexer.Token
		Count  *Expression `parser:"'LIMIT' @@"`
	}

	// OffsetClause represents OFFSET clause
	OffsetClause struct {
		Tokens []lexer.Token
		Value  *Expression `parser:"'OFFSET' @@"`
	}

	// InsertStatement represents INSERT INTO ... VALUES or INSERT INTO ... SELECT
	InsertStatement struct {
		Tokens []lexer.Token
		Into   *InsertIntoClause `parser:"@@"`
		Values *ValuesClause     `parser:"( @@"`
		Query  *SelectStatement  `parser:"| @@ )"`
	}

	// InsertIntoClause represents the INSERT INTO target and its column list
	InsertIntoClause struct {
		Tokens  []lexer.Token
		Table   *Name       `parser:"'INSERT' 'INTO' @@"`
		Columns *ColumnList `parser:"@@?"`
	}

	// ColumnList represents a parenthesized list of column names
	ColumnList struct {
		Tokens  []lexer.Token
		Columns []*Identifier `parser:"'(' @@ ( ',' @@ )* ')'"`
	}

	// ValuesClause represents VALUES with one or more rows
	ValuesClause struct {
		Tokens []lexer.Token
		Rows   []*Tuple `parser:"'VALUES' @@ ( ',' @@ )*"`
	}

	// UpdateStatement represents UPDATE ... SET ... WHERE
	UpdateStatement struct {
		Tokens []lexer.Token
		Update *UpdateClause `parser:"@@"`
		Set    *SetClause    `parser:"@@"`
		Where  *WhereClause  `parser:"@@?"`
	}

	// UpdateClause represents the UPDATE target
	UpdateClause struct {
		Tokens []lexer.Token
		Table  *TableRef `parser:"'UPDATE' @@"`
	}

	// SetClause represents the SET assignments
	SetClause struct {
		Tokens      []lexer.Token
		Assignments []*Assignment `parser:"'SET' @@ ( ',' @@ )*"`
	}

	// Assignment represents column = value
	Assignment struct {
		Tokens []lexer.Token
		Column *Name       `parser:"@@ '='"`
		Value  *Expression `parser:"@@"`
	}

	// DeleteStatement represents DELETE FROM ... WHERE
	DeleteStatement struct {
		Tokens []lexer.Token
		From   *DeleteFromClause `parser:"@@"`
		Where  *WhereClause      `parser:"@@?"`
	}

	// DeleteFromClause represents the DELETE FROM target
	DeleteFromClause struct {
		Tokens []lexer.Token
		Table  *TableRef `parser:"'DELETE' 'FROM' @@"`
	}
)
