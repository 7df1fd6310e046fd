package parser

import "github.com/alecthomas/participle/v2/lexer"

type (
	// Expression represents any expression with proper precedence handling.
	// Precedence levels (lowest to highest):
	// 1. OR
	// 2. AND
	// 3. NOT
	// 4. Predicates (=, <>, <, >, <=, >=, LIKE, IN, BETWEEN, IS)
	// 5. Addition/Subtraction/Concatenation (+, -, ||)
	// 6. Multiplication/Division/Modulo (*, /, %)
	// 7. Unary (+, -)
	// 8. Primary (literals, identifiers, functions, parentheses)
	Expression struct {
		Tokens []lexer.Token
		Left   *AndExpression `parser:"@@"`
		Rest   []*OrRest      `parser:"@@*"`
	}

	OrRest struct {
		Tokens []lexer.Token
		Op     string         `parser:"@'OR'"`
		Right  *AndExpression `parser:"@@"`
	}

	// AndExpression handles AND operations
	AndExpression struct {
		Tokens []lexer.Token
		Left   *NotExpression `parser:"@@"`
		Rest   []*AndRest     `parser:"@@*"`
	}

	AndRest struct {
		Tokens []lexer.Token
		Op     string         `parser:"@'AND'"`
		Right  *NotExpression `parser:"@@"`
	}

	// NotExpression handles NOT operations
	NotExpression struct {
		Tokens    []lexer.Token
		Not       *NotExpression `parser:"  'NOT' @@"`
		Predicate *Predicate     `parser:"| @@"`
	}

	// Predicate handles comparisons and the postfix predicates
	Predicate struct {
		Tokens []lexer.Token
		Left   *Additive      `parser:"@@"`
		Rest   *PredicateRest `parser:"@@?"`
	}

	PredicateRest struct {
		Tokens  []lexer.Token
		Compare *Comparison       `parser:"  @@"`
		Like    *LikePredicate    `parser:"| @@"`
		In      *InPredicate      `parser:"| @@"`
		Between *BetweenPredicate `parser:"| @@"`
		Is      *IsPredicate      `parser:"| @@"`
	}

	// Comparison handles basic comparison operations
	Comparison struct {
		Tokens []lexer.Token
		Op     string    `parser:"@( '=' | '<>' | '!=' | '<=' | '>=' | '<' | '>' )"`
		Right  *Additive `parser:"@@"`
	}

	// LikePredicate handles LIKE, ILIKE and their negations
	LikePredicate struct {
		Tokens []lexer.Token
		Op     []string  `parser:"@'NOT'? @( 'LIKE' | 'ILIKE' )"`
		Right  *Additive `parser:"@@"`
	}

	// InPredicate handles IN and NOT IN with lists or subqueries
	InPredicate struct {
		Tokens   []lexer.Token
		Not      bool      `parser:"@'NOT'? 'IN'"`
		Subquery *Subquery `parser:"( @@"`
		List     *Tuple    `parser:"| @@ )"`
	}

	// BetweenPredicate handles BETWEEN and NOT BETWEEN
	BetweenPredicate struct {
		Tokens []lexer.Token
		Not    bool      `parser:"@'NOT'? 'BETWEEN'"`
		Low    *Additive `parser:"@@ 'AND'"`
		High   *Additive `parser:"@@"`
	}

	// IsPredicate handles IS [NOT] NULL/TRUE/FALSE as a postfix operator
	IsPredicate struct {
		Tokens []lexer.Token
		Not    bool   `parser:"'IS' @'NOT'?"`
		Value  string `parser:"@( 'NULL' | 'TRUE' | 'FALSE' )"`
	}

	// Additive handles addition, subtraction and string concatenation
	Additive struct {
		Tokens []lexer.Token
		Left   *Multiplicative `parser:"@@"`
		Rest   []*AdditiveRest `parser:"@@*"`
	}

	AdditiveRest struct {
		Tokens []lexer.Token
		Op     string          `parser:"@( '+' | '-' | '||' )"`
		Right  *Multiplicative `parser:"@@"`
	}

	// Multiplicative handles multiplication, division, and modulo
	Multiplicative struct {
		Tokens []lexer.Token
		Left   *Unary                `parser:"@@"`
		Rest   []*MultiplicativeRest `parser:"@@*"`
	}

	MultiplicativeRest struct {
		Tokens []lexer.Token
		Op     string `parser:"@( '*' | '/' | '%' )"`
		Right  *Unary `parser:"@@"`
	}

	// Unary handles unary sign operators
	Unary struct {
		Tokens  []lexer.Token
		Op      string   `parser:"@( '-' | '+' )?"`
		Operand *Primary `parser:"@@"`
	}

	// Primary represents the highest precedence expressions
	Primary struct {
		Tokens   []lexer.Token
		Case     *CaseExpression `parser:"  @@"`
		Exists   *Exists         `parser:"| @@"`
		Literal  *Literal        `parser:"| @@"`
		Function *FunctionCall   `parser:"| @@"`
		Column   *Name           `parser:"| @@"`
		Subquery *Subquery       `parser:"| @@"`
		Tuple    *Tuple          `parser:"| @@"`
	}

	// Literal represents literal values
	Literal struct {
		Tokens []lexer.Token
		Value  string `parser:"@( String | Number | Param | 'NULL' | 'TRUE' | 'FALSE' )"`
	}

	// Identifier represents a single, possibly quoted, name
	Identifier struct {
		Tokens []lexer.Token
		Value  string `parser:"@( Ident | QuotedIdent )"`
	}

	// Name represents column names or qualified names such as db.table.column
	Name struct {
		Tokens []lexer.Token
		Parts  []string `parser:"@( Ident | QuotedIdent ) ( '.' @( Ident | QuotedIdent | '*' ) )*"`
	}

	// FunctionCall represents function invocations
	FunctionCall struct {
		Tokens   []lexer.Token
		Name     string        `parser:"@( Ident | QuotedIdent ) '('"`
		Distinct bool          `parser:"@'DISTINCT'?"`
		Star     bool          `parser:"( @'*'"`
		Args     []*Expression `parser:"| @@ ( ',' @@ )* )? ')'"`
	}

	// Subquery represents a parenthesized SELECT
	Subquery struct {
		Tokens []lexer.Token
		Query  *SelectStatement `parser:"'(' @@ ')'"`
	}

	// Tuple represents a parenthesized expression or expression list
	Tuple struct {
		Tokens   []lexer.Token
		Elements []*Expression `parser:"'(' @@ ( ',' @@ )* ')'"`
	}

	// Exists represents EXISTS (subquery)
	Exists struct {
		Tokens []lexer.Token
		Query  *Subquery `parser:"'EXISTS' @@"`
	}

	// CaseExpression represents CASE expressions
	CaseExpression struct {
		Tokens   []lexer.Token
		Operand  *Expression   `parser:"'CASE' @@?"`
		Branches []*CaseBranch `parser:"@@+"`
		Else     *Expression   `parser:"( 'ELSE' @@ )?"`
		End      string        `parser:"'END'"`
	}

	// CaseBranch represents WHEN condition THEN result
	CaseBranch struct {
		Tokens    []lexer.Token
		Condition *Expression `parser:"'WHEN' @@"`
		Result    *Expression `parser:"'THEN' @@"`
	}
)
