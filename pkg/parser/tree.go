package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlign/pkg/syntax"
)

// RootKind is the kind of the node returned as Tree.Root.
const RootKind = "source_file"

// Terminal kinds produced for the lexer's token types. Operators and
// punctuation use their own text as the kind.
const (
	KeywordKind      = "keyword"
	IdentifierKind   = "identifier"
	FunctionNameKind = "function_name"
	StringKind       = "string"
	NumberKind       = "number"
	ParameterKind    = "parameter"
)

var tokenKinds = func() map[lexer.TokenType]string {
	kinds := map[string]string{
		"Keyword":     KeywordKind,
		"Ident":       IdentifierKind,
		"QuotedIdent": IdentifierKind,
		"String":      StringKind,
		"Number":      NumberKind,
		"Param":       ParameterKind,
	}

	byType := make(map[lexer.TokenType]string)
	for name, typ := range sqlLexer.Symbols() {
		if kind, ok := kinds[name]; ok {
			byType[typ] = kind
		}
	}
	return byType
}()

var skippedTypes = func() map[lexer.TokenType]bool {
	symbols := sqlLexer.Symbols()
	skipped := map[lexer.TokenType]bool{lexer.EOF: true}
	for _, name := range elided {
		skipped[symbols[name]] = true
	}
	return skipped
}()

// Build converts a parsed script into a syntax tree over source.
//
// Every significant token becomes exactly one leaf whose span points back into
// source, so rendering the leaves in order reproduces the token stream.
func Build(script *SQL, source []byte) (*syntax.Tree, error) {
	b := &builder{}

	children := make([]*syntax.Node, 0, len(script.Statements))
	for _, stmt := range script.Statements {
		children = append(children, b.statement(stmt))
	}

	root := b.compose(RootKind, script.Tokens, children...)
	if b.err != nil {
		return nil, b.err
	}

	return &syntax.Tree{Root: root, Source: source}, nil
}

type builder struct {
	err error
}

func (b *builder) fail(format string, args ...any) {
	if b.err == nil {
		b.err = errors.Errorf(format, args...)
	}
}

func significant(tokens []lexer.Token) []lexer.Token {
	out := make([]lexer.Token, 0, len(tokens))
	for _, tok := range tokens {
		if !skippedTypes[tok.Type] {
			out = append(out, tok)
		}
	}
	return out
}

func (b *builder) leaf(tok lexer.Token) *syntax.Node {
	kind, ok := tokenKinds[tok.Type]
	if !ok {
		kind = tok.Value
	}

	start := tok.Pos.Offset
	return syntax.Leaf(kind, start, start+len(tok.Value))
}

// compose builds a node of the given kind from the tokens a grammar struct
// matched. Tokens that are covered by one of the children are replaced by that
// child; all remaining tokens become leaves. Children must be in source order.
func (b *builder) compose(kind string, tokens []lexer.Token, children ...*syntax.Node) *syntax.Node {
	kids := make([]*syntax.Node, 0, len(children))
	for _, child := range children {
		if child != nil {
			kids = append(kids, child)
		}
	}

	tokens = significant(tokens)
	node := &syntax.Node{Kind: kind, Children: make([]*syntax.Node, 0, len(tokens))}

	next := 0
	for i := 0; i < len(tokens); {
		if next < len(kids) && kids[next].Start() == tokens[i].Pos.Offset {
			node.Children = append(node.Children, kids[next])
			i += kids[next].LeafCount()
			next++
			continue
		}

		node.Children = append(node.Children, b.leaf(tokens[i]))
		i++
	}

	if next < len(kids) {
		b.fail("unable to place %s within %s at %s", kids[next].Kind, kind, tokens[0].Pos)
	}

	return node
}

// branch builds a node made only of child nodes.
func (b *builder) branch(kind string, children ...*syntax.Node) *syntax.Node {
	node := &syntax.Node{Kind: kind}
	for _, child := range children {
		if child != nil {
			node.Children = append(node.Children, child)
		}
	}
	return node
}

// clauseKind derives a clause kind from its leading keywords, e.g. GROUP BY
// becomes group_by_clause. Keywords are named so that they right-align when
// clauses are padded to the statement's widest kind.
func clauseKind(keywords ...string) string {
	return strings.ToLower(strings.Join(keywords, "_")) + "_" + syntax.ClauseSuffix
}

func (b *builder) statement(stmt *Statement) *syntax.Node {
	switch {
	case stmt.Select != nil:
		return b.branch("select_statement", b.selectClauses(stmt.Select)...)
	case stmt.Insert != nil:
		return b.insert(stmt.Insert)
	case stmt.Update != nil:
		return b.update(stmt.Update)
	case stmt.Delete != nil:
		return b.delete(stmt.Delete)
	}

	b.fail("empty statement")
	return nil
}

func (b *builder) selectStatement(stmt *SelectStatement) *syntax.Node {
	return b.branch("select_statement", b.selectClauses(stmt)...)
}

func (b *builder) selectClauses(stmt *SelectStatement) []*syntax.Node {
	var clauses []*syntax.Node
	if stmt.With != nil {
		clauses = append(clauses, b.with(stmt.With))
	}

	clauses = append(clauses, b.selectClause(stmt.Select))
	if stmt.From != nil {
		clauses = append(clauses, b.from(stmt.From))
	}
	for _, join := range stmt.Joins {
		clauses = append(clauses, b.join(join))
	}
	if stmt.Where != nil {
		clauses = append(clauses, b.compose(clauseKind("where"), stmt.Where.Tokens, b.expression(stmt.Where.Condition)))
	}
	if stmt.GroupBy != nil {
		clauses = append(clauses, b.compose(clauseKind("group", "by"), stmt.GroupBy.Tokens, b.expressions(stmt.GroupBy.Columns)...))
	}
	if stmt.Having != nil {
		clauses = append(clauses, b.compose(clauseKind("having"), stmt.Having.Tokens, b.expression(stmt.Having.Condition)))
	}
	if stmt.OrderBy != nil {
		clauses = append(clauses, b.orderBy(stmt.OrderBy))
	}
	if stmt.Limit != nil {
		clauses = append(clauses, b.compose(clauseKind("limit"), stmt.Limit.Tokens, b.expression(stmt.Limit.Count)))
	}
	if stmt.Offset != nil {
		clauses = append(clauses, b.compose(clauseKind("offset"), stmt.Offset.Tokens, b.expression(stmt.Offset.Value)))
	}

	return clauses
}

func (b *builder) with(clause *WithClause) *syntax.Node {
	ctes := make([]*syntax.Node, 0, len(clause.CTEs))
	for _, cte := range clause.CTEs {
		ctes = append(ctes, b.compose("common_table_expression", cte.Tokens, b.identifier(cte.Name), b.subquery(cte.Query)))
	}
	return b.compose(clauseKind("with"), clause.Tokens, ctes...)
}

func (b *builder) selectClause(clause *SelectClause) *syntax.Node {
	items := make([]*syntax.Node, 0, len(clause.Items))
	for _, item := range clause.Items {
		items = append(items, b.selectItem(item))
	}
	return b.compose(clauseKind("select"), clause.Tokens, items...)
}

func (b *builder) selectItem(item *SelectItem) *syntax.Node {
	switch {
	case item.Star:
		return b.leaf(significant(item.Tokens)[0])
	case item.Alias != nil:
		return b.compose("aliased_expression", item.Tokens, b.expression(item.Expr), b.identifier(item.Alias))
	}
	return b.expression(item.Expr)
}

func (b *builder) from(clause *FromClause) *syntax.Node {
	tables := make([]*syntax.Node, 0, len(clause.Tables))
	for _, table := range clause.Tables {
		tables = append(tables, b.tableRef(table))
	}
	return b.compose(clauseKind("from"), clause.Tokens, tables...)
}

func (b *builder) tableRef(ref *TableRef) *syntax.Node {
	var target *syntax.Node
	switch {
	case ref.Subquery != nil:
		target = b.subquery(ref.Subquery)
	case ref.Function != nil:
		target = b.function(ref.Function)
	default:
		target = b.name(ref.Table)
	}

	if ref.Alias == nil {
		return target
	}
	return b.compose("table_reference", ref.Tokens, target, b.identifier(ref.Alias))
}

func (b *builder) join(clause *JoinClause) *syntax.Node {
	kind := clauseKind(append(clause.Type, "join")...)

	var condition *syntax.Node
	if cond := clause.Condition; cond != nil {
		if cond.On != nil {
			condition = b.compose("join_condition", cond.Tokens, b.expression(cond.On))
		} else {
			condition = b.compose("join_condition", cond.Tokens, b.identifiers(cond.Using)...)
		}
	}

	return b.compose(kind, clause.Tokens, b.tableRef(clause.Table), condition)
}

func (b *builder) orderBy(clause *OrderByClause) *syntax.Node {
	terms := make([]*syntax.Node, 0, len(clause.Terms))
	for _, term := range clause.Terms {
		expr := b.expression(term.Expr)
		if term.Direction == "" && term.Nulls == "" {
			terms = append(terms, expr)
			continue
		}
		terms = append(terms, b.compose("order_term", term.Tokens, expr))
	}
	return b.compose(clauseKind("order", "by"), clause.Tokens, terms...)
}

func (b *builder) insert(stmt *InsertStatement) *syntax.Node {
	into := stmt.Into
	clauses := []*syntax.Node{
		b.compose(clauseKind("insert", "into"), into.Tokens, b.name(into.Table), b.columnList(into.Columns)),
	}

	if stmt.Values != nil {
		rows := make([]*syntax.Node, 0, len(stmt.Values.Rows))
		for _, row := range stmt.Values.Rows {
			rows = append(rows, b.tuple(row))
		}
		clauses = append(clauses, b.compose(clauseKind("values"), stmt.Values.Tokens, rows...))
	} else {
		clauses = append(clauses, b.selectClauses(stmt.Query)...)
	}

	return b.branch("insert_statement", clauses...)
}

func (b *builder) columnList(list *ColumnList) *syntax.Node {
	if list == nil {
		return nil
	}
	return b.compose("column_list", list.Tokens, b.identifiers(list.Columns)...)
}

func (b *builder) update(stmt *UpdateStatement) *syntax.Node {
	assignments := make([]*syntax.Node, 0, len(stmt.Set.Assignments))
	for _, assignment := range stmt.Set.Assignments {
		column := b.name(assignment.Column)
		value := b.expression(assignment.Value)
		assignments = append(assignments, b.binary(column, significant(assignment.Tokens)[column.LeafCount():], value))
	}

	return b.branch("update_statement",
		b.compose(clauseKind("update"), stmt.Update.Tokens, b.tableRef(stmt.Update.Table)),
		b.compose(clauseKind("set"), stmt.Set.Tokens, assignments...),
		b.where(stmt.Where),
	)
}

func (b *builder) delete(stmt *DeleteStatement) *syntax.Node {
	return b.branch("delete_statement",
		b.compose(clauseKind("delete", "from"), stmt.From.Tokens, b.tableRef(stmt.From.Table)),
		b.where(stmt.Where),
	)
}

func (b *builder) where(clause *WhereClause) *syntax.Node {
	if clause == nil {
		return nil
	}
	return b.compose(clauseKind("where"), clause.Tokens, b.expression(clause.Condition))
}

func (b *builder) identifier(ident *Identifier) *syntax.Node {
	return b.leaf(significant(ident.Tokens)[0])
}

func (b *builder) identifiers(idents []*Identifier) []*syntax.Node {
	nodes := make([]*syntax.Node, 0, len(idents))
	for _, ident := range idents {
		nodes = append(nodes, b.identifier(ident))
	}
	return nodes
}

func (b *builder) name(name *Name) *syntax.Node {
	tokens := significant(name.Tokens)
	if len(tokens) == 1 {
		return b.leaf(tokens[0])
	}
	return b.compose(syntax.DottedNameKind, tokens)
}

func (b *builder) expressions(exprs []*Expression) []*syntax.Node {
	nodes := make([]*syntax.Node, 0, len(exprs))
	for _, expr := range exprs {
		nodes = append(nodes, b.expression(expr))
	}
	return nodes
}

// binary builds a binary_expression. The operator is whatever tokens of rest
// precede the right operand; multi-word operators such as NOT LIKE are grouped
// under a single operator node so the expression always has three children.
func (b *builder) binary(left *syntax.Node, rest []lexer.Token, right *syntax.Node) *syntax.Node {
	tokens := significant(rest)
	ops := tokens[:len(tokens)-right.LeafCount()]

	op := b.leaf(ops[0])
	if len(ops) > 1 {
		op = b.compose("operator", ops)
	}
	return syntax.Branch(syntax.BinaryExpressionKind, left, op, right)
}

func (b *builder) expression(expr *Expression) *syntax.Node {
	if expr == nil {
		return nil
	}

	node := b.and(expr.Left)
	for _, rest := range expr.Rest {
		node = b.binary(node, rest.Tokens, b.and(rest.Right))
	}
	return node
}

func (b *builder) and(expr *AndExpression) *syntax.Node {
	node := b.not(expr.Left)
	for _, rest := range expr.Rest {
		node = b.binary(node, rest.Tokens, b.not(rest.Right))
	}
	return node
}

func (b *builder) not(expr *NotExpression) *syntax.Node {
	if expr.Not != nil {
		return b.compose("not_expression", expr.Tokens, b.not(expr.Not))
	}
	return b.predicate(expr.Predicate)
}

func (b *builder) predicate(pred *Predicate) *syntax.Node {
	left := b.additive(pred.Left)
	rest := pred.Rest
	if rest == nil {
		return left
	}

	switch {
	case rest.Compare != nil:
		return b.binary(left, rest.Compare.Tokens, b.additive(rest.Compare.Right))
	case rest.Like != nil:
		return b.binary(left, rest.Like.Tokens, b.additive(rest.Like.Right))
	case rest.In != nil:
		var list *syntax.Node
		if rest.In.Subquery != nil {
			list = b.subquery(rest.In.Subquery)
		} else {
			list = b.tuple(rest.In.List)
		}
		return b.compose("in_expression", pred.Tokens, left, list)
	case rest.Between != nil:
		between := rest.Between
		return b.compose("between_expression", pred.Tokens, left, b.additive(between.Low), b.additive(between.High))
	default:
		return b.compose("is_expression", pred.Tokens, left)
	}
}

func (b *builder) additive(expr *Additive) *syntax.Node {
	node := b.multiplicative(expr.Left)
	for _, rest := range expr.Rest {
		node = b.binary(node, rest.Tokens, b.multiplicative(rest.Right))
	}
	return node
}

func (b *builder) multiplicative(expr *Multiplicative) *syntax.Node {
	node := b.unary(expr.Left)
	for _, rest := range expr.Rest {
		node = b.binary(node, rest.Tokens, b.unary(rest.Right))
	}
	return node
}

func (b *builder) unary(expr *Unary) *syntax.Node {
	operand := b.primary(expr.Operand)
	if expr.Op == "" {
		return operand
	}
	return b.compose("unary_expression", expr.Tokens, operand)
}

func (b *builder) primary(expr *Primary) *syntax.Node {
	switch {
	case expr.Case != nil:
		return b.caseExpression(expr.Case)
	case expr.Exists != nil:
		return b.compose("exists_expression", expr.Exists.Tokens, b.subquery(expr.Exists.Query))
	case expr.Literal != nil:
		return b.leaf(significant(expr.Literal.Tokens)[0])
	case expr.Function != nil:
		return b.function(expr.Function)
	case expr.Column != nil:
		return b.name(expr.Column)
	case expr.Subquery != nil:
		return b.subquery(expr.Subquery)
	case expr.Tuple != nil:
		return b.tuple(expr.Tuple)
	}

	b.fail("empty expression at %s", expr.Tokens[0].Pos)
	return nil
}

func (b *builder) function(call *FunctionCall) *syntax.Node {
	node := b.compose("function_call", call.Tokens, b.expressions(call.Args)...)
	node.Children[0].Kind = FunctionNameKind
	return node
}

func (b *builder) subquery(sub *Subquery) *syntax.Node {
	return b.compose("subquery_expression", sub.Tokens, b.selectStatement(sub.Query))
}

// tuple builds a parenthesized_expression for a single element and a
// tuple_expression for a list.
func (b *builder) tuple(tuple *Tuple) *syntax.Node {
	kind := "tuple_expression"
	if len(tuple.Elements) == 1 {
		kind = "parenthesized_expression"
	}
	return b.compose(kind, tuple.Tokens, b.expressions(tuple.Elements)...)
}

func (b *builder) caseExpression(expr *CaseExpression) *syntax.Node {
	children := []*syntax.Node{b.expression(expr.Operand)}
	for _, branch := range expr.Branches {
		children = append(children, b.compose("case_branch", branch.Tokens, b.expression(branch.Condition), b.expression(branch.Result)))
	}
	children = append(children, b.expression(expr.Else))

	return b.compose("case_expression", expr.Tokens, children...)
}
