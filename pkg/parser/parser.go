package parser

import (
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlign/pkg/syntax"
)

// reserved words are lexed as Keyword tokens so they can never be mistaken
// for identifiers
const reserved = `(?i)\b(?:SELECT|DISTINCT|ALL|FROM|WHERE|GROUP|BY|HAVING|ORDER|LIMIT|OFFSET|WITH|AS|` +
	`JOIN|INNER|LEFT|RIGHT|FULL|OUTER|CROSS|NATURAL|ON|USING|AND|OR|NOT|IN|BETWEEN|LIKE|ILIKE|IS|` +
	`NULL|TRUE|FALSE|CASE|WHEN|THEN|ELSE|END|EXISTS|INSERT|INTO|VALUES|UPDATE|SET|DELETE|ASC|DESC|UNION)\b`

var (
	// sqlLexer defines the lexer for the supported SQL subset
	sqlLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `--[^\r\n]*`},
		{Name: "MultilineComment", Pattern: `/\*[^*]*\*+([^/*][^*]*\*+)*/`},
		{Name: "String", Pattern: `'([^']|'')*'`},
		{Name: "QuotedIdent", Pattern: "\"([^\"]|\"\")*\"|`([^`]|``)*`"},
		{Name: "Number", Pattern: `\d+(\.\d*)?([eE][+-]?\d+)?`},
		{Name: "Param", Pattern: `\?|\$\d+|:[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Keyword", Pattern: reserved},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_$]*`},
		{Name: "Operator", Pattern: `<>|!=|<=|>=|\|\|`},
		{Name: "Punct", Pattern: `[(),.;=+\-*/%<>\[\]]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	// elided token types never reach the grammar
	elided = []string{"Comment", "MultilineComment", "Whitespace"}

	// parser is the participle parser instance for the SQL grammar
	parser = participle.MustBuild[SQL](
		participle.Lexer(sqlLexer),
		participle.Elide(elided...),
		participle.CaseInsensitive("Keyword", "Ident"),
		participle.UseLookahead(4),
	)
)

type (
	// SQL is a complete script: statements separated by semicolons
	SQL struct {
		Tokens     []lexer.Token
		Statements []*Statement `parser:"( @@ | ';' )*"`
	}

	// Statement represents any supported statement
	Statement struct {
		Tokens []lexer.Token
		Select *SelectStatement `parser:"  @@"`
		Insert *InsertStatement `parser:"| @@"`
		Update *UpdateStatement `parser:"| @@"`
		Delete *DeleteStatement `parser:"| @@"`
	}
)

// Parse reads SQL from an io.Reader and returns its syntax tree.
//
// Example usage:
//
//	f, err := os.Open("queries.sql")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer f.Close()
//
//	tree, err := parser.Parse(f)
//	if err != nil {
//		log.Fatalf("Parse error: %v", err)
//	}
//
//	for _, stmt := range tree.Root.Children {
//		fmt.Println(stmt.Kind)
//	}
//
// Returns an error if the reader cannot be read or contains invalid SQL.
func Parse(reader io.Reader) (*syntax.Tree, error) {
	source, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read SQL")
	}

	return ParseBytes(source)
}

// ParseString parses SQL from a string and returns its syntax tree.
func ParseString(sql string) (*syntax.Tree, error) {
	return ParseBytes([]byte(sql))
}

// ParseBytes parses SQL from a byte slice. The returned tree references the
// slice through its leaf spans, so it must not be modified afterwards.
func ParseBytes(source []byte) (tree *syntax.Tree, err error) {
	defer func() {
		// grammar bugs surface as panics inside participle
		if r := recover(); r != nil {
			tree, err = nil, errors.Errorf("failed to parse SQL: %v", r)
		}
	}()

	script, err := parser.ParseBytes("", source)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse SQL")
	}

	return Build(script, source)
}

// GetLexer returns the lexer definition used by the SQL grammar.
func GetLexer() lexer.Definition {
	return sqlLexer
}
