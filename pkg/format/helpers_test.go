package format_test

import (
	"strings"

	"github.com/pseudomuto/sqlign/pkg/syntax"
)

// source hands out leaves over a fixed SQL string. Each call to leaf finds the
// next occurrence of text after the previous leaf.
type source struct {
	text string
	pos  int
}

func newSource(text string) *source {
	return &source{text: text}
}

func (s *source) leaf(kind, text string) *syntax.Node {
	idx := strings.Index(s.text[s.pos:], text)
	if idx < 0 {
		panic("leaf text not found: " + text)
	}

	start := s.pos + idx
	s.pos = start + len(text)
	return syntax.Leaf(kind, start, s.pos)
}

func (s *source) tree(children ...*syntax.Node) *syntax.Tree {
	return &syntax.Tree{
		Root:   syntax.Branch("source_file", children...),
		Source: []byte(s.text),
	}
}

// scenarioTree builds the tree for "SELECT a.b FROM t WHERE x = 1".
func scenarioTree() *syntax.Tree {
	src := newSource("SELECT a.b FROM t WHERE x = 1")
	return src.tree(
		syntax.Branch("select_statement",
			syntax.Branch("select_clause",
				src.leaf("keyword", "SELECT"),
				syntax.Branch(syntax.DottedNameKind,
					src.leaf("identifier", "a"),
					src.leaf(".", "."),
					src.leaf("identifier", "b"),
				),
			),
			syntax.Branch("from_clause",
				src.leaf("keyword", "FROM"),
				src.leaf("identifier", "t"),
			),
			syntax.Branch("where_clause",
				src.leaf("keyword", "WHERE"),
				syntax.Branch(syntax.BinaryExpressionKind,
					src.leaf("identifier", "x"),
					src.leaf("=", "="),
					src.leaf("number", "1"),
				),
			),
		),
	)
}
