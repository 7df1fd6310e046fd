package format

import (
	"strings"

	"github.com/pseudomuto/sqlign/pkg/syntax"
)

var (
	// terminal kinds that must not be followed by a join space
	glueAfter = map[string]bool{
		"(":             true,
		"[":             true,
		".":             true,
		"function_name": true,
		// signs only reach a generic join as the operator of a unary
		// expression; binary operators are always spaced
		"-": true,
		"+": true,
	}

	// terminal kinds that must not be preceded by a join space
	glueBefore = map[string]bool{
		")": true,
		"]": true,
		",": true,
		";": true,
		".": true,
	}
)

type (
	// fragment is the inline rendering of a subtree along with its boundary
	// hints. glueBefore means the text attaches to whatever precedes it,
	// glueAfter means whatever follows attaches to it.
	fragment struct {
		text       string
		glueBefore bool
		glueAfter  bool
	}

	// separator decides the text placed between two adjacent fragments.
	separator func(left, right fragment) string

	printer struct {
		tree    *syntax.Tree
		compact bool
	}
)

func newPrinter(tree *syntax.Tree, options FormatterOptions) *printer {
	return &printer{tree: tree, compact: options.CompactPunctuation}
}

// render renders a subtree as a single line of text.
func (p *printer) render(node *syntax.Node) (fragment, error) {
	if node.IsTerminal() {
		return p.terminal(node)
	}

	switch node.Category() {
	case syntax.DottedName:
		return p.join(node, adjacent)
	case syntax.BinaryExpression:
		return p.join(node, spaced)
	case syntax.Subexpression:
		// delimiters such as parentheses and commas are explicit children
		return p.join(node, p.generic)
	default:
		// nested statements and clauses render inline like any other kind
		return p.join(node, p.generic)
	}
}

func (p *printer) terminal(node *syntax.Node) (fragment, error) {
	text, err := p.tree.Text(node)
	if err != nil {
		return fragment{}, err
	}

	return fragment{
		text:       text,
		glueBefore: glueBefore[node.Kind],
		glueAfter:  glueAfter[node.Kind],
	}, nil
}

// join renders every child in order and joins adjacent renderings with sep.
// The result inherits the leading hint of its first child and the trailing
// hint of its last.
func (p *printer) join(node *syntax.Node, sep separator) (fragment, error) {
	var (
		sb     strings.Builder
		result fragment
		prev   fragment
	)

	for i, child := range node.Children {
		frag, err := p.render(child)
		if err != nil {
			return fragment{}, err
		}

		if i == 0 {
			result.glueBefore = frag.glueBefore
		} else {
			sb.WriteString(sep(prev, frag))
		}

		sb.WriteString(frag.text)
		prev = frag
	}

	result.text = sb.String()
	result.glueAfter = prev.glueAfter
	return result, nil
}

// generic joins with a single space. In compact mode the space is dropped
// next to delimiters, e.g. "count(*)" and "a, b".
func (p *printer) generic(left, right fragment) string {
	if p.compact && (left.glueAfter || right.glueBefore) {
		return ""
	}
	return " "
}

func adjacent(fragment, fragment) string { return "" }

func spaced(fragment, fragment) string { return " " }
