package format

import (
	"io"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlign/pkg/syntax"
)

// Terminator ends every rendered statement.
const Terminator = ";"

// FormatterOptions controls formatting behavior
type FormatterOptions struct {
	// TerminatorOnOwnLine puts the terminator on a line of its own instead of
	// appending it to the last clause
	TerminatorOnOwnLine bool `yaml:"terminator_on_own_line"`
	// CompactPunctuation drops the join space after opening delimiters and
	// before closing delimiters and commas
	CompactPunctuation bool `yaml:"compact_punctuation"`
}

// Defaults are the standard formatting options
var Defaults = FormatterOptions{
	TerminatorOnOwnLine: false,
	CompactPunctuation:  true,
}

// Formatter renders syntax trees with configurable options
type Formatter struct {
	options FormatterOptions
}

// New creates a new Formatter with the specified options
func New(options FormatterOptions) *Formatter {
	return &Formatter{options: options}
}

// NewDefault creates a new Formatter with default options
func NewDefault() *Formatter {
	return New(Defaults)
}

// Options returns the options the formatter was created with.
func (f *Formatter) Options() FormatterOptions {
	return f.options
}

// Render appends every statement of the tree to out, in tree order.
//
// Statements are rendered into a scratch buffer first; when any leaf fails to
// resolve the error is returned and out is left untouched.
func (f *Formatter) Render(tree *syntax.Tree, out *Output) error {
	if tree == nil || tree.Root == nil {
		return nil
	}

	var doc Output
	p := newPrinter(tree, f.options)

	for _, child := range tree.Root.Children {
		if child.Category() != syntax.Statement {
			continue
		}

		if err := f.statement(p, child, &doc); err != nil {
			return errors.Wrapf(err, "failed to render %s", child.Kind)
		}
	}

	out.WriteString(doc.String())
	return nil
}

// Format renders the tree and writes the result to w in a single write.
func (f *Formatter) Format(w io.Writer, tree *syntax.Tree) error {
	var out Output
	if err := f.Render(tree, &out); err != nil {
		return err
	}

	_, err := out.WriteTo(w)
	return err
}

// Statements renders each statement of the tree separately. Every block
// includes its terminator and trailing line break.
func (f *Formatter) Statements(tree *syntax.Tree) ([]string, error) {
	if tree == nil || tree.Root == nil {
		return nil, nil
	}

	var blocks []string
	p := newPrinter(tree, f.options)

	for _, child := range tree.Root.Children {
		if child.Category() != syntax.Statement {
			continue
		}

		var out Output
		if err := f.statement(p, child, &out); err != nil {
			return nil, errors.Wrapf(err, "failed to render %s", child.Kind)
		}
		blocks = append(blocks, out.String())
	}

	return blocks, nil
}

// Format renders the tree with the given options and writes it to w.
func Format(w io.Writer, options FormatterOptions, tree *syntax.Tree) error {
	return New(options).Format(w, tree)
}

// String renders the tree with the default options.
func String(tree *syntax.Tree) (string, error) {
	var out Output
	if err := NewDefault().Render(tree, &out); err != nil {
		return "", err
	}
	return out.String(), nil
}
