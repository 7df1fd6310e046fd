package syntax

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ErrMalformedLeaf is returned when a terminal node's span does not resolve to
// valid text over the source buffer.
var ErrMalformedLeaf = errors.New("malformed leaf")

type (
	// Span is a half-open byte range [Start, End) into a Tree's source buffer.
	Span struct {
		Start int
		End   int
	}

	// Node is a single element of the syntax tree.
	//
	// Children are stored in source order and must never be reordered. A node
	// without children is a terminal and its Span locates the literal token text.
	Node struct {
		Kind     string
		Children []*Node
		Span     Span
	}

	// Tree pairs a root node with the source buffer its leaf spans point into.
	// The buffer must stay unmodified for as long as the tree is in use.
	Tree struct {
		Root   *Node
		Source []byte
	}
)

// Leaf creates a terminal node covering source[start:end].
func Leaf(kind string, start, end int) *Node {
	return &Node{Kind: kind, Span: Span{Start: start, End: end}}
}

// Branch creates a non-terminal node with the given children.
func Branch(kind string, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// String returns the span as "[start:end]".
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d]", s.Start, s.End)
}

// Category classifies the node's kind.
func (n *Node) Category() Category {
	return Classify(n.Kind)
}

// IsTerminal reports whether the node has no children.
func (n *Node) IsTerminal() bool {
	return len(n.Children) == 0
}

// Start returns the offset of the node's first leaf. A node without children
// is itself a leaf, so Branch(kind) with no children starts at its zero span.
func (n *Node) Start() int {
	if n.IsTerminal() {
		return n.Span.Start
	}
	return n.Children[0].Start()
}

// LeafCount returns the number of terminal nodes in the subtree.
func (n *Node) LeafCount() int {
	if n.IsTerminal() {
		return 1
	}

	count := 0
	for _, child := range n.Children {
		count += child.LeafCount()
	}
	return count
}

// Equal reports whether two subtrees have the same shape and kinds. Spans are
// ignored so trees parsed from differently spaced sources compare equal.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind || len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// Walk visits n and its descendants depth-first in source order. Returning
// false from fn skips the children of the visited node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		Walk(child, fn)
	}
}

// Text returns the literal source text of a terminal node.
//
// An error wrapping ErrMalformedLeaf is returned when the node is not a
// terminal, the span is empty or out of range, or the bytes are not valid UTF-8.
func (t *Tree) Text(n *Node) (string, error) {
	if n == nil {
		return "", errors.Wrap(ErrMalformedLeaf, "nil node")
	}
	if !n.IsTerminal() {
		return "", errors.Wrapf(ErrMalformedLeaf, "%s node has children", n.Kind)
	}

	span := n.Span
	if span.Start < 0 || span.End > len(t.Source) || span.Len() <= 0 {
		return "", errors.Wrapf(ErrMalformedLeaf, "%s span %s outside source of %d bytes", n.Kind, span, len(t.Source))
	}

	text := t.Source[span.Start:span.End]
	if !utf8.Valid(text) {
		return "", errors.Wrapf(ErrMalformedLeaf, "%s span %s is not valid UTF-8", n.Kind, span)
	}

	return string(text), nil
}
