package format

import "github.com/pseudomuto/sqlign/pkg/syntax"

// columnWidth returns the length of the longest kind label among the
// statement's direct children, or 0 when it has none.
func columnWidth(stmt *syntax.Node) int {
	width := 0
	for _, clause := range stmt.Children {
		width = max(width, len(clause.Kind))
	}
	return width
}

// statement renders one statement block: one line per clause, each padded to
// the statement's column width, followed by the terminator.
func (f *Formatter) statement(p *printer, stmt *syntax.Node, out *Output) error {
	width := columnWidth(stmt)
	last := len(stmt.Children) - 1

	for i, clause := range stmt.Children {
		body, err := p.render(clause)
		if err != nil {
			return err
		}

		out.Pad(width - len(clause.Kind))
		out.WriteString(body.text)

		if i == last && !f.options.TerminatorOnOwnLine {
			out.WriteString(Terminator)
		}

		out.Newline()
	}

	if last < 0 || f.options.TerminatorOnOwnLine {
		out.WriteString(Terminator)
		out.Newline()
	}

	return nil
}
