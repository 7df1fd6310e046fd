package format

import (
	"io"
	"strings"
)

// Output is an append-only text accumulator. It is written left to right by a
// single render pass and flushed to its destination once.
type Output struct {
	buf strings.Builder
}

// WriteString appends s.
func (o *Output) WriteString(s string) {
	o.buf.WriteString(s)
}

// Pad appends n spaces. Non-positive widths append nothing.
func (o *Output) Pad(n int) {
	if n > 0 {
		o.buf.WriteString(strings.Repeat(" ", n))
	}
}

// Newline appends a line break.
func (o *Output) Newline() {
	o.buf.WriteByte('\n')
}

// Len returns the number of bytes written so far.
func (o *Output) Len() int {
	return o.buf.Len()
}

// String returns the accumulated text.
func (o *Output) String() string {
	return o.buf.String()
}

// WriteTo flushes the accumulated text to w.
func (o *Output) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, o.buf.String())
	return int64(n), err
}
