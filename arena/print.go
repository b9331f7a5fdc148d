package arena

import (
	"bufio"
	"fmt"
	"io"
)

// Printer renders arena values to a byte stream, wrapping output every
// Column characters with an Indent-wide indent — the same layout
// the reference interpreter produces in out_chr/out_lst.
type Printer struct {
	w      *bufio.Writer
	col    int
	Column int // wrap width, default set by NewPrinter
	Indent int // indent width, default set by NewPrinter
}

// NewPrinter wraps w with the reference interpreter's default 50-column,
// 12-space layout.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: bufio.NewWriter(w), Column: 50, Indent: 12}
}

// Flush writes any buffered output.
func (p *Printer) Flush() error { return p.w.Flush() }

// outChr writes one character, wrapping at the configured column.
func (p *Printer) outChr(c byte) {
	if p.col == p.Column {
		p.w.WriteByte('\n')
		for i := 0; i < p.Indent; i++ {
			p.w.WriteByte(' ')
		}
		p.col = 0
	}
	p.w.WriteByte(c)
	p.col++
}

// PrintList prints x: '0' for the canonical number zero, an atom's print
// name walked in reverse (undoing the reversed storage order), or a
// parenthesized, space-separated list of elements.
func (a *Arena) PrintList(p *Printer, x Index) {
	if a.IsNumber(x) && a.PrintName(x) == Nil {
		p.outChr('0')
		return
	}
	if a.IsAtom(x) {
		a.printAtom(p, a.PrintName(x))
		return
	}
	p.outChr('(')
	for !a.IsAtom(x) {
		a.PrintList(p, a.Head(x))
		x = a.Tail(x)
		if !a.IsAtom(x) {
			p.outChr(' ')
		}
	}
	p.outChr(')')
}

// printAtom walks a reversed character list tail-first so characters
// come out in their original order.
func (a *Arena) printAtom(p *Printer, x Index) {
	if x == Nil {
		return
	}
	a.printAtom(p, a.Tail(x))
	p.outChr(byte(a.Head(x)))
}

// Trace prints one top-level record: a left-justified 12-character label
// (not counted against the wrap column), the rendered value, and a
// newline. It backs every `expression`/`value`/`display`/`debug`/
// `define` line and is shared by the evaluator (display, debug) and
// the top-level driver (expression, value, define).
func (a *Arena) Trace(p *Printer, label string, x Index) Index {
	fmt.Fprintf(p.w, "%-12s", label)
	p.col = 0
	a.PrintList(p, x)
	p.w.WriteByte('\n')
	return x
}

// Size counts the characters Render would emit for x, not counting line
// wrapping, as a digit list (see size() in the reference interpreter).
func (a *Arena) Size(x Index) Index {
	if a.IsNumber(x) && a.PrintName(x) == Nil {
		return a.Add1(Nil)
	}
	if a.IsAtom(x) {
		return a.Length(a.PrintName(x))
	}
	sum := Index(Nil)
	for !a.IsAtom(x) {
		sum = a.Addition(sum, a.Size(a.Head(x)), 0)
		x = a.Tail(x)
		if !a.IsAtom(x) {
			sum = a.Add1(sum)
		}
	}
	return a.Add1(a.Add1(sum))
}

// Render prints x to a freshly created, unwrapped in-memory buffer and
// returns the resulting text. It is used by tests and by the HTTP
// server's run-utm handler rather than by the interactive trace path.
func (a *Arena) Render(x Index) string {
	var buf fullWidthBuffer
	p := NewPrinter(&buf)
	p.Column = 1 << 30 // effectively unlimited: no wrapping
	a.PrintList(p, x)
	p.Flush()
	return buf.String()
}

type fullWidthBuffer struct {
	data []byte
}

func (b *fullWidthBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *fullWidthBuffer) String() string { return string(b.data) }
