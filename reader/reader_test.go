package reader

import (
	"strings"
	"testing"

	"github.com/melvinzhang/ailisp/arena"
	"github.com/melvinzhang/ailisp/lang"
)

func newParser(t *testing.T, src string) (*arena.Arena, *lang.Symbols, *Parser) {
	t.Helper()
	a := arena.New(0)
	sym := lang.Bootstrap(a)
	lex := NewLexer(a, strings.NewReader(src))
	return a, sym, NewParser(a, sym, lex)
}

func TestArityDrivenPlus(t *testing.T) {
	a, _, p := newParser(t, "+ 2 3\n")
	e, err := p.ReadTopLevel()
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Render(e); got != "(+ 2 3)" {
		t.Fatalf("parsed %q, want (+ 2 3)", got)
	}
}

func TestCadrSugar(t *testing.T) {
	a, _, p := newParser(t, "cadr '(a b c d)\n")
	e, err := p.ReadTopLevel()
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Render(e); got != "(car (cdr (quote (a b c d))))" {
		t.Fatalf("parsed %q", got)
	}
}

func TestCaddrSugar(t *testing.T) {
	a, _, p := newParser(t, "caddr '(a b c d)\n")
	e, err := p.ReadTopLevel()
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Render(e); got != "(car (cdr (cdr (quote (a b c d)))))" {
		t.Fatalf("parsed %q", got)
	}
}

func TestBracketCommentsNest(t *testing.T) {
	a, _, p := newParser(t, "+ 2 [ a comment [nested] still a comment ] 3\n")
	e, err := p.ReadTopLevel()
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Render(e); got != "(+ 2 3)" {
		t.Fatalf("parsed %q, want (+ 2 3)", got)
	}
}

func TestExplicitParens(t *testing.T) {
	a, _, p := newParser(t, "(cons 1 (cons 2 nil))\n")
	e, err := p.ReadTopLevel()
	if err != nil {
		t.Fatal(err)
	}
	// Inside parentheses each primitive still consumes its declared arity,
	// so every explicit pair of parentheses adds one list level around it.
	if got := a.Render(e); got != "((cons 1 ((cons 2 nil))))" {
		t.Fatalf("parsed %q", got)
	}
}

func TestLetSimple(t *testing.T) {
	a, _, p := newParser(t, "let x 5 + x 1\n")
	e, err := p.ReadTopLevel()
	if err != nil {
		t.Fatal(err)
	}
	want := "((quote (lambda (x) (+ x 1))) 5)"
	if got := a.Render(e); got != want {
		t.Fatalf("parsed %q, want %q", got, want)
	}
}

func TestLetFunctionForm(t *testing.T) {
	a, _, p := newParser(t, "let (f x) * x x (f 4)\n")
	e, err := p.ReadTopLevel()
	if err != nil {
		t.Fatal(err)
	}
	want := "((quote (lambda (f) (f 4))) (quote (lambda (x) (* x x))))"
	if got := a.Render(e); got != want {
		t.Fatalf("parsed %q, want %q", got, want)
	}
}

func TestRunUTMOnSugar(t *testing.T) {
	a, _, p := newParser(t, "run-utm-on (bits '+ 2 3)\n")
	e, err := p.ReadTopLevel()
	if err != nil {
		t.Fatal(err)
	}
	want := "(car (cdr (try no-time-limit (quote (eval (read-exp))) ((bits (quote (+ 2 3)))))))"
	if got := a.Render(e); got != want {
		t.Fatalf("parsed %q, want %q", got, want)
	}
}

func TestDoubleQuoteSExpMode(t *testing.T) {
	a, _, p := newParser(t, "\" (+ 2 3)\n")
	e, err := p.ReadTopLevel()
	if err != nil {
		t.Fatal(err)
	}
	// No sugar expansion or arity-driven parenless reading in s-exp mode.
	if got := a.Render(e); got != "(+ 2 3)" {
		t.Fatalf("parsed %q", got)
	}
}

func TestDefineFunctionShorthandParses(t *testing.T) {
	a, _, p := newParser(t, "define (F x) if = x 0 1 * x F - x 1\n")
	e, err := p.ReadTopLevel()
	if err != nil {
		t.Fatal(err)
	}
	want := "(define (F x) (if (= x 0) 1 (* x (F (- x 1)))))"
	if got := a.Render(e); got != want {
		t.Fatalf("parsed %q, want %q", got, want)
	}
}
