package run

import (
	"bytes"
	"strings"
	"testing"

	"github.com/melvinzhang/ailisp/arena"
	"github.com/melvinzhang/ailisp/config"
	"github.com/melvinzhang/ailisp/eval"
	"github.com/melvinzhang/ailisp/lang"
	"github.com/melvinzhang/ailisp/reader"
)

func newRunner(t *testing.T, src string) (*Runner, *bytes.Buffer) {
	t.Helper()
	a := arena.New(0)
	sym := lang.Bootstrap(a)
	var traceBuf bytes.Buffer
	p := arena.NewPrinter(&traceBuf)
	ev := eval.New(a, sym, config.New(nil), p)
	lex := reader.NewLexer(a, strings.NewReader(src))
	parser := reader.NewParser(a, sym, lex)
	return New(a, sym, ev, p, parser, config.New(nil)), &traceBuf
}

func TestRunEvaluatesUntilEOF(t *testing.T) {
	r, trace := newRunner(t, "+ 2 3\n")
	var out bytes.Buffer
	if err := r.Run(&out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(trace.String(), "expression") || !strings.Contains(trace.String(), "5") {
		t.Fatalf("trace output missing expression/value lines: %q", trace.String())
	}
	if !strings.Contains(out.String(), "Calls to eval") || !strings.Contains(out.String(), "Calls to cons") {
		t.Fatalf("missing end-of-run summary: %q", out.String())
	}
}

func TestRunDefineRebindsName(t *testing.T) {
	r, trace := newRunner(t, "define x 5\n+ x x\n")
	var out bytes.Buffer
	if err := r.Run(&out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(trace.String(), "define") {
		t.Fatalf("trace missing define line: %q", trace.String())
	}
	if !strings.Contains(trace.String(), "10") {
		t.Fatalf("x+x after define x 5 should trace 10, got %q", trace.String())
	}
}

func TestRunDefineFunctionShorthand(t *testing.T) {
	r, trace := newRunner(t, "define (square x) * x x\n(square 6)\n")
	var out bytes.Buffer
	if err := r.Run(&out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(trace.String(), "36") {
		t.Fatalf("(square 6) after function-shorthand define should trace 36, got %q", trace.String())
	}
}

// newExhaustedRunner builds a Runner whose arena has no room left for a
// single further node once bootstrap is done, so the next allocation
// (reading or evaluating "+ 2 3") panics with a storage-overflow error.
func newExhaustedRunner(t *testing.T, conf *config.Config) *Runner {
	t.Helper()
	a := arena.New(0)
	sym := lang.Bootstrap(a)
	a.MaxNodes = a.NodeCount()
	p := arena.NewPrinter(&bytes.Buffer{})
	ev := eval.New(a, sym, conf, p)
	lex := reader.NewLexer(a, strings.NewReader("+ 2 3\n"))
	parser := reader.NewParser(a, sym, lex)
	return New(a, sym, ev, p, parser, conf)
}

func TestRunRecoversArenaExhaustionAsError(t *testing.T) {
	r := newExhaustedRunner(t, config.New(nil))
	var out bytes.Buffer
	if err := r.Run(&out); err == nil {
		t.Fatalf("Run should return an error when the arena is exhausted")
	}
}

func TestRunPanicFlagEscapesArenaExhaustion(t *testing.T) {
	conf := config.New(nil)
	conf.SetDebug("panic", true)
	r := newExhaustedRunner(t, conf)

	defer func() {
		if recover() == nil {
			t.Fatalf("Run should panic when the panic debug flag is set")
		}
	}()
	var out bytes.Buffer
	r.Run(&out)
}
