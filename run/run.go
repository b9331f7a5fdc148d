// Package run drives the top-level read-eval-print loop: read one
// meta-expression, special-case define, otherwise trace and evaluate it,
// and repeat until the input is exhausted. Mirrors main() in the
// reference interpreter.
package run

import (
	"errors"
	"fmt"
	"io"

	"github.com/melvinzhang/ailisp/arena"
	"github.com/melvinzhang/ailisp/config"
	"github.com/melvinzhang/ailisp/eval"
	"github.com/melvinzhang/ailisp/lang"
	"github.com/melvinzhang/ailisp/reader"
)

// Runner owns the pieces wired together for one interpreter run: the
// arena, the fixed vocabulary, the parser reading from some input, the
// evaluator, and the printer tracing output.
type Runner struct {
	a      *arena.Arena
	sym    *lang.Symbols
	ev     *eval.Evaluator
	p      *arena.Printer
	parser *reader.Parser
	conf   *config.Config
}

// New builds a Runner from its already-constructed parts. Callers
// typically build the arena, bootstrap its vocabulary, then construct
// the lexer/parser/evaluator/printer around it before calling New.
func New(a *arena.Arena, sym *lang.Symbols, ev *eval.Evaluator, p *arena.Printer, parser *reader.Parser, conf *config.Config) *Runner {
	return &Runner{a: a, sym: sym, ev: ev, p: p, parser: parser, conf: conf}
}

// Run reads and processes meta-expressions until the input is
// exhausted, then prints the end-of-run call-count summary and returns.
// Arena exhaustion is fatal and escapes as an error rather than a panic,
// matching the reference interpreter's unconditional exit on storage
// overflow — there is no per-expression recovery in this language,
// since ordinary errors are already data (a negative arena index), not
// a runtime panic. Setting the "panic" debug flag lets the panic escape
// uncaught instead, for post-mortem debugging with a stack trace.
func (r *Runner) Run(w io.Writer) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if r.conf.Debug("panic") {
				panic(rec)
			}
			if e, ok := rec.(error); ok {
				err = e
				return
			}
			panic(rec)
		}
	}()

	for {
		fmt.Fprintln(w)
		e, perr := r.parser.ReadTopLevel()
		if perr != nil {
			if errors.Is(perr, io.EOF) {
				r.printSummary(w)
				return nil
			}
			return perr
		}
		fmt.Fprintln(w)

		if r.a.Head(e) == r.sym.Define {
			r.define(e)
			continue
		}

		r.a.Trace(r.p, "expression", e)
		r.p.Flush()
		v := r.ev.EvalTop(e)
		r.a.Trace(r.p, "value", v)
		r.p.Flush()
	}
}

// define implements `define name def` (a value binding) and
// `define (fname args...) body` (sugar for binding fname to a lambda),
// replacing whatever the name was previously bound to. Mirrors the
// wrd_define branch of main().
func (r *Runner) define(e arena.Index) {
	a, sym := r.a, r.sym
	name := a.Head(a.Tail(e))
	def := a.Head(a.Tail(a.Tail(e)))

	if !a.IsAtom(name) {
		varList := a.Tail(name)
		fname := a.Head(name)
		def = a.Cons(sym.Lambda, a.Cons(varList, a.Cons(def, arena.Nil)))
		name = fname
	}

	a.Trace(r.p, "define", name)
	a.Trace(r.p, "value", def)
	r.p.Flush()
	a.SetHead(a.Bindings(name), def)
}

func (r *Runner) printSummary(w io.Writer) {
	fmt.Fprintf(w, "End of LISP Run\n\nCalls to eval = %d\nCalls to cons = %d\n",
		r.ev.EvalCalls(), r.a.ConsCalls())
}
