// Package eval implements the evaluator: dynamic-scope lookup, the
// primitive dispatch switch, and the depth-bounded try/eval special
// forms, following eval/evalst/bind/clean_env/restore_env in
// original_source/src/lisp.c.
package eval

import (
	"github.com/melvinzhang/ailisp/arena"
	"github.com/melvinzhang/ailisp/config"
	"github.com/melvinzhang/ailisp/lang"
)

// Evaluator holds the process-wide state a running expression can see:
// the three stacks try pushes onto (tape, display-enabled flag,
// captured-displays) and the tokens of the Turing-machine record most
// recently decoded by read-exp.
type Evaluator struct {
	a   *arena.Arena
	sym *lang.Symbols
	cfg *config.Config
	p   *arena.Printer

	evalCalls int64

	tapes            arena.Index
	displayEnabled   arena.Index
	capturedDisplays arena.Index
	tapeWords        []arena.Index
}

// New builds an evaluator over a, using sym for the fixed vocabulary and
// p for display/debug/trace output.
func New(a *arena.Arena, sym *lang.Symbols, cfg *config.Config, p *arena.Printer) *Evaluator {
	return &Evaluator{a: a, sym: sym, cfg: cfg, p: p}
}

// EvalCalls is the number of Eval invocations made so far, used for the
// end-of-run summary line "Calls to eval".
func (ev *Evaluator) EvalCalls() int64 { return ev.evalCalls }

// EvalTop resets the per-top-level-expression stacks (a fresh, empty
// Turing-machine tape, display capture turned off, nothing captured yet)
// and evaluates e with no depth limit, unwrapping a top-level error back
// into its plain (positive) atom for printing.
func (ev *Evaluator) EvalTop(e arena.Index) arena.Index {
	a := ev.a
	ev.tapes = a.Cons(arena.Nil, arena.Nil)
	ev.displayEnabled = a.Cons(1, arena.Nil)
	ev.capturedDisplays = a.Cons(arena.Nil, arena.Nil)

	v := ev.Eval(e, ev.sym.NoTimeLimit)
	if v < 0 {
		return -v
	}
	return v
}

// Eval evaluates e under depth budget d (either sym.NoTimeLimit or a raw
// little-endian digit list counting down remaining try steps), returning
// either the value or, as a negative index, an error atom.
func (ev *Evaluator) Eval(e, d arena.Index) arena.Index {
	a, sym := ev.a, ev.sym
	ev.evalCalls++

	if a.IsNumber(e) {
		return e
	}
	if a.IsAtom(e) {
		return a.Head(a.Bindings(e))
	}
	if a.Head(e) == sym.Lambda {
		return e
	}

	f := ev.Eval(a.Head(e), d)
	e = a.Tail(e)
	if f < 0 {
		return f
	}

	if f == sym.Quote {
		return a.Head(e)
	}

	if f == sym.If {
		v := ev.Eval(a.Head(e), d)
		e = a.Tail(e)
		if v < 0 {
			return v
		}
		if v == sym.False {
			e = a.Tail(e)
		}
		return ev.Eval(a.Head(e), d)
	}

	args := ev.evalst(e, d)
	if args < 0 {
		return args
	}
	x := a.Head(args)
	y := a.Head(a.Tail(args))
	z := a.Head(a.Tail(a.Tail(args)))

	if v, ok := ev.applyPrimitive(f, x, y, z); ok {
		return v
	}

	if d != sym.NoTimeLimit {
		if d == arena.Nil {
			return -sym.OutOfTime
		}
		d = a.Sub1(d)
	}

	if f == sym.Eval {
		ev.cleanEnv()
		v := ev.Eval(x, d)
		ev.restoreEnv()
		return v
	}

	if f == sym.Try {
		return ev.evalTry(x, y, z, d)
	}

	if a.Head(f) == sym.Lambda {
		rest := a.Tail(f)
		vars := a.Head(rest)
		body := a.Head(a.Tail(rest))

		ev.bind(vars, args)
		v := ev.Eval(body, d)
		ev.unbind(vars)
		return v
	}

	// Anything else is a function that returns itself.
	return f
}

// evalst evaluates each element of e left to right, propagating the
// first error encountered.
func (ev *Evaluator) evalst(e, d arena.Index) arena.Index {
	a := ev.a
	if e == arena.Nil {
		return arena.Nil
	}
	x := ev.Eval(a.Head(e), d)
	if x < 0 {
		return x
	}
	y := ev.evalst(a.Tail(e), d)
	if y < 0 {
		return y
	}
	return a.Cons(x, y)
}

// bind pushes each variable's argument value onto its bindings stack,
// recursing to the end of the list first so the first variable ends up
// on top (mirrors bind() in the reference interpreter).
func (ev *Evaluator) bind(vars, args arena.Index) {
	a := ev.a
	if a.IsAtom(vars) {
		return
	}
	ev.bind(a.Tail(vars), a.Tail(args))
	v := a.Head(vars)
	if a.IsAtom(v) {
		a.SetBindings(v, a.Cons(a.Head(args), a.Bindings(v)))
	}
}

// unbind pops one binding off each variable in vars, undoing a matching
// bind call after a lambda body has been evaluated.
func (ev *Evaluator) unbind(vars arena.Index) {
	a := ev.a
	for !a.IsAtom(vars) {
		v := a.Head(vars)
		if a.IsAtom(v) {
			a.SetBindings(v, a.Tail(a.Bindings(v)))
		}
		vars = a.Tail(vars)
	}
}

func boolAtom(sym *lang.Symbols, cond bool) arena.Index {
	if cond {
		return sym.True
	}
	return sym.False
}

// applyPrimitive dispatches on f's primitive tag. ok is false if f is
// not a primitive, in which case the caller falls through to eval,
// try, and lambda application.
func (ev *Evaluator) applyPrimitive(f, x, y, z arena.Index) (arena.Index, bool) {
	a, sym := ev.a, ev.sym
	switch a.PrimNumber(f) {
	case lang.PFCar:
		return a.Head(x), true
	case lang.PFCdr:
		return a.Tail(x), true
	case lang.PFCons:
		return a.Cons(x, y), true
	case lang.PFAtom:
		return boolAtom(sym, a.IsAtom(x)), true
	case lang.PFEq:
		return boolAtom(sym, a.Eq(x, y)), true
	case lang.PFDisplay:
		return ev.display(x), true
	case lang.PFDebug:
		return a.Trace(ev.p, "debug", x), true
	case lang.PFAppend:
		xx, yy := x, y
		if a.IsAtom(x) {
			xx = arena.Nil
		}
		if a.IsAtom(y) {
			yy = arena.Nil
		}
		return a.Append(xx, yy), true
	case lang.PFLength:
		return a.MakeNumber(a.Length(x)), true
	case lang.PFLt:
		return boolAtom(sym, a.Compare(a.Nmb(x), a.Nmb(y)) < 0), true
	case lang.PFGt:
		return boolAtom(sym, a.Compare(a.Nmb(x), a.Nmb(y)) > 0), true
	case lang.PFLeq:
		return boolAtom(sym, a.Compare(a.Nmb(x), a.Nmb(y)) <= 0), true
	case lang.PFGeq:
		return boolAtom(sym, a.Compare(a.Nmb(x), a.Nmb(y)) >= 0), true
	case lang.PFPlus:
		return a.MakeNumber(a.Addition(a.Nmb(x), a.Nmb(y), 0)), true
	case lang.PFTimes:
		return a.MakeNumber(a.Multiplication(a.Nmb(x), a.Nmb(y))), true
	case lang.PFPow:
		return a.MakeNumber(a.Exponentiation(a.Nmb(x), a.Nmb(y))), true
	case lang.PFMinus:
		if a.Compare(a.Nmb(x), a.Nmb(y)) <= 0 {
			return a.MakeNumber(arena.Nil), true
		}
		return a.MakeNumber(a.RemoveLeadingZeros(a.Subtraction(a.Nmb(x), a.Nmb(y), 0))), true
	case lang.PF2To10:
		return a.MakeNumber(a.Base2To10(x)), true
	case lang.PF10To2:
		return a.Base10To2(a.Nmb(x), sym.Zero, sym.One), true
	case lang.PFSize:
		return a.MakeNumber(a.Size(x)), true
	case lang.PFReadBit:
		return ev.readBit(), true
	case lang.PFBits:
		return ev.bits(x), true
	case lang.PFReadExp:
		return ev.readExp(), true
	default:
		return arena.Nil, false
	}
}

// display prints x immediately if the innermost try's capture is
// disabled, else appends it to that try's captured-displays list
// without printing (out("display", x) / the capture branch of the
// PFDISPLAY case in the reference interpreter).
func (ev *Evaluator) display(x arena.Index) arena.Index {
	a := ev.a
	if a.Head(ev.displayEnabled) != arena.Nil {
		return a.Trace(ev.p, "display", x)
	}
	stub := a.Head(ev.capturedDisplays)
	oldEnd := a.Head(stub)
	newEnd := a.Cons(x, arena.Nil)
	a.SetTail(oldEnd, newEnd)
	a.SetHead(stub, newEnd)
	return x
}
