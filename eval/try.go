package eval

import "github.com/melvinzhang/ailisp/arena"

// cleanEnv pushes a self-evaluating binding onto every atom in the
// object list (so a nested eval or try starts from a "blank slate" where
// every atom, including ones read later via read-exp, evaluates to
// itself), except nil, whose self-binding is overridden back to the
// empty list. Mirrors clean_env in the reference interpreter.
func (ev *Evaluator) cleanEnv() {
	a, sym := ev.a, ev.sym
	for o := a.ObjList(); o != arena.Nil; o = a.Tail(o) {
		v := a.Head(o)
		a.SetBindings(v, a.Cons(v, a.Bindings(v)))
	}
	a.SetHead(a.Bindings(sym.NilAtom), arena.Nil)
}

// restoreEnv pops the binding clean_env pushed from every atom whose
// bindings list still has something underneath — atoms interned for the
// first time by read-exp during the nested evaluation have nothing to
// pop back to and keep their self-binding. Mirrors restore_env.
func (ev *Evaluator) restoreEnv() {
	a := ev.a
	for o := a.ObjList(); o != arena.Nil; o = a.Tail(o) {
		v := a.Head(o)
		if a.Tail(a.Bindings(v)) != arena.Nil {
			a.SetBindings(v, a.Tail(a.Bindings(v)))
		}
	}
}

// evalTry implements the try special form: x is the requested depth
// budget (no-time-limit atom or a number to convert), y is the body
// expression, z is the tape to make available to read-bit/read-exp
// during the body's evaluation. It runs the body in a clean environment
// with a fresh tape and display capture, then reports (success value
// captured-displays) or (failure error-atom captured-displays).
func (ev *Evaluator) evalTry(x, y, z, d arena.Index) arena.Index {
	a, sym := ev.a, ev.sym

	oldTryHasSmallerTimeLimit := false
	if x != sym.NoTimeLimit {
		x = a.Nmb(x)
	}
	if x == sym.NoTimeLimit || (d != sym.NoTimeLimit && a.Compare(x, d) >= 0) {
		oldTryHasSmallerTimeLimit = true
		x = d
	}

	ev.tapes = a.Cons(z, ev.tapes)
	ev.displayEnabled = a.Cons(0, ev.displayEnabled)
	stub := a.Cons(0, arena.Nil)
	a.SetHead(stub, stub)
	ev.capturedDisplays = a.Cons(stub, ev.capturedDisplays)

	ev.cleanEnv()
	v := ev.Eval(y, x)
	ev.restoreEnv()

	ev.tapes = a.Tail(ev.tapes)
	ev.displayEnabled = a.Tail(ev.displayEnabled)
	captured := a.Tail(a.Head(ev.capturedDisplays))
	ev.capturedDisplays = a.Tail(ev.capturedDisplays)

	if oldTryHasSmallerTimeLimit && v == -sym.OutOfTime {
		return v
	}
	if v < 0 {
		return a.Cons(sym.Failure, a.Cons(-v, a.Cons(captured, arena.Nil)))
	}
	return a.Cons(sym.Success, a.Cons(v, a.Cons(captured, arena.Nil)))
}
