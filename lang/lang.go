// Package lang defines the fixed vocabulary of the interpreter: the
// special-form and primitive-function atoms the reader and evaluator
// both need to recognize by identity, and the primitive dispatch tags
// carried on each primitive atom's PrimNumber field. It mirrors the
// reference interpreter's global wrd_* atoms and PF* constants
// (initialize_atoms in original_source/src/lisp.c).
package lang

import "github.com/melvinzhang/ailisp/arena"

// Primitive dispatch tags, stored on the atom's PrimNumber field and
// switched on by the evaluator.
const (
	PFNone = iota
	PFCar
	PFCdr
	PFCons
	PFAtom
	PFEq
	PFDisplay
	PFDebug
	PFAppend
	PFLength
	PFLt
	PFGt
	PFLeq
	PFGeq
	PFPlus
	PFTimes
	PFPow
	PFMinus
	PF2To10
	PF10To2
	PFSize
	PFReadBit
	PFBits
	PFReadExp
)

// Symbols holds the arena indices of every atom the reader or evaluator
// must compare against by identity, plus the constants zero and one.
type Symbols struct {
	NilAtom                           arena.Index
	True, False                       arena.Index
	NoTimeLimit, OutOfTime, OutOfData arena.Index
	Success, Failure                  arena.Index
	Define, Let, Lambda               arena.Index
	Cadr, Caddr, RunUTMOn             arena.Index
	Quote, If, Eval, Try              arena.Index
	Car, Cdr, ReadExp                 arena.Index
	LeftBracket, RightBracket         arena.Index
	LeftParen, RightParen             arena.Index
	DoubleQuote                       arena.Index
	Zero, One                         arena.Index
}

// Bootstrap creates every fixed-vocabulary atom in a, including all
// primitive functions, and returns their indices. It must be called
// exactly once per arena, before any reading or evaluation.
func Bootstrap(a *arena.Arena) *Symbols {
	s := &Symbols{}

	s.NilAtom = a.MakeAtom(PFNone, "nil", 0)
	// nil evaluates to the empty list, not to itself.
	a.SetHead(a.Bindings(s.NilAtom), arena.Nil)

	s.True = a.MakeAtom(PFNone, "true", 0)
	s.False = a.MakeAtom(PFNone, "false", 0)
	s.NoTimeLimit = a.MakeAtom(PFNone, "no-time-limit", 0)
	s.OutOfTime = a.MakeAtom(PFNone, "out-of-time", 0)
	s.OutOfData = a.MakeAtom(PFNone, "out-of-data", 0)
	s.Success = a.MakeAtom(PFNone, "success", 0)
	s.Failure = a.MakeAtom(PFNone, "failure", 0)

	s.Define = a.MakeAtom(PFNone, "define", 3)
	s.Let = a.MakeAtom(PFNone, "let", 4)
	s.Lambda = a.MakeAtom(PFNone, "lambda", 3)
	s.Cadr = a.MakeAtom(PFNone, "cadr", 2)
	s.Caddr = a.MakeAtom(PFNone, "caddr", 2)
	s.RunUTMOn = a.MakeAtom(PFNone, "run-utm-on", 2)
	s.Quote = a.MakeAtom(PFNone, "'", 2)
	s.If = a.MakeAtom(PFNone, "if", 4)

	s.Car = a.MakeAtom(PFCar, "car", 2)
	s.Cdr = a.MakeAtom(PFCdr, "cdr", 2)
	a.MakeAtom(PFCons, "cons", 3)
	a.MakeAtom(PFAtom, "atom", 2)
	a.MakeAtom(PFEq, "=", 3)
	a.MakeAtom(PFDisplay, "display", 2)
	a.MakeAtom(PFDebug, "debug", 2)
	a.MakeAtom(PFAppend, "append", 3)
	a.MakeAtom(PFLength, "length", 2)
	a.MakeAtom(PFLt, "<", 3)
	a.MakeAtom(PFGt, ">", 3)
	a.MakeAtom(PFLeq, "<=", 3)
	a.MakeAtom(PFGeq, ">=", 3)
	a.MakeAtom(PFPlus, "+", 3)
	a.MakeAtom(PFTimes, "*", 3)
	a.MakeAtom(PFPow, "^", 3)
	a.MakeAtom(PFMinus, "-", 3)
	a.MakeAtom(PF2To10, "base2-to-10", 2)
	a.MakeAtom(PF10To2, "base10-to-2", 2)
	a.MakeAtom(PFSize, "size", 2)
	a.MakeAtom(PFReadBit, "read-bit", 1)
	a.MakeAtom(PFBits, "bits", 2)
	s.ReadExp = a.MakeAtom(PFReadExp, "read-exp", 1)

	s.Eval = a.MakeAtom(PFNone, "eval", 2)
	s.Try = a.MakeAtom(PFNone, "try", 4)

	s.LeftBracket = a.MakeAtom(PFNone, "[", 0)
	s.RightBracket = a.MakeAtom(PFNone, "]", 0)
	s.LeftParen = a.MakeAtom(PFNone, "(", 0)
	s.RightParen = a.MakeAtom(PFNone, ")", 0)
	s.DoubleQuote = a.MakeAtom(PFNone, "\"", 0)

	s.Zero = a.MakeNumber(arena.Nil)
	s.One = a.MakeNumber(a.Cons(arena.Index('1'), arena.Nil))

	return s
}
