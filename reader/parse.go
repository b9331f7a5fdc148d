package reader

import (
	"github.com/melvinzhang/ailisp/arena"
	"github.com/melvinzhang/ailisp/lang"
)

// Parser implements the arity-driven meta-expression reader: it expands
// per-primitive arity into implicit argument lists and desugars cadr,
// caddr, let, and run-utm-on, mirroring in(mexp, rparenokay) in the
// reference interpreter.
type Parser struct {
	a   *arena.Arena
	sym *lang.Symbols
	lex *Lexer
}

// NewParser builds a parser reading tokens from lex.
func NewParser(a *arena.Arena, sym *lang.Symbols, lex *Lexer) *Parser {
	return &Parser{a: a, sym: sym, lex: lex}
}

// ReadTopLevel reads one top-level meta-expression ( ) not permitted at
// this level).
func (p *Parser) ReadTopLevel() (arena.Index, error) {
	return p.Read(true, false)
}

// Read implements in(mexp, rparenOk): mexp selects meta-expression mode
// (arity-driven, sugar-expanding) versus plain s-expression mode.
func (p *Parser) Read(mexp, rparenOk bool) (arena.Index, error) {
	a, sym := p.a, p.sym

	w, err := p.lex.Word(sym)
	if err != nil {
		return arena.Nil, err
	}

	switch {
	case w == sym.RightParen:
		if rparenOk {
			return w, nil
		}
		return arena.Nil, nil

	case w == sym.LeftParen:
		return p.readList(mexp)

	case !mexp:
		return w, nil

	case w == sym.DoubleQuote:
		return p.Read(false, false)

	case w == sym.Cadr:
		s, err := p.Read(true, false)
		if err != nil {
			return arena.Nil, err
		}
		inner := a.Cons(sym.Cdr, a.Cons(s, arena.Nil))
		return a.Cons(sym.Car, a.Cons(inner, arena.Nil)), nil

	case w == sym.Caddr:
		s, err := p.Read(true, false)
		if err != nil {
			return arena.Nil, err
		}
		inner := a.Cons(sym.Cdr, a.Cons(s, arena.Nil))
		inner = a.Cons(sym.Cdr, a.Cons(inner, arena.Nil))
		return a.Cons(sym.Car, a.Cons(inner, arena.Nil)), nil

	case w == sym.RunUTMOn:
		s, err := p.Read(true, false)
		if err != nil {
			return arena.Nil, err
		}
		readExp := a.Cons(sym.ReadExp, arena.Nil)
		evalCall := a.Cons(sym.Eval, a.Cons(readExp, arena.Nil))
		quoted := a.Cons(sym.Quote, a.Cons(evalCall, arena.Nil))
		tryCall := a.Cons(sym.Try, a.Cons(sym.NoTimeLimit, a.Cons(quoted, a.Cons(s, arena.Nil))))
		cdrCall := a.Cons(sym.Cdr, a.Cons(tryCall, arena.Nil))
		return a.Cons(sym.Car, a.Cons(cdrCall, arena.Nil)), nil

	case w == sym.Let:
		return p.readLet()

	default:
		arity := a.Arity(w)
		if arity == 0 {
			return w, nil
		}
		first := a.Cons(w, arena.Nil)
		last := first
		for i := arity - 1; i > 0; i-- {
			arg, err := p.Read(true, false)
			if err != nil {
				return arena.Nil, err
			}
			cell := a.Cons(arg, arena.Nil)
			a.SetTail(last, cell)
			last = cell
		}
		return first, nil
	}
}

// readList reads the elements of an explicit ( ... ) list.
func (p *Parser) readList(mexp bool) (arena.Index, error) {
	a, sym := p.a, p.sym
	stub := a.Cons(arena.Nil, arena.Nil)
	last := stub
	for {
		next, err := p.Read(mexp, true)
		if err != nil {
			return arena.Nil, err
		}
		if next == sym.RightParen {
			break
		}
		cell := a.Cons(next, arena.Nil)
		a.SetTail(last, cell)
		last = cell
	}
	return a.Tail(stub), nil
}

// readLet desugars `let name def body` and `let (fname args...) def body`
// into an immediately applied lambda.
func (p *Parser) readLet() (arena.Index, error) {
	a, sym := p.a, p.sym

	name, err := p.Read(true, false)
	if err != nil {
		return arena.Nil, err
	}
	def, err := p.Read(true, false)
	if err != nil {
		return arena.Nil, err
	}
	body, err := p.Read(true, false)
	if err != nil {
		return arena.Nil, err
	}

	if !a.IsAtom(name) {
		varList := a.Tail(name)
		fname := a.Head(name)
		lambdaExpr := a.Cons(sym.Lambda, a.Cons(varList, a.Cons(def, arena.Nil)))
		def = a.Cons(sym.Quote, a.Cons(lambdaExpr, arena.Nil))
		name = fname
	}

	innerLambda := a.Cons(sym.Lambda, a.Cons(a.Cons(name, arena.Nil), a.Cons(body, arena.Nil)))
	quotedLambda := a.Cons(sym.Quote, a.Cons(innerLambda, arena.Nil))
	return a.Cons(quotedLambda, a.Cons(def, arena.Nil)), nil
}
