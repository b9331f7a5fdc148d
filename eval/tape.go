package eval

import "github.com/melvinzhang/ailisp/arena"

// readBit pops one square off the innermost try's tape. The tape
// encodes a bit as the canonical number zero versus anything else
// (mirrors read_bit's "!numb[x] || pname[x] != nil" test), and is
// exhausted by mutating the stack's top cell in place so the change is
// visible to every enclosing try that still holds the same cell.
func (ev *Evaluator) readBit() arena.Index {
	a, sym := ev.a, ev.sym
	tape := a.Head(ev.tapes)
	if a.IsAtom(tape) {
		return -sym.OutOfData
	}
	square := a.Head(tape)
	a.SetHead(ev.tapes, a.Tail(tape))
	if !a.IsNumber(square) || a.PrintName(square) != arena.Nil {
		return sym.One
	}
	return sym.Zero
}

// writeChr appends the 8 bits of c, most significant first, to the list
// being grown from end, returning the new end cell.
func (ev *Evaluator) writeChr(end arena.Index, c byte) arena.Index {
	a, sym := ev.a, ev.sym
	for i := 7; i >= 0; i-- {
		bit := sym.Zero
		if c&(1<<uint(i)) != 0 {
			bit = sym.One
		}
		cell := a.Cons(bit, arena.Nil)
		a.SetTail(end, cell)
		end = cell
	}
	return end
}

// writeAtm appends an atom's print name to the tape in original
// (un-reversed) character order, tail-first exactly as printAtom does.
func (ev *Evaluator) writeAtm(end, name arena.Index) arena.Index {
	a := ev.a
	if name == arena.Nil {
		return end
	}
	end = ev.writeAtm(end, a.Tail(name))
	return ev.writeChr(end, byte(a.Head(name)))
}

// writeLst appends the 8-bits-per-character encoding of an s-expression
// to the tape: '0' for the number zero, an atom's name, or a
// parenthesized, space-separated list of elements. Mirrors write_lst.
func (ev *Evaluator) writeLst(end, x arena.Index) arena.Index {
	a := ev.a
	if a.IsNumber(x) && a.PrintName(x) == arena.Nil {
		return ev.writeChr(end, '0')
	}
	if a.IsAtom(x) {
		return ev.writeAtm(end, a.PrintName(x))
	}
	end = ev.writeChr(end, '(')
	for !a.IsAtom(x) {
		end = ev.writeLst(end, a.Head(x))
		x = a.Tail(x)
		if !a.IsAtom(x) {
			end = ev.writeChr(end, ' ')
		}
	}
	return ev.writeChr(end, ')')
}

// bits encodes x as a bit list terminated by a newline character, the
// `bits` primitive's result (see PFBITS in the reference interpreter).
func (ev *Evaluator) bits(x arena.Index) arena.Index {
	a := ev.a
	stub := a.Cons(arena.Nil, arena.Nil)
	end := ev.writeLst(stub, x)
	ev.writeChr(end, '\n')
	return a.Tail(stub)
}

// readChar reads 8 bits from the tape, most significant first, and
// assembles them into a character code.
func (ev *Evaluator) readChar() arena.Index {
	a := ev.a
	var c arena.Index
	for i := 0; i < 8; i++ {
		b := ev.readBit()
		if b < 0 {
			return b
		}
		bit := arena.Index(0)
		if a.PrintName(b) != arena.Nil {
			bit = 1
		}
		c = c*2 + bit
	}
	return c
}

// readRecord reads characters from the tape up to and including the
// next newline and tokenizes the line into tapeWords, ready for
// readExpr to parse. Tokens are looked up on the object list exactly as
// the top-level reader does, so an atom decoded off the tape is eq to
// the same atom used anywhere else in the running program. Breaks only
// on space, newline, and parentheses — unlike the top-level tokenizer,
// the tape never carries bracket comments or quote/double-quote markers.
func (ev *Evaluator) readRecord() arena.Index {
	a := ev.a
	var line []arena.Index
	for {
		c := ev.readChar()
		if c < 0 {
			return c
		}
		line = append(line, c)
		if c == '\n' {
			break
		}
	}

	var tokens []arena.Index
	word := arena.Nil
	flush := func() {
		if word == arena.Nil {
			return
		}
		if onlyDigits(a, word) {
			tokens = append(tokens, a.MakeNumber(a.RemoveLeadingZeros(word)))
		} else {
			tokens = append(tokens, a.Intern(word))
		}
		word = arena.Nil
	}
	for _, c := range line {
		switch {
		case c == ' ' || c == '\n':
			flush()
		case c == '(' || c == ')':
			flush()
			tokens = append(tokens, a.Intern(a.Cons(c, arena.Nil)))
		default:
			if c > 32 && c < 127 {
				word = a.Cons(c, word)
			}
		}
	}
	flush()
	ev.tapeWords = tokens
	return 0
}

func onlyDigits(a *arena.Arena, x arena.Index) bool {
	for x != arena.Nil {
		d := a.Head(x)
		if d < '0' || d > '9' {
			return false
		}
		x = a.Tail(x)
	}
	return true
}

// readWord pulls the next token decoded by readRecord, or right-paren
// once the record's tokens are exhausted (read_word's "buffer2 empty"
// case, which lets readExpr close off any still-open lists).
func (ev *Evaluator) readWord() arena.Index {
	if len(ev.tapeWords) == 0 {
		return ev.sym.RightParen
	}
	w := ev.tapeWords[0]
	ev.tapeWords = ev.tapeWords[1:]
	return w
}

// readExpr parses one s-expression out of tapeWords: plain explicit
// parentheses only, no arity-driven sugar (the tape carries fully
// parenthesized s-expressions written by writeLst, not surface syntax).
func (ev *Evaluator) readExpr(rparenOk bool) arena.Index {
	a, sym := ev.a, ev.sym
	w := ev.readWord()
	if w < 0 {
		return w
	}
	if w == sym.RightParen {
		if rparenOk {
			return w
		}
		return arena.Nil
	}
	if w == sym.LeftParen {
		stub := a.Cons(arena.Nil, arena.Nil)
		last := stub
		for {
			next := ev.readExpr(true)
			if next == sym.RightParen {
				break
			}
			if next < 0 {
				return next
			}
			cell := a.Cons(next, arena.Nil)
			a.SetTail(last, cell)
			last = cell
		}
		return a.Tail(stub)
	}
	return w
}

// readExp is the `read-exp` primitive: decode one record off the tape,
// then parse an s-expression from it.
func (ev *Evaluator) readExp() arena.Index {
	v := ev.readRecord()
	if v < 0 {
		return v
	}
	return ev.readExpr(false)
}
