// Package reader implements the tokenizer and the arity-driven
// meta-expression parser, following the two-layer split of the
// reference interpreter's in_word2/in_word/in functions.
package reader

import (
	"bufio"
	"io"

	"github.com/melvinzhang/ailisp/arena"
	"github.com/melvinzhang/ailisp/lang"
)

// breakChars are the characters, besides whitespace, that always end the
// current word and are themselves emitted as one-character tokens.
const breakChars = "()[]'\""

func isBreak(c rune) bool {
	for _, b := range breakChars {
		if b == c {
			return true
		}
	}
	return false
}

// Lexer turns a byte stream into a sequence of interned tokens, one line
// at a time, holding the residual, not-yet-consumed tokens of the
// current line in buffer.
type Lexer struct {
	a      *arena.Arena
	r      *bufio.Reader
	buffer []arena.Index
	eof    error // set once the underlying reader has nothing left to give
}

// NewLexer wraps r for tokenizing against a's object list.
func NewLexer(a *arena.Arena, r io.Reader) *Lexer {
	return &Lexer{a: a, r: bufio.NewReader(r)}
}

// rawWord returns the next token, reading and splitting further lines of
// input as needed. It returns io.EOF once the underlying reader is
// exhausted with no more buffered tokens (in_word2 in the reference
// interpreter).
func (l *Lexer) rawWord() (arena.Index, error) {
	for len(l.buffer) == 0 {
		if l.eof != nil {
			return arena.Nil, l.eof
		}
		line, err := l.r.ReadString('\n')
		l.buffer = tokenizeLine(l.a, line)
		l.eof = err // nil unless the read hit an error/EOF
	}
	tok := l.buffer[0]
	l.buffer = l.buffer[1:]
	return tok, nil
}

// Word returns the next token, skipping nested bracket comments
// (in_word in the reference interpreter: "[" begins a nestable comment
// that reads and discards tokens, including further "[", until its
// matching "]").
func (l *Lexer) Word(sym *lang.Symbols) (arena.Index, error) {
	for {
		w, err := l.rawWord()
		if err != nil {
			return arena.Nil, err
		}
		if w != sym.LeftBracket {
			return w, nil
		}
		for {
			inner, err := l.Word(sym)
			if err != nil {
				return arena.Nil, err
			}
			if inner == sym.RightBracket {
				break
			}
		}
	}
}

// tokenizeLine splits one line of input into tokens: runs of printable,
// non-break, non-space characters become words (numbers or interned
// atoms), and each break character becomes its own one-character token.
// Only printable ASCII in (32, 127) survives inside a word.
func tokenizeLine(a *arena.Arena, line string) []arena.Index {
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
		case isBreak(c):
			flush()
			tokens = append(tokens, a.Intern(a.Cons(arena.Index(c), arena.Nil)))
		default:
			if c > 32 && c < 127 {
				word = a.Cons(arena.Index(c), word)
			}
		}
	}
	flush()
	return tokens
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
