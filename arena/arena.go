// Package arena implements the single growable node store that underlies
// every LISP value: pairs, atoms, and numbers are all indices into one
// append-only table, following the storage model of the reference
// interpreter (see original_source/src/lisp.c, functions cons/mk_atom/
// mk_numb/lookup_word).
package arena

import "fmt"

// Index identifies a node in the arena. The same integer type also carries
// raw character and digit codes when it appears as the Head of a
// character-list or digit-list cell (see Cons); those cells are never
// dereferenced as nodes, so the overload is safe. This mirrors the
// reference interpreter, which stores everything — node links, ASCII
// codes, decimal digits — in the same `long` array.
type Index int32

// Nil is the empty list: the terminator of every list and the default
// value of freshly allocated fields. Index 0 is reserved for it.
const Nil Index = 0

// Node is one cell of the arena. Pairs use only Head and Tail. Atoms are
// self-referential (Head == Tail == own index) and additionally carry
// Bindings, PrintName, PrimNumber and Arity.
type Node struct {
	Head Index
	Tail Index

	IsAtom   bool
	IsNumber bool

	// Bindings is the head of this atom's dynamic-binding stack; its own
	// head is the atom's current value. Unused for pairs and numbers.
	Bindings Index

	// PrintName is a reversed list of character codes for ordinary atoms,
	// or the head of a (also reversed, little-endian) digit list when
	// IsNumber is set.
	PrintName Index

	// PrimNumber and Arity are set only for primitive/special-form atoms;
	// Arity drives the reader's parenthesis-free argument counting.
	PrimNumber int
	Arity      int
}

// Arena is the append-only node store for one interpreter run. It is not
// safe for concurrent use; the evaluator owns it exclusively.
type Arena struct {
	nodes   []Node
	objList Index

	// MaxNodes bounds allocation, mirroring the reference interpreter's
	// fixed-size SIZE array. Zero means unbounded.
	MaxNodes int

	consCalls int64
}

// New returns an empty arena with node 0 reserved as Nil. Nil's print
// name is the two characters "()", not the word "nil" — that word
// names a distinct ordinary atom (created later by lang.Bootstrap)
// whose binding evaluates to Nil. Printing the empty list itself
// therefore renders "()", matching mk_atom(0, "()", 0) establishing
// node 0 in the reference interpreter.
func New(maxNodes int) *Arena {
	a := &Arena{
		nodes:    make([]Node, 1, 1024),
		MaxNodes: maxNodes,
	}
	a.nodes[0] = Node{IsAtom: true}
	a.nodes[0].PrintName = a.reverseCharList("()")
	return a
}

// ConsCalls is the number of allocating Cons calls made so far, used for
// the end-of-run summary line "Calls to cons".
func (a *Arena) ConsCalls() int64 { return a.consCalls }

// NodeCount is the number of allocated nodes, including Nil.
func (a *Arena) NodeCount() int { return len(a.nodes) }

func (a *Arena) node(i Index) *Node {
	return &a.nodes[i]
}

// alloc reserves a fresh zero-initialized node. Arena exhaustion is fatal,
// matching the reference interpreter's "Storage overflow!" abort.
func (a *Arena) alloc() Index {
	if a.MaxNodes != 0 && len(a.nodes) >= a.MaxNodes {
		panic(fmt.Errorf("arena: storage overflow after %d nodes", len(a.nodes)))
	}
	a.nodes = append(a.nodes, Node{})
	return Index(len(a.nodes) - 1)
}

// IsAtom reports whether x is an atom (or Nil, which is an atom by
// convention).
func (a *Arena) IsAtom(x Index) bool {
	if x == Nil {
		return true
	}
	return a.node(x).IsAtom
}

// IsNumber reports whether x is a number atom.
func (a *Arena) IsNumber(x Index) bool {
	if x == Nil {
		return false
	}
	return a.node(x).IsNumber
}

// Head returns the left child of x (car). Head(Nil) is Nil.
func (a *Arena) Head(x Index) Index {
	if x == Nil {
		return Nil
	}
	return a.node(x).Head
}

// Tail returns the right child of x (cdr). Tail(Nil) is Nil.
func (a *Arena) Tail(x Index) Index {
	if x == Nil {
		return Nil
	}
	return a.node(x).Tail
}

// SetHead mutates the left child of a pair. It is used to overwrite a
// binding in place (define, nil's binding), to advance the tape on top of
// the tape stack, and to keep the captured-displays stub pointing at the
// last cell of its list.
func (a *Arena) SetHead(x, v Index) {
	a.node(x).Head = v
}

// SetTail mutates the right child of a pair.
func (a *Arena) SetTail(x, v Index) {
	a.node(x).Tail = v
}

// Bindings returns the current bindings-list head of atom x.
func (a *Arena) Bindings(x Index) Index {
	return a.node(x).Bindings
}

// SetBindings replaces the bindings-list head of atom x.
func (a *Arena) SetBindings(x, v Index) {
	a.node(x).Bindings = v
}

// PrintName returns the reversed character (or digit) list of atom x.
func (a *Arena) PrintName(x Index) Index {
	return a.node(x).PrintName
}

// SetPrintName replaces the reversed character (or digit) list of atom x.
func (a *Arena) SetPrintName(x, v Index) {
	a.node(x).PrintName = v
}

// PrimNumber returns the primitive dispatch tag of atom x, or 0 if x is
// not a primitive.
func (a *Arena) PrimNumber(x Index) int {
	if x == Nil {
		return 0
	}
	return a.node(x).PrimNumber
}

// Arity returns the declared reader arity of atom x (0 for ordinary
// atoms and numbers).
func (a *Arena) Arity(x Index) int {
	if x == Nil {
		return 0
	}
	return a.node(x).Arity
}

// Cons returns a fresh pair with the given head and tail. Degenerate
// rule: if y is a non-nil atom, Cons returns x unchanged — "tail must
// be a list" is enforced here, not by validation, and the reader and
// printer both rely on it.
func (a *Arena) Cons(x, y Index) Index {
	if y != Nil && a.IsAtom(y) {
		return x
	}
	z := a.alloc()
	a.consCalls++
	n := a.node(z)
	n.Head = x
	n.Tail = y
	return z
}

// reverseCharList builds the reversed-order character list that is the
// storage form of print names and digit lists, by consing each rune of s
// onto the front in turn (see mk_string in the reference interpreter).
func (a *Arena) reverseCharList(s string) Index {
	list := Nil
	for _, r := range s {
		list = a.Cons(Index(r), list)
	}
	return list
}

// MakeAtom allocates a self-looping atom node for a fixed-vocabulary
// symbol: a primitive function or a special form recognized by name.
// primNumber is the primitive dispatch tag (0 for special forms and
// plain symbols); arity is the reader's declared argument count
// (0 means "ordinary atom, no sugar").
func (a *Arena) MakeAtom(primNumber int, name string, arity int) Index {
	z := a.alloc()
	n := a.node(z)
	n.Head, n.Tail = z, z
	n.IsAtom = true
	n.PrintName = a.reverseCharList(name)
	n.PrimNumber = primNumber
	n.Arity = arity
	n.Bindings = a.Cons(z, Nil)
	a.objList = a.Cons(z, a.objList)
	return z
}

// MakeNumber allocates a number atom wrapping an already-canonical
// (no trailing '0') little-endian digit list. Numbers are atoms for
// traversal purposes but are never interned on the object list and have
// no meaningful binding list, matching the reference interpreter's
// mk_numb (which sets vlst to 0 and skips obj_lst entirely).
func (a *Arena) MakeNumber(digits Index) Index {
	z := a.alloc()
	n := a.node(z)
	n.Head, n.Tail = z, z
	n.IsAtom = true
	n.IsNumber = true
	n.PrintName = digits
	return z
}

// eqWrd recursively compares two code lists (character lists or digit
// lists) for structural equality.
func (a *Arena) eqWrd(x, y Index) bool {
	for {
		if x == Nil || y == Nil {
			return x == y
		}
		if a.Head(x) != a.Head(y) {
			return false
		}
		x, y = a.Tail(x), a.Tail(y)
	}
}

// Intern looks up a reversed character list on the object list by
// print-name equality, returning the existing atom if found. Otherwise
// it creates a new plain atom (primNumber 0, arity 0) and installs word
// as its print name directly, exactly as read — no further reversal.
func (a *Arena) Intern(word Index) Index {
	for o := a.objList; o != Nil; o = a.Tail(o) {
		cand := a.Head(o)
		if a.eqWrd(a.PrintName(cand), word) {
			return cand
		}
	}
	atom := a.MakeAtom(0, "", 0)
	a.SetPrintName(atom, word)
	return atom
}

// ObjList returns the head of the object list (most-recently-interned
// atom first).
func (a *Arena) ObjList() Index { return a.objList }

// Name renders an atom's print name back into a Go string, undoing the
// reversed storage order. It never consults bindings; it is purely a
// presentation helper used by logging and the HTML report, not by the
// evaluator.
func (a *Arena) Name(atomIdx Index) string {
	if atomIdx == Nil {
		return "()"
	}
	var runes []rune
	for l := a.PrintName(atomIdx); l != Nil; l = a.Tail(l) {
		runes = append(runes, rune(a.Head(l)))
	}
	// runes is in storage (reversed) order; reverse it back.
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// Append concatenates two lists, sharing no structure with x.
func (a *Arena) Append(x, y Index) Index {
	if x == Nil {
		return y
	}
	return a.Cons(a.Head(x), a.Append(a.Tail(x), y))
}

// Length returns the number of top-level elements of x as a raw digit
// list (not wrapped in a number atom); atoms have length zero.
func (a *Arena) Length(x Index) Index {
	if a.IsAtom(x) {
		return Nil
	}
	return a.Add1(a.Length(a.Tail(x)))
}

// Eq is the deep structural equality used by the `=` primitive: numbers
// compare by digit list, atoms by identity, pairs recursively.
func (a *Arena) Eq(x, y Index) bool {
	if x == y {
		return true
	}
	xNum, yNum := a.IsNumber(x), a.IsNumber(y)
	if xNum && yNum {
		return a.eqWrd(a.PrintName(x), a.PrintName(y))
	}
	if xNum || yNum {
		return false
	}
	if a.IsAtom(x) || a.IsAtom(y) {
		return false
	}
	return a.Eq(a.Head(x), a.Head(y)) && a.Eq(a.Tail(x), a.Tail(y))
}
