package arena

import "testing"

func TestAtomSelfLoop(t *testing.T) {
	a := New(0)
	x := a.MakeAtom(0, "foo", 0)
	if a.Head(x) != x || a.Tail(x) != x {
		t.Fatalf("atom %d is not a self-loop: head=%d tail=%d", x, a.Head(x), a.Tail(x))
	}
	if a.Bindings(x) == Nil {
		t.Fatalf("bindings list of fresh atom must be non-empty")
	}
	if a.Head(a.Bindings(x)) != x {
		t.Fatalf("fresh atom must evaluate to itself")
	}
}

func TestConsDegenerateRule(t *testing.T) {
	a := New(0)
	atom := a.MakeAtom(0, "x", 0)
	pair := a.Cons(Index('a'), Nil)

	if got := a.Cons(pair, atom); got != pair {
		t.Fatalf("cons(x, non-nil atom) = %d, want %d (x unchanged)", got, pair)
	}
	if got := a.Cons(pair, Nil); got == pair {
		t.Fatalf("cons(x, nil) must allocate a fresh pair")
	}
}

func TestInternReturnsSameAtom(t *testing.T) {
	a := New(0)
	w1 := a.reverseCharList("hello")
	w2 := a.reverseCharList("hello")
	x := a.Intern(w1)
	y := a.Intern(w2)
	if x != y {
		t.Fatalf("interning the same text twice produced different atoms: %d vs %d", x, y)
	}
	if a.Name(x) != "hello" {
		t.Fatalf("Name(intern(%q)) = %q", "hello", a.Name(x))
	}
}

func TestObjectListOrderAndMembership(t *testing.T) {
	a := New(0)
	x := a.Intern(a.reverseCharList("alpha"))
	y := a.Intern(a.reverseCharList("beta"))
	if a.Head(a.ObjList()) != y {
		t.Fatalf("most recently interned atom should be first on the object list")
	}
	found := false
	for o := a.ObjList(); o != Nil; o = a.Tail(o) {
		if a.Head(o) == x {
			found = true
		}
	}
	if !found {
		t.Fatalf("interned atom missing from object list")
	}
}

func TestNumbersNotInterned(t *testing.T) {
	a := New(0)
	before := a.ObjList()
	a.MakeNumber(a.reverseCharList("42"))
	if a.ObjList() != before {
		t.Fatalf("MakeNumber must not touch the object list")
	}
}

func TestEqStructural(t *testing.T) {
	a := New(0)
	n1 := a.MakeNumber(a.RemoveLeadingZeros(a.reverseCharList("007")))
	n2 := a.MakeNumber(a.reverseCharList("7"))
	if !a.Eq(n1, n2) {
		t.Fatalf("numbers with equal canonical digit lists must be Eq")
	}
	p1 := a.Cons(n1, a.Cons(n2, Nil))
	p2 := a.Cons(n2, a.Cons(n1, Nil))
	if !a.Eq(p1, p2) {
		t.Fatalf("structurally identical lists must be Eq")
	}
}

func TestLength(t *testing.T) {
	a := New(0)
	list := a.Cons(Index('a'), a.Cons(Index('b'), a.Cons(Index('c'), Nil)))
	got := a.Render(a.MakeNumber(a.Length(list)))
	if got != "3" {
		t.Fatalf("Length = %s, want 3", got)
	}
}

func TestRenderAtomAndList(t *testing.T) {
	a := New(0)
	atom := a.Intern(a.reverseCharList("car"))
	if got := a.Render(atom); got != "car" {
		t.Fatalf("Render(car) = %q", got)
	}
	list := a.Cons(atom, a.Cons(atom, Nil))
	if got := a.Render(list); got != "(car car)" {
		t.Fatalf("Render(list) = %q", got)
	}
}

func TestRenderEmptyListIsParens(t *testing.T) {
	a := New(0)
	if got := a.Render(Nil); got != "()" {
		t.Fatalf("Render(Nil) = %q, want \"()\"", got)
	}
	atom := a.MakeAtom(0, "a", 0)
	list := a.Cons(atom, Nil)
	if got := a.Render(list); got != "(a)" {
		t.Fatalf("Render((a . nil)) = %q, want (a)", got)
	}
}

func TestMaxNodesExhaustion(t *testing.T) {
	a := New(3)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on arena exhaustion")
		}
	}()
	for i := 0; i < 10; i++ {
		a.Cons(Nil, Nil)
	}
}
