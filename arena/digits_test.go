package arena

import "testing"

func num(a *Arena, s string) Index {
	return a.MakeNumber(a.RemoveLeadingZeros(a.reverseCharList(s)))
}

func TestCompare(t *testing.T) {
	a := New(0)
	cases := []struct {
		x, y string
		want int
	}{
		{"0", "0", 0},
		{"1", "0", 1},
		{"99", "100", -1},
		{"123", "123", 0},
		{"9", "10", -1},
	}
	for _, c := range cases {
		got := a.Compare(a.Nmb(num(a, c.x)), a.Nmb(num(a, c.y)))
		if got != c.want {
			t.Errorf("Compare(%s,%s) = %d, want %d", c.x, c.y, got, c.want)
		}
	}
}

func TestAdd1Sub1(t *testing.T) {
	a := New(0)
	if got := a.Render(a.MakeNumber(a.Add1(a.Nmb(num(a, "99"))))); got != "100" {
		t.Errorf("Add1(99) = %s", got)
	}
	if got := a.Render(a.MakeNumber(a.Sub1(a.Nmb(num(a, "100"))))); got != "99" {
		t.Errorf("Sub1(100) = %s", got)
	}
	if got := a.Render(a.MakeNumber(a.Sub1(Nil))); got != "0" {
		t.Errorf("Sub1(0) = %s, want 0", got)
	}
}

func TestAdditionCommutative(t *testing.T) {
	a := New(0)
	x, y := a.Nmb(num(a, "127")), a.Nmb(num(a, "875"))
	s1 := a.Render(a.MakeNumber(a.Addition(x, y, 0)))
	s2 := a.Render(a.MakeNumber(a.Addition(y, x, 0)))
	if s1 != s2 || s1 != "1002" {
		t.Errorf("addition not commutative or wrong: %s vs %s", s1, s2)
	}
}

func TestSubtraction(t *testing.T) {
	a := New(0)
	x, y := a.Nmb(num(a, "1000")), a.Nmb(num(a, "1"))
	got := a.Render(a.MakeNumber(a.RemoveLeadingZeros(a.Subtraction(x, y, 0))))
	if got != "999" {
		t.Errorf("1000 - 1 = %s, want 999", got)
	}
}

func TestMultiplicationDistributes(t *testing.T) {
	a := New(0)
	x, y, z := a.Nmb(num(a, "3")), a.Nmb(num(a, "4")), a.Nmb(num(a, "5"))
	left := a.Multiplication(a.Addition(x, y, 0), z)
	right := a.Addition(a.Multiplication(x, z), a.Multiplication(y, z), 0)
	if a.Compare(left, right) != 0 {
		t.Errorf("(x+y)*z != x*z+y*z: %s vs %s", a.Render(a.MakeNumber(left)), a.Render(a.MakeNumber(right)))
	}
	if got := a.Render(a.MakeNumber(a.Multiplication(x, y))); got != "12" {
		t.Errorf("3*4 = %s, want 12", got)
	}
}

func TestExponentiation(t *testing.T) {
	a := New(0)
	base, exp := a.Nmb(num(a, "2")), a.Nmb(num(a, "10"))
	if got := a.Render(a.MakeNumber(a.Exponentiation(base, exp))); got != "1024" {
		t.Errorf("2^10 = %s, want 1024", got)
	}
}

func TestBitConversionRoundTrip(t *testing.T) {
	a := New(0)
	zero := a.MakeNumber(Nil)
	one := a.MakeNumber(a.Cons(Index('1'), Nil))
	for _, s := range []string{"0", "1", "2", "5", "99", "1024", "255"} {
		n := a.Nmb(num(a, s))
		bits := a.Base10To2(n, zero, one)
		back := a.Base2To10(bits)
		if a.Compare(n, back) != 0 {
			t.Errorf("round trip failed for %s: got %s", s, a.Render(a.MakeNumber(back)))
		}
	}
}

func TestRemoveLeadingZeros(t *testing.T) {
	a := New(0)
	x := a.reverseCharList("00700") // value 700, little-endian digits '0','0','7','0','0' reversed storage
	got := a.Render(a.MakeNumber(a.RemoveLeadingZeros(x)))
	if got != "700" {
		t.Errorf("RemoveLeadingZeros(00700) = %s, want 700", got)
	}
}
