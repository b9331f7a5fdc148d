package arena

// Decimal numbers are stored as little-endian lists of ASCII digit
// characters ('0'..'9'): the empty list is zero, and canonical lists
// never end in a trailing '0' (see lisp.c: compare/add1/sub1/addition/
// subtraction/multiplication/exponentiation).

// Compare returns -1, 0, or 1 as x is less than, equal to, or greater
// than y, walking to the end of both lists first so the most significant
// digit decides ties (see compare() in the reference interpreter, which
// returns '<'/'='/'>').
func (a *Arena) Compare(x, y Index) int {
	if x == Nil && y == Nil {
		return 0
	}
	if x == Nil {
		return -1
	}
	if y == Nil {
		return 1
	}
	if c := a.Compare(a.Tail(x), a.Tail(y)); c != 0 {
		return c
	}
	d1, d2 := a.Head(x), a.Head(y)
	switch {
	case d1 < d2:
		return -1
	case d1 > d2:
		return 1
	default:
		return 0
	}
}

// Add1 increments a canonical digit list by one.
func (a *Arena) Add1(x Index) Index {
	if x == Nil {
		return a.Cons(Index('1'), Nil)
	}
	digit := a.Head(x)
	if digit != '9' {
		return a.Cons(digit+1, a.Tail(x))
	}
	return a.Cons(Index('0'), a.Add1(a.Tail(x)))
}

// Sub1 decrements a canonical digit list by one. Sub1(0) is 0, pushing
// the x >= y precondition of Subtraction onto its callers.
func (a *Arena) Sub1(x Index) Index {
	if x == Nil {
		return x
	}
	digit := a.Head(x)
	if digit == '1' && a.Tail(x) == Nil {
		return Nil
	}
	if digit != '0' {
		return a.Cons(digit-1, a.Tail(x))
	}
	return a.Cons(Index('9'), a.Sub1(a.Tail(x)))
}

// Nmb extracts the digit list of a number atom, silently yielding zero
// (the empty list) for anything else.
func (a *Arena) Nmb(x Index) Index {
	if a.IsNumber(x) {
		return a.PrintName(x)
	}
	return Nil
}

// RemoveLeadingZeros strips a trailing '0' digit (the leading zero of the
// little-endian representation) left over after subtraction.
func (a *Arena) RemoveLeadingZeros(x Index) Index {
	if x == Nil {
		return Nil
	}
	digit := a.Head(x)
	rest := a.RemoveLeadingZeros(a.Tail(x))
	if rest == Nil && digit == '0' {
		return Nil
	}
	return a.Cons(digit, rest)
}

func digitOrZero(has bool, d Index) Index {
	if has {
		return d
	}
	return Index('0')
}

// Addition adds two canonical digit lists with an initial carry (0 or 1),
// returning a canonical sum.
func (a *Arena) Addition(x, y Index, carry int) Index {
	if x == Nil && carry == 0 {
		return y
	}
	if y == Nil && carry == 0 {
		return x
	}
	d1, rest1 := digitOrZero(x != Nil, a.Head(x)), a.Tail(x)
	d2, rest2 := digitOrZero(y != Nil, a.Head(y)), a.Tail(y)
	sum := int(d1) + int(d2) + carry - '0'
	if sum <= '9' {
		return a.Cons(Index(sum), a.Addition(rest1, rest2, 0))
	}
	return a.Cons(Index(sum-10), a.Addition(rest1, rest2, 1))
}

// Subtraction computes x - y with an initial borrow, assuming x >= y;
// callers (the `-` primitive, via Compare) must ensure that.
// RemoveLeadingZeros must be applied to the result by the caller.
func (a *Arena) Subtraction(x, y Index, borrow int) Index {
	if y == Nil && borrow == 0 {
		return x
	}
	d1, rest1 := digitOrZero(x != Nil, a.Head(x)), a.Tail(x)
	d2, rest2 := digitOrZero(y != Nil, a.Head(y)), a.Tail(y)
	diff := int(d1) - int(d2) - borrow + '0'
	if diff >= '0' {
		return a.Cons(Index(diff), a.Subtraction(rest1, rest2, 0))
	}
	return a.Cons(Index(diff+10), a.Subtraction(rest1, rest2, 1))
}

// Multiplication computes x * y by repeated addition of y, shifted left
// (a fresh '0' digit prepended) once per digit of x already consumed —
// faster when x is the smaller operand.
func (a *Arena) Multiplication(x, y Index) Index {
	if y == Nil {
		return Nil
	}
	sum := Index(Nil)
	for x != Nil {
		digit := a.Head(x)
		for d := digit; d > '0'; d-- {
			sum = a.Addition(sum, y, 0)
		}
		x = a.Tail(x)
		y = a.Cons(Index('0'), y)
	}
	return sum
}

// Exponentiation computes base^exponent by repeated multiplication.
func (a *Arena) Exponentiation(base, exponent Index) Index {
	product := a.Cons(Index('1'), Nil)
	for exponent != Nil {
		product = a.Multiplication(base, product)
		exponent = a.Sub1(exponent)
	}
	return product
}

// Halve computes x/2 (integer division) on a canonical digit list,
// propagating the remainder from the more significant digit down, as in
// the reference interpreter's halve().
func (a *Arena) Halve(x Index) Index {
	if x == Nil {
		return Nil
	}
	digit := int(a.Head(x)) - '0'
	rest := a.Halve(a.Tail(x))
	nextDigit := 0
	if a.Tail(x) != Nil {
		nextDigit = int(a.Head(a.Tail(x))) - '0'
	}
	nextDigit %= 2
	halveDigit := '0' + (digit / 2) + (5 * nextDigit)
	if halveDigit != '0' || rest != Nil {
		return a.Cons(Index(halveDigit), rest)
	}
	return Nil
}

// Base10To2 converts a decimal digit list into a bit list, most
// significant bit first (bits are consed onto the front after each
// Halve, so the final prepend is the most significant bit).
func (a *Arena) Base10To2(x Index, zero, one Index) Index {
	bits := Index(Nil)
	for x != Nil {
		digit := int(a.Head(x)) - '0'
		bit := zero
		if digit%2 != 0 {
			bit = one
		}
		bits = a.Cons(bit, bits)
		x = a.Halve(x)
	}
	return bits
}

// Base2To10 folds a bit list (most significant bit first) into a decimal
// digit list. Any element that is not the canonical number zero counts
// as a 1 bit, matching base2_to_10's "numb[next_bit] && pname == nil"
// zero test.
func (a *Arena) Base2To10(x Index) Index {
	result := Index(Nil)
	for !a.IsAtom(x) {
		bitAtom := a.Head(x)
		x = a.Tail(x)
		bit := 1
		if a.IsNumber(bitAtom) && a.PrintName(bitAtom) == Nil {
			bit = 0
		}
		result = a.Addition(result, result, bit)
	}
	return result
}
