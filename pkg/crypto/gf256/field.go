// Package gf256 implements constant-time arithmetic in GF(2^8) with the
// irreducible polynomial x^8 + x^4 + x^3 + x + 1 (0x11B), the field used by AES.
//
// No lookup tables are used and no operation branches on the value of an
// element: every data-dependent decision goes through crypto/subtle selects.
package gf256

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
)

// reduction is x^8 + x^4 + x^3 + x + 1 with the x^8 term dropped.
const reduction = 0x1B

// ErrDivisionByZero is the panic value raised by Div when the divisor is zero.
var ErrDivisionByZero = errors.New("gf256: division by zero")

// Element is a single element of GF(2^8).
type Element uint8

// Zero returns the additive identity.
func Zero() Element { return 0 }

// One returns the multiplicative identity.
func One() Element { return 1 }

// Random reads one uniformly random element from r.
func Random(r io.Reader) (Element, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("failed to read random field element: %w", err)
	}
	return Element(buf[0]), nil
}

func selectByte(choice int, a, b uint8) uint8 {
	return uint8(subtle.ConstantTimeSelect(choice, int(a), int(b)))
}

// IsZero reports whether a is the additive identity.
func (a Element) IsZero() bool {
	return subtle.ConstantTimeByteEq(uint8(a), 0) == 1
}

// Equal compares two elements in constant time.
func (a Element) Equal(b Element) bool {
	return subtle.ConstantTimeByteEq(uint8(a), uint8(b)) == 1
}

// Add returns a + b. Addition is XOR in characteristic 2.
func (a Element) Add(b Element) Element {
	return a ^ b
}

// Sub returns a - b, which is the same operation as Add.
func (a Element) Sub(b Element) Element {
	return a ^ b
}

// Neg returns -a. Every element is its own additive inverse.
func (a Element) Neg() Element {
	return a
}

// Mul returns a * b reduced modulo x^8 + x^4 + x^3 + x + 1.
func (a Element) Mul(b Element) Element {
	x, y := uint8(a), uint8(b)
	var acc uint8

	for i := 0; i < 8; i++ {
		bit := int((x >> i) & 1)
		acc = selectByte(bit, acc^y, acc)

		carry := int(y >> 7)
		y <<= 1
		y = selectByte(carry, y^reduction, y)
	}

	return Element(acc)
}

// Square returns a * a.
func (a Element) Square() Element {
	return a.Mul(a)
}

// Inverse returns a^254, the multiplicative inverse of a for nonzero a.
// The inverse of zero is reported as zero.
func (a Element) Inverse() Element {
	res := a
	// exponent walks 1, 3, 7, 15, 31, 63, 127
	for i := 0; i < 6; i++ {
		res = res.Square().Mul(a)
	}
	res = res.Square()

	return Element(selectByte(subtle.ConstantTimeByteEq(uint8(a), 0), 0, uint8(res)))
}

// Pow returns a^e. The exponent is treated as public, the base is not.
func (a Element) Pow(e uint8) Element {
	res := One()
	for i := 7; i >= 0; i-- {
		res = res.Square()
		tmp := res.Mul(a)
		res = Element(selectByte(int((e>>i)&1), uint8(tmp), uint8(res)))
	}

	return Element(selectByte(subtle.ConstantTimeByteEq(e, 0), 1, uint8(res)))
}

// Div returns a / b. Dividing by zero breaks a caller invariant and panics.
func (a Element) Div(b Element) Element {
	// only the zero divisor branches, and that path never returns
	if b.IsZero() {
		panic(ErrDivisionByZero)
	}
	return a.Mul(b.Inverse())
}

// Byte returns the byte representation of a.
func (a Element) Byte() byte {
	return byte(a)
}

func (a Element) String() string {
	return fmt.Sprintf("%d", uint8(a))
}

// Field is the GF(2^8) capability used by the generic polynomial and
// interpolation code.
type Field struct{}

func (Field) Zero() Element { return Zero() }

func (Field) One() Element { return One() }

func (Field) Random(r io.Reader) (Element, error) { return Random(r) }
