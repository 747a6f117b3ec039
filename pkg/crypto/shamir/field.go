package shamir

import "io"

// Element is the arithmetic the polynomial and interpolation code needs from
// a field element type.
type Element[E any] interface {
	Add(E) E
	Sub(E) E
	Mul(E) E
	Div(E) E
}

// Field supplies the constants and randomness of a field whose elements are E.
type Field[E Element[E]] interface {
	Zero() E
	One() E
	Random(r io.Reader) (E, error)
}

// Point is a sample (X, Y) on a polynomial. X is never zero: f(0) is the secret.
type Point[E any] struct {
	X E
	Y E
}
