package shamir

import (
	"fmt"
	"io"
)

// Polynomial holds coefficients highest degree first; the last one is the
// constant term.
type Polynomial[E Element[E]] struct {
	coefficients []E
}

// NewPolynomial builds a polynomial with degree coefficients: degree-1 random
// ones followed by intercept. A degree of 0 or 1 yields the constant intercept.
func NewPolynomial[E Element[E]](field Field[E], random io.Reader, intercept E, degree int) (*Polynomial[E], error) {
	if degree < 1 {
		degree = 1
	}

	coefficients := make([]E, 0, degree)
	for i := 1; i < degree; i++ {
		c, err := field.Random(random)
		if err != nil {
			return nil, fmt.Errorf("failed to draw coefficient: %w", err)
		}
		coefficients = append(coefficients, c)
	}
	coefficients = append(coefficients, intercept)

	return &Polynomial[E]{coefficients: coefficients}, nil
}

// Degree returns the degree of the polynomial.
func (p *Polynomial[E]) Degree() int {
	return len(p.coefficients) - 1
}

// Evaluate computes p(x) with Horner's method.
func (p *Polynomial[E]) Evaluate(x E) E {
	result := p.coefficients[0]
	for _, c := range p.coefficients[1:] {
		result = c.Add(result.Mul(x))
	}
	return result
}
