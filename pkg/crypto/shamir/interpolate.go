package shamir

// InterpolateAtZero returns f(0) for the lowest degree polynomial f passing
// through points, using the barycentric form of Lagrange interpolation.
//
// Every X must be nonzero and distinct; otherwise the field's division panics.
// With fewer points than the original polynomial needs, the result is the
// intercept of some other polynomial through the same points. No error is
// reported in that case.
func InterpolateAtZero[E Element[E]](field Field[E], points []Point[E]) E {
	weights := make([]E, len(points))
	for j, pj := range points {
		w := field.One()
		for m, pm := range points {
			if j == m {
				continue
			}
			w = w.Mul(field.One().Div(pj.X.Sub(pm.X)))
		}
		weights[j] = w
	}

	numerator, denominator := field.Zero(), field.Zero()
	for j, p := range points {
		// (0 - x_j) stands in for (x - x_j) at the target x = 0
		term := weights[j].Div(field.Zero().Sub(p.X))
		numerator = numerator.Add(term.Mul(p.Y))
		denominator = denominator.Add(term)
	}

	return numerator.Div(denominator)
}
