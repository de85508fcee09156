package curve

// monotoneCubic is a cubic Hermite interpolant with Fritsch-Butland node
// slopes. The slope limiter keeps the interpolant monotone on every interval
// where the data is monotone, so it cannot overshoot between grid points the
// way a natural cubic spline can. With only 2 points the node slopes equal
// the single secant and the interpolant is exactly the straight line.
type monotoneCubic struct {
	tenors []float64
	yields []float64
	slopes []float64
}

func newMonotoneCubic(tenors, yields []float64) *monotoneCubic {
	n := len(tenors)
	h := make([]float64, n-1) // interval widths
	d := make([]float64, n-1) // secant slopes
	for i := 0; i < n-1; i++ {
		h[i] = tenors[i+1] - tenors[i]
		d[i] = (yields[i+1] - yields[i]) / h[i]
	}

	m := make([]float64, n)
	m[0] = d[0]
	m[n-1] = d[n-2]
	for i := 1; i < n-1; i++ {
		if d[i-1]*d[i] <= 0 {
			// Local extremum or flat spot: a zero slope is the only choice
			// that keeps the interpolant monotone on both sides.
			m[i] = 0
			continue
		}
		// Weighted harmonic mean of the adjacent secants (Fritsch-Butland).
		w1 := 2*h[i] + h[i-1]
		w2 := h[i] + 2*h[i-1]
		m[i] = (w1 + w2) / (w1/d[i-1] + w2/d[i])
	}

	return &monotoneCubic{tenors: tenors, yields: yields, slopes: m}
}

func (c *monotoneCubic) Yield(t float64) float64 {
	n := len(c.tenors)
	t = clamp(t, c.tenors[0], c.tenors[n-1])

	i := bracket(c.tenors, t)
	t1, t2 := c.tenors[i], c.tenors[i+1]
	y1, y2 := c.yields[i], c.yields[i+1]
	m1, m2 := c.slopes[i], c.slopes[i+1]

	h := t2 - t1
	s := (t - t1) / h

	// Cubic Hermite basis.
	h00 := (1 + 2*s) * (1 - s) * (1 - s)
	h10 := s * (1 - s) * (1 - s)
	h01 := s * s * (3 - 2*s)
	h11 := s * s * (s - 1)

	return h00*y1 + h10*h*m1 + h01*y2 + h11*h*m2
}

func (c *monotoneCubic) Span() (float64, float64) {
	return c.tenors[0], c.tenors[len(c.tenors)-1]
}
