package curve

// linearCurve interpolates linearly between bracketing grid points and holds
// the boundary yield flat outside the grid.
type linearCurve struct {
	tenors []float64
	yields []float64
}

func (c *linearCurve) Yield(t float64) float64 {
	n := len(c.tenors)
	t = clamp(t, c.tenors[0], c.tenors[n-1])

	i := bracket(c.tenors, t)
	t1, t2 := c.tenors[i], c.tenors[i+1]
	y1, y2 := c.yields[i], c.yields[i+1]

	w := (t - t1) / (t2 - t1)
	return (1-w)*y1 + w*y2
}

func (c *linearCurve) Span() (float64, float64) {
	return c.tenors[0], c.tenors[len(c.tenors)-1]
}
