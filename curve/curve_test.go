package curve_test

import (
	"errors"
	"math"
	"testing"

	"github.com/meenmo/curvelab/curve"
)

func testGrid() []curve.TenorObservation {
	return []curve.TenorObservation{
		{Tenor: 1.0 / 12.0, Yield: 0.0410},
		{Tenor: 0.5, Yield: 0.0425},
		{Tenor: 1, Yield: 0.0400},
		{Tenor: 2, Yield: 0.0390},
		{Tenor: 5, Yield: 0.0415},
		{Tenor: 10, Yield: 0.0450},
		{Tenor: 30, Yield: 0.0480},
	}
}

func buildBoth(t *testing.T, grid []curve.TenorObservation) map[string]curve.Curve {
	t.Helper()
	out := make(map[string]curve.Curve, 2)
	for _, m := range []curve.Method{curve.Linear, curve.MonotoneCubic} {
		c, err := curve.Build(grid, m)
		if err != nil {
			t.Fatalf("Build(%v) error: %v", m, err)
		}
		out[m.String()] = c
	}
	return out
}

func TestBuild_PassesThroughGridPoints(t *testing.T) {
	t.Parallel()

	grid := testGrid()
	for name, c := range buildBoth(t, grid) {
		for _, obs := range grid {
			got := c.Yield(obs.Tenor)
			if math.Abs(got-obs.Yield) > 1e-12 {
				t.Errorf("%s: Yield(%v) = %v, want %v", name, obs.Tenor, got, obs.Yield)
			}
		}
	}
}

func TestBuild_FlatExtrapolation(t *testing.T) {
	t.Parallel()

	grid := testGrid()
	first := grid[0]
	last := grid[len(grid)-1]

	for name, c := range buildBoth(t, grid) {
		for _, tt := range []float64{1e-6, 0.01, first.Tenor / 2} {
			if got := c.Yield(tt); got != first.Yield {
				t.Errorf("%s: Yield(%v) = %v, want boundary %v", name, tt, got, first.Yield)
			}
		}
		for _, tt := range []float64{last.Tenor + 1, 50, 100} {
			if got := c.Yield(tt); got != last.Yield {
				t.Errorf("%s: Yield(%v) = %v, want boundary %v", name, tt, got, last.Yield)
			}
		}
	}
}

func TestBuild_FiniteEverywhere(t *testing.T) {
	t.Parallel()

	for name, c := range buildBoth(t, testGrid()) {
		for tt := 0.001; tt <= 60; tt += 0.117 {
			got := c.Yield(tt)
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Fatalf("%s: Yield(%v) is not finite: %v", name, tt, got)
			}
		}
	}
}

func TestMonotoneCubic_NoOvershoot(t *testing.T) {
	t.Parallel()

	// Strictly increasing yields: the interpolant must stay inside the
	// bracketing node values on every interval.
	grid := []curve.TenorObservation{
		{Tenor: 1, Yield: 0.030},
		{Tenor: 2, Yield: 0.032},
		{Tenor: 5, Yield: 0.045},
		{Tenor: 10, Yield: 0.046},
		{Tenor: 30, Yield: 0.050},
	}
	c, err := curve.Build(grid, curve.MonotoneCubic)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	for i := 0; i < len(grid)-1; i++ {
		lo, hi := grid[i], grid[i+1]
		for k := 1; k < 50; k++ {
			tt := lo.Tenor + (hi.Tenor-lo.Tenor)*float64(k)/50
			y := c.Yield(tt)
			if y < lo.Yield-1e-12 || y > hi.Yield+1e-12 {
				t.Fatalf("overshoot at t=%v: y=%v outside [%v, %v]", tt, y, lo.Yield, hi.Yield)
			}
		}
	}
}

func TestMonotoneCubic_TwoPointsMatchesLinear(t *testing.T) {
	t.Parallel()

	grid := []curve.TenorObservation{
		{Tenor: 1, Yield: 0.03},
		{Tenor: 10, Yield: 0.05},
	}
	lin, err := curve.Build(grid, curve.Linear)
	if err != nil {
		t.Fatalf("Build(linear) error: %v", err)
	}
	cub, err := curve.Build(grid, curve.MonotoneCubic)
	if err != nil {
		t.Fatalf("Build(cubic) error: %v", err)
	}

	for tt := 1.0; tt <= 10; tt += 0.25 {
		if diff := math.Abs(lin.Yield(tt) - cub.Yield(tt)); diff > 1e-12 {
			t.Fatalf("2-point cubic deviates from linear at t=%v by %v", tt, diff)
		}
	}
}

func TestBuild_InsufficientData(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		grid []curve.TenorObservation
	}{
		{"empty", nil},
		{"single point", []curve.TenorObservation{{Tenor: 5, Yield: 0.04}}},
		{"non-increasing", []curve.TenorObservation{{Tenor: 5, Yield: 0.04}, {Tenor: 5, Yield: 0.05}}},
		{"decreasing", []curve.TenorObservation{{Tenor: 5, Yield: 0.04}, {Tenor: 2, Yield: 0.05}}},
		{"zero tenor", []curve.TenorObservation{{Tenor: 0, Yield: 0.04}, {Tenor: 5, Yield: 0.05}}},
		{"nan yield", []curve.TenorObservation{{Tenor: 1, Yield: math.NaN()}, {Tenor: 5, Yield: 0.05}}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			for _, m := range []curve.Method{curve.Linear, curve.MonotoneCubic} {
				if _, err := curve.Build(tc.grid, m); !errors.Is(err, curve.ErrInsufficientData) {
					t.Errorf("Build(%v) error = %v, want ErrInsufficientData", m, err)
				}
			}
		})
	}
}

func TestParseMethod(t *testing.T) {
	t.Parallel()

	if m, err := curve.ParseMethod("linear"); err != nil || m != curve.Linear {
		t.Fatalf("ParseMethod(linear) = %v, %v", m, err)
	}
	if m, err := curve.ParseMethod(" Cubic "); err != nil || m != curve.MonotoneCubic {
		t.Fatalf("ParseMethod(cubic) = %v, %v", m, err)
	}
	if _, err := curve.ParseMethod("quadratic"); !errors.Is(err, curve.ErrUnknownMethod) {
		t.Fatalf("ParseMethod(quadratic) error = %v, want ErrUnknownMethod", err)
	}
}

func TestCurve_Span(t *testing.T) {
	t.Parallel()

	for name, c := range buildBoth(t, testGrid()) {
		min, max := c.Span()
		if min != 1.0/12.0 || max != 30 {
			t.Errorf("%s: Span() = %v, %v", name, min, max)
		}
	}
}
