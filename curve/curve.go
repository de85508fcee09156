// Package curve builds continuous yield functions from discrete tenor
// observations.
//
// Rates are decimals (0.042 = 4.2%), tenors are year fractions. Outside the
// observed tenor range both interpolation methods extrapolate flat: the
// boundary yield is held constant. Shocked/unshocked comparisons rely on this
// behaviour being identical across methods, so it must not change.
package curve

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	// ErrInsufficientData is returned when a tenor grid cannot support
	// interpolation (fewer than 2 points, or malformed tenors/yields).
	ErrInsufficientData = errors.New("insufficient curve data")

	// ErrUnknownMethod is returned for an unrecognised interpolation method.
	ErrUnknownMethod = errors.New("unknown interpolation method")
)

// TenorObservation is a single point on the yield curve grid.
type TenorObservation struct {
	Tenor float64 // years, must be positive
	Yield float64 // decimal (0.045 == 4.5%)
}

// Curve is a continuous yield function t -> y(t) for t > 0.
//
// Implementations are immutable value objects; deforming a curve produces a
// new Curve and never mutates the original.
type Curve interface {
	// Yield returns the interpolated yield at maturity t in years.
	Yield(t float64) float64

	// Span returns the first and last grid tenors. Queries outside the span
	// return the boundary yield unchanged.
	Span() (min, max float64)
}

// Method selects the interpolation strategy used by Build.
type Method int

const (
	// Linear is piecewise-linear interpolation between bracketing grid points.
	Linear Method = iota
	// MonotoneCubic is a monotone cubic Hermite interpolant (Fritsch-Butland
	// slopes). It does not overshoot between grid points and collapses to
	// linear behaviour on a 2-point grid.
	MonotoneCubic
)

func (m Method) String() string {
	switch m {
	case Linear:
		return "linear"
	case MonotoneCubic:
		return "cubic"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod converts method names like "linear" or "cubic" to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return Linear, nil
	case "cubic", "monotone-cubic", "spline":
		return MonotoneCubic, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Build constructs a Curve from a tenor grid using the given method.
//
// The grid must hold at least 2 observations with strictly increasing,
// positive tenors and finite yields; otherwise ErrInsufficientData is
// returned.
func Build(grid []TenorObservation, method Method) (Curve, error) {
	tenors, yields, err := validate(grid)
	if err != nil {
		return nil, err
	}
	switch method {
	case Linear:
		return &linearCurve{tenors: tenors, yields: yields}, nil
	case MonotoneCubic:
		return newMonotoneCubic(tenors, yields), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, method)
	}
}

func validate(grid []TenorObservation) (tenors, yields []float64, err error) {
	if len(grid) < 2 {
		return nil, nil, fmt.Errorf("%w: need at least 2 observations, got %d", ErrInsufficientData, len(grid))
	}
	tenors = make([]float64, len(grid))
	yields = make([]float64, len(grid))
	prev := 0.0
	for i, obs := range grid {
		if obs.Tenor <= prev {
			return nil, nil, fmt.Errorf("%w: tenors must be positive and strictly increasing (index %d: %v)", ErrInsufficientData, i, obs.Tenor)
		}
		if math.IsNaN(obs.Yield) || math.IsInf(obs.Yield, 0) {
			return nil, nil, fmt.Errorf("%w: yield at tenor %v is not finite", ErrInsufficientData, obs.Tenor)
		}
		tenors[i] = obs.Tenor
		yields[i] = obs.Yield
		prev = obs.Tenor
	}
	return tenors, yields, nil
}

// bracket returns the left index i such that tenors[i] <= t <= tenors[i+1],
// clamped to the nearest boundary interval when t is outside the grid.
// Callers clamp t before interpolating, so the clamp here only matters for
// picking a valid interval.
func bracket(tenors []float64, t float64) int {
	idx := sort.SearchFloat64s(tenors, t)
	if idx <= 0 {
		return 0
	}
	if idx >= len(tenors) {
		return len(tenors) - 2
	}
	return idx - 1
}

func clamp(t, lo, hi float64) float64 {
	if t < lo {
		return lo
	}
	if t > hi {
		return hi
	}
	return t
}
