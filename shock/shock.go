// Package shock applies parametric deformations to yield curves.
//
// A shock never mutates its input: Apply returns a new curve that evaluates
// the base curve plus a deformation delta(t) lazily on every query, rather
// than re-sampling a discrete grid. delta(t) is continuous in t for every
// shock kind, so no scenario introduces a jump between adjacent maturities.
package shock

import (
	"errors"
	"fmt"
	"strings"

	"github.com/meenmo/curvelab/curve"
)

// ErrUnsupportedShock is returned for an unknown shock kind or an orientation
// that does not apply to the requested kind.
var ErrUnsupportedShock = errors.New("unsupported shock")

// Kind enumerates the supported curve deformations.
type Kind int

const (
	// Parallel shifts every maturity by the same amount.
	Parallel Kind = iota
	// Steepen ramps the shift up with maturity: the long end of the grid
	// moves by the full magnitude, the short end by zero (or by the negated
	// magnitude with OrientationSymmetric).
	Steepen
	// Flatten is the mirror of Steepen: the short end moves by the full
	// magnitude and the shift converges to zero at the long end (or to the
	// negated magnitude with OrientationSymmetric).
	Flatten
	// Twist rotates the curve around a pivot tenor: one side shifts up, the
	// other down, with a linear transition through the pivot band.
	Twist
	// Butterfly moves the belly of the curve against the wings, with linear
	// transitions between the three zones.
	Butterfly
)

func (k Kind) String() string {
	switch k {
	case Parallel:
		return "parallel"
	case Steepen:
		return "steepen"
	case Flatten:
		return "flatten"
	case Twist:
		return "twist"
	case Butterfly:
		return "butterfly"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts names like "parallel" or "twist" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "parallel":
		return Parallel, nil
	case "steepen":
		return Steepen, nil
	case "flatten":
		return Flatten, nil
	case "twist":
		return Twist, nil
	case "butterfly":
		return Butterfly, nil
	default:
		return 0, fmt.Errorf("%w: kind %q", ErrUnsupportedShock, s)
	}
}

// Orientation refines the direction of kinds that have two mirror variants.
// The zero value selects the kind's default.
type Orientation int

const (
	// OrientationDefault is the kind-specific default: anchored for
	// Steepen/Flatten, short-up for Twist, belly-up for Butterfly.
	OrientationDefault Orientation = iota
	// OrientationShortUp twists the short end up and the long end down.
	OrientationShortUp
	// OrientationShortDown twists the short end down and the long end up.
	OrientationShortDown
	// OrientationBellyUp moves the belly up and the wings down.
	OrientationBellyUp
	// OrientationBellyDown moves the belly down and the wings up.
	OrientationBellyDown
	// OrientationAnchored pins the zero-moving end of a Steepen/Flatten at
	// exactly zero shift.
	OrientationAnchored
	// OrientationSymmetric lets a Steepen/Flatten move the far end by the
	// negated magnitude instead of pinning it at zero.
	OrientationSymmetric
)

// ParseOrientation converts names like "short-up" or "belly-down" to an
// Orientation. The empty string selects the default.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return OrientationDefault, nil
	case "short-up":
		return OrientationShortUp, nil
	case "short-down":
		return OrientationShortDown, nil
	case "belly-up":
		return OrientationBellyUp, nil
	case "belly-down":
		return OrientationBellyDown, nil
	case "anchored":
		return OrientationAnchored, nil
	case "symmetric":
		return OrientationSymmetric, nil
	default:
		return 0, fmt.Errorf("%w: orientation %q", ErrUnsupportedShock, s)
	}
}

// Spec describes one deformation. It is an immutable value consumed by Apply.
type Spec struct {
	Kind        Kind
	MagnitudeBP float64
	Orientation Orientation
}

// Policy constants fixing the twist and butterfly zone geometry. They are
// absolute tenors (years), held constant so scenario comparisons stay
// reproducible across runs.
const (
	// TwistPivotYears is the tenor at which a Twist changes sign.
	TwistPivotYears = 5.0
	// TwistBandYears is the half-width of the linear transition through the
	// pivot: the shift saturates at pivot +/- band.
	TwistBandYears = 2.0

	// Butterfly zone knots: wings are flat outside [WingShort, WingLong],
	// the belly is flat on [BellyStart, BellyEnd], with linear ramps between.
	ButterflyWingShortYears  = 2.0
	ButterflyBellyStartYears = 4.0
	ButterflyBellyEndYears   = 6.0
	ButterflyWingLongYears   = 10.0
)

// BPToDecimal converts basis points to a decimal yield shift (1bp = 0.0001).
func BPToDecimal(bp float64) float64 {
	return bp / 10000.0
}

// Apply returns a new curve y'(t) = y(t) + delta(t) for the given spec.
// The input curve is not modified.
func Apply(c curve.Curve, spec Spec) (curve.Curve, error) {
	delta, err := deltaFunc(c, spec)
	if err != nil {
		return nil, err
	}
	return &shocked{base: c, delta: delta}, nil
}

// shocked overlays a deformation on a base curve. Evaluation is lazy: every
// Yield query re-reads the base curve, so the base stays shared and unmutated.
type shocked struct {
	base  curve.Curve
	delta func(t float64) float64
}

func (s *shocked) Yield(t float64) float64 {
	return s.base.Yield(t) + s.delta(t)
}

func (s *shocked) Span() (float64, float64) {
	return s.base.Span()
}

func deltaFunc(c curve.Curve, spec Spec) (func(float64) float64, error) {
	mag := BPToDecimal(spec.MagnitudeBP)
	lo, hi := c.Span()

	switch spec.Kind {
	case Parallel:
		// Orientation is irrelevant for a parallel shift and is ignored.
		return func(float64) float64 { return mag }, nil

	case Steepen:
		floor, err := rampFloor(spec, mag)
		if err != nil {
			return nil, err
		}
		return func(t float64) float64 {
			w := ramp(t, lo, hi)
			return floor + (mag-floor)*w
		}, nil

	case Flatten:
		floor, err := rampFloor(spec, mag)
		if err != nil {
			return nil, err
		}
		return func(t float64) float64 {
			w := ramp(t, lo, hi)
			return mag + (floor-mag)*w
		}, nil

	case Twist:
		sign, err := twistSign(spec)
		if err != nil {
			return nil, err
		}
		return func(t float64) float64 {
			// +1 below the pivot band, -1 above it, linear through it.
			w := ramp(t, TwistPivotYears-TwistBandYears, TwistPivotYears+TwistBandYears)
			return sign * mag * (1 - 2*w)
		}, nil

	case Butterfly:
		sign, err := butterflySign(spec)
		if err != nil {
			return nil, err
		}
		return func(t float64) float64 {
			// -1 on the wings, +1 on the belly, linear ramps between zones.
			var w float64
			switch {
			case t < ButterflyBellyStartYears:
				w = 2*ramp(t, ButterflyWingShortYears, ButterflyBellyStartYears) - 1
			case t <= ButterflyBellyEndYears:
				w = 1
			default:
				w = 1 - 2*ramp(t, ButterflyBellyEndYears, ButterflyWingLongYears)
			}
			return sign * mag * w
		}, nil

	default:
		return nil, fmt.Errorf("%w: kind %v", ErrUnsupportedShock, spec.Kind)
	}
}

// ramp maps t to 0 at a, 1 at b, linearly between and clamped outside.
func ramp(t, a, b float64) float64 {
	if t <= a {
		return 0
	}
	if t >= b {
		return 1
	}
	return (t - a) / (b - a)
}

// rampFloor resolves the short-end shift of a Steepen (or the long-end shift
// of a Flatten): zero when anchored, the negated magnitude when symmetric.
func rampFloor(spec Spec, mag float64) (float64, error) {
	switch spec.Orientation {
	case OrientationDefault, OrientationAnchored:
		return 0, nil
	case OrientationSymmetric:
		return -mag, nil
	default:
		return 0, fmt.Errorf("%w: orientation %d does not apply to %v", ErrUnsupportedShock, spec.Orientation, spec.Kind)
	}
}

func twistSign(spec Spec) (float64, error) {
	switch spec.Orientation {
	case OrientationDefault, OrientationShortUp:
		return 1, nil
	case OrientationShortDown:
		return -1, nil
	default:
		return 0, fmt.Errorf("%w: orientation %d does not apply to twist", ErrUnsupportedShock, spec.Orientation)
	}
}

func butterflySign(spec Spec) (float64, error) {
	switch spec.Orientation {
	case OrientationDefault, OrientationBellyUp:
		return 1, nil
	case OrientationBellyDown:
		return -1, nil
	default:
		return 0, fmt.Errorf("%w: orientation %d does not apply to butterfly", ErrUnsupportedShock, spec.Orientation)
	}
}
