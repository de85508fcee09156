// Package risk computes finite-difference sensitivities of a bond priced off
// a yield curve.
package risk

import (
	"errors"
	"fmt"
	"math"

	"github.com/meenmo/curvelab/bond"
	"github.com/meenmo/curvelab/curve"
	"github.com/meenmo/curvelab/shock"
)

// ErrDegenerateCurve is returned when the base price is zero or non-finite,
// which would make the normalised metrics meaningless.
var ErrDegenerateCurve = errors.New("degenerate base price")

// Metrics holds the price and sensitivities for one curve + bond pair. They
// are recomputed on every call and never cached across different inputs.
type Metrics struct {
	// Price is the base present value.
	Price float64
	// DV01 is the price change per 1bp parallel move, positive when a yield
	// increase loses money.
	DV01 float64
	// ModifiedDuration is the percentage price sensitivity per unit yield
	// change, normalised by price.
	ModifiedDuration float64
	// Convexity is the second-order sensitivity capturing the curvature of
	// the price-yield relationship.
	Convexity float64
}

// Params holds the finite-difference tunables.
type Params struct {
	// BumpBP is the parallel bump size in basis points for the central
	// differences. It must be small enough to approximate the derivative but
	// large enough to avoid floating-point cancellation. Zero selects
	// DefaultParams.BumpBP.
	BumpBP float64
}

// DefaultParams provides the production default bump size.
var DefaultParams = Params{BumpBP: 1.0}

// Compute reprices the bond under parallel bumps of +/- BumpBP and derives
// the metrics by central differences:
//
//	dv01      = (P_down - P_up) / (2 x BumpBP)
//	duration  = (P_down - P_up) / (2 x P0 x dy)
//	convexity = (P_up + P_down - 2 x P0) / (P0 x dy^2)
//
// where dy = BumpBP/10000. DV01 is always normalised to a 1bp move so a
// non-default bump size changes the accuracy of the estimate, not its units.
// The input curve is read only.
func Compute(c curve.Curve, spec bond.Spec, p Params) (Metrics, error) {
	if p.BumpBP == 0 {
		p.BumpBP = DefaultParams.BumpBP
	}
	if p.BumpBP < 0 {
		return Metrics{}, fmt.Errorf("Compute: BumpBP must be positive, got %v", p.BumpBP)
	}

	price0, err := bond.Price(c, spec)
	if err != nil {
		return Metrics{}, err
	}
	if price0 == 0 || math.IsNaN(price0) || math.IsInf(price0, 0) {
		return Metrics{}, fmt.Errorf("Compute: %w: base price %v", ErrDegenerateCurve, price0)
	}

	up, err := shock.Apply(c, shock.Spec{Kind: shock.Parallel, MagnitudeBP: p.BumpBP})
	if err != nil {
		return Metrics{}, err
	}
	down, err := shock.Apply(c, shock.Spec{Kind: shock.Parallel, MagnitudeBP: -p.BumpBP})
	if err != nil {
		return Metrics{}, err
	}

	priceUp, err := bond.Price(up, spec)
	if err != nil {
		return Metrics{}, err
	}
	priceDown, err := bond.Price(down, spec)
	if err != nil {
		return Metrics{}, err
	}

	dy := shock.BPToDecimal(p.BumpBP)
	return Metrics{
		Price:            price0,
		DV01:             (priceDown - priceUp) / (2 * p.BumpBP),
		ModifiedDuration: (priceDown - priceUp) / (2 * price0 * dy),
		Convexity:        (priceUp + priceDown - 2*price0) / (price0 * dy * dy),
	}, nil
}
