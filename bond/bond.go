// Package bond generates fixed-coupon bond cash flows and prices them off a
// yield curve.
//
// Pricing discounts each cash flow at the curve yield for that flow's exact
// time to payment, with annual compounding regardless of the bond's payment
// frequency. Curve yields are also used directly as discount rates (no zero
// bootstrap). Both are deliberate simplifications carried over from the
// tool's stated pricing policy; changing them changes the tool's semantics.
package bond

import (
	"errors"
	"fmt"
	"math"

	"github.com/meenmo/curvelab/curve"
)

// ErrInvalidSpec is returned for a bond specification that cannot produce a
// valid cash flow schedule.
var ErrInvalidSpec = errors.New("invalid bond spec")

// DefaultFaceValue is used when Spec.FaceValue is left zero.
const DefaultFaceValue = 100.0

// Spec describes a fixed-coupon bond. It is an immutable value owned by the
// caller for the duration of one computation.
type Spec struct {
	MaturityYears float64
	CouponRate    float64 // annual rate, decimal (0.05 == 5%)
	Frequency     int     // coupon payments per year
	FaceValue     float64 // principal; zero means DefaultFaceValue
}

// withDefaults returns the spec with the face value default applied.
func (s Spec) withDefaults() Spec {
	if s.FaceValue == 0 {
		s.FaceValue = DefaultFaceValue
	}
	return s
}

// Validate checks the spec against the schedule invariants.
func (s Spec) Validate() error {
	if s.MaturityYears <= 0 {
		return fmt.Errorf("%w: MaturityYears must be positive, got %v", ErrInvalidSpec, s.MaturityYears)
	}
	if s.Frequency <= 0 {
		return fmt.Errorf("%w: Frequency must be positive, got %d", ErrInvalidSpec, s.Frequency)
	}
	if s.CouponRate < 0 {
		return fmt.Errorf("%w: CouponRate must not be negative, got %v", ErrInvalidSpec, s.CouponRate)
	}
	if s.FaceValue < 0 {
		return fmt.Errorf("%w: FaceValue must not be negative, got %v", ErrInvalidSpec, s.FaceValue)
	}
	return nil
}

// Cashflow is a single dated cash payment, with time expressed in years from
// valuation rather than as a calendar date.
type Cashflow struct {
	TimeYears float64
	Coupon    float64
	Principal float64
}

func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}

// Cashflows derives the payment schedule from a spec: CouponRate/Frequency x
// FaceValue at each period, plus FaceValue at the final period.
//
// MaturityYears x Frequency is rounded to the nearest whole number of periods
// (half away from zero). A product that rounds below one period fails with
// ErrInvalidSpec.
func Cashflows(spec Spec) ([]Cashflow, error) {
	spec = spec.withDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	n := int(math.Round(spec.MaturityYears * float64(spec.Frequency)))
	if n < 1 {
		return nil, fmt.Errorf("%w: MaturityYears x Frequency rounds to zero periods", ErrInvalidSpec)
	}

	coupon := spec.FaceValue * spec.CouponRate / float64(spec.Frequency)
	flows := make([]Cashflow, n)
	for i := 0; i < n; i++ {
		flows[i] = Cashflow{
			TimeYears: float64(i+1) / float64(spec.Frequency),
			Coupon:    coupon,
		}
	}
	flows[n-1].Principal = spec.FaceValue
	return flows, nil
}

// Price computes the present value of the bond off the curve:
//
//	price = sum over flows of amount / (1 + y(t))^t
//
// Pure function of its inputs; the curve is only read.
func Price(c curve.Curve, spec Spec) (float64, error) {
	if c == nil {
		return 0, fmt.Errorf("Price: %w: nil curve", curve.ErrInsufficientData)
	}
	flows, err := Cashflows(spec)
	if err != nil {
		return 0, err
	}

	price := 0.0
	for _, cf := range flows {
		y := c.Yield(cf.TimeYears)
		price += cf.Amount() / math.Pow(1+y, cf.TimeYears)
	}
	return price, nil
}
