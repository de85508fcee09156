// Package engine exposes the pricing engine to a presentation layer as three
// pure query operations: build a curve for a date, deform a curve, and
// compute risk metrics for a curve and bond.
//
// The engine holds an immutable market history snapshot and the risk
// tunables, nothing else. Every query is a pure function of its explicit
// inputs, so concurrent evaluations of independent parameter combinations
// are safe by construction.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/curvelab/bond"
	"github.com/meenmo/curvelab/curve"
	"github.com/meenmo/curvelab/marketdata"
	"github.com/meenmo/curvelab/risk"
	"github.com/meenmo/curvelab/shock"
)

// ErrNilHistory is returned when the engine is constructed without data.
var ErrNilHistory = errors.New("nil history")

// Engine evaluates curves, shocks and bond risk against one history snapshot.
type Engine struct {
	history *marketdata.History
	params  risk.Params
}

// New creates an engine over the given history. Zero-value params select the
// defaults.
func New(history *marketdata.History, params risk.Params) (*Engine, error) {
	if history == nil {
		return nil, fmt.Errorf("New: %w", ErrNilHistory)
	}
	if params.BumpBP == 0 {
		params.BumpBP = risk.DefaultParams.BumpBP
	}
	return &Engine{history: history, params: params}, nil
}

// CurveForDate builds the base curve for a date using the given interpolation
// method. Dates between observations resolve to the nearest previous
// snapshot.
func (e *Engine) CurveForDate(date time.Time, method curve.Method) (curve.Curve, error) {
	snap, err := e.history.AsOf(date)
	if err != nil {
		return nil, err
	}
	grid, err := snap.Observations()
	if err != nil {
		return nil, err
	}
	return curve.Build(grid, method)
}

// ApplyShock returns the deformed curve for a shock spec. The input curve is
// not modified.
func (e *Engine) ApplyShock(c curve.Curve, spec shock.Spec) (curve.Curve, error) {
	return shock.Apply(c, spec)
}

// Risk computes price, DV01, modified duration and convexity for the bond
// priced off the given curve, using the engine's bump size.
func (e *Engine) Risk(c curve.Curve, spec bond.Spec) (risk.Metrics, error) {
	return risk.Compute(c, spec, e.params)
}

// Dates returns the observation dates available to CurveForDate.
func (e *Engine) Dates() []time.Time {
	return e.history.Dates()
}
