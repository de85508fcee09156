package marketdata

import (
	"fmt"
	"sort"
	"time"

	"github.com/meenmo/curvelab/curve"
)

// Snapshot is the yield observations for one date. Yields are decimals
// (0.045 == 4.5%). Tenors that were not observed are absent, never zero.
//
// Snapshots are immutable value objects: the input map is copied on
// construction and never exposed.
type Snapshot struct {
	date   time.Time
	yields map[Tenor]float64
}

// NewSnapshot builds a snapshot from per-tenor decimal yields.
func NewSnapshot(date time.Time, yields map[Tenor]float64) Snapshot {
	copied := make(map[Tenor]float64, len(yields))
	for k, v := range yields {
		copied[k] = v
	}
	return Snapshot{date: date, yields: copied}
}

func (s Snapshot) Date() time.Time {
	return s.date
}

// Yield reports the observed yield for a tenor and whether it is present.
func (s Snapshot) Yield(t Tenor) (float64, bool) {
	y, ok := s.yields[t]
	return y, ok
}

// Missing lists the standard tenors with no observation, in maturity order.
func (s Snapshot) Missing() []Tenor {
	var out []Tenor
	for _, t := range StandardTenors {
		if _, ok := s.yields[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// Tenors lists the present tenors sorted by maturity.
func (s Snapshot) Tenors() []Tenor {
	out := make([]Tenor, 0, len(s.yields))
	for t := range s.yields {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		yi, _ := out[i].Years()
		yj, _ := out[j].Years()
		return yi < yj
	})
	return out
}

// Observations converts the present tenors into a curve grid sorted by
// maturity. Tenors that fail to parse are rejected rather than dropped.
func (s Snapshot) Observations() ([]curve.TenorObservation, error) {
	tenors := s.Tenors()
	grid := make([]curve.TenorObservation, 0, len(tenors))
	for _, t := range tenors {
		years, err := t.Years()
		if err != nil {
			return nil, fmt.Errorf("Observations: %w", err)
		}
		grid = append(grid, curve.TenorObservation{Tenor: years, Yield: s.yields[t]})
	}
	return grid, nil
}

// merge returns a copy of s with absent tenors filled from prev. Tenors
// absent in both stay absent.
func (s Snapshot) merge(prev Snapshot) Snapshot {
	filled := make(map[Tenor]float64, len(prev.yields)+len(s.yields))
	for k, v := range prev.yields {
		filled[k] = v
	}
	for k, v := range s.yields {
		filled[k] = v
	}
	return Snapshot{date: s.date, yields: filled}
}
