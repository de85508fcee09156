// Package marketdata holds dated yield-curve snapshots for the fixed
// Treasury tenor set and the history table the engine reads them from.
//
// A snapshot never interpolates: a tenor either has an observed (or
// forward-filled) yield or is explicitly absent. Filling gaps across tenors
// is the curve builder's job, and only for tenors that are actually present.
package marketdata

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownTenor is returned for a tenor label that cannot be parsed.
	ErrUnknownTenor = errors.New("unknown tenor")

	// ErrMissingTenor is returned when a required tenor has no observation.
	ErrMissingTenor = errors.New("missing tenor observation")

	// ErrNoData is returned when a history lookup finds no usable snapshot.
	ErrNoData = errors.New("no market data")
)

// Tenor is a standard maturity label such as "3M" or "10Y".
type Tenor string

// The fixed tenor set observed for each date.
const (
	Tenor1M  Tenor = "1M"
	Tenor3M  Tenor = "3M"
	Tenor6M  Tenor = "6M"
	Tenor1Y  Tenor = "1Y"
	Tenor2Y  Tenor = "2Y"
	Tenor3Y  Tenor = "3Y"
	Tenor5Y  Tenor = "5Y"
	Tenor7Y  Tenor = "7Y"
	Tenor10Y Tenor = "10Y"
	Tenor20Y Tenor = "20Y"
	Tenor30Y Tenor = "30Y"
)

// StandardTenors lists the supported tenor set in maturity order.
var StandardTenors = []Tenor{
	Tenor1M, Tenor3M, Tenor6M,
	Tenor1Y, Tenor2Y, Tenor3Y, Tenor5Y, Tenor7Y, Tenor10Y, Tenor20Y, Tenor30Y,
}

// ParseTenor converts labels like "1M", "10Y", "91D" to a year fraction.
func ParseTenor(s string) (float64, error) {
	label := strings.TrimSpace(strings.ToUpper(s))
	if len(label) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTenor, s)
	}
	n, err := strconv.Atoi(label[:len(label)-1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTenor, s)
	}
	switch label[len(label)-1] {
	case 'D':
		return float64(n) / 365.0, nil
	case 'W':
		return float64(n) * 7.0 / 365.0, nil
	case 'M':
		return float64(n) / 12.0, nil
	case 'Y':
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTenor, s)
	}
}

// Years returns the tenor's maturity as a year fraction.
func (t Tenor) Years() (float64, error) {
	return ParseTenor(string(t))
}
