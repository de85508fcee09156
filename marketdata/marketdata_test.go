package marketdata_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/meenmo/curvelab/marketdata"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseTenor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want float64
	}{
		{"1M", 1.0 / 12.0},
		{"3M", 0.25},
		{"6M", 0.5},
		{"1Y", 1},
		{"30Y", 30},
		{"91D", 91.0 / 365.0},
		{"2W", 14.0 / 365.0},
		{" 10y ", 10},
	}
	for _, tc := range cases {
		got, err := marketdata.ParseTenor(tc.in)
		if err != nil {
			t.Errorf("ParseTenor(%q) error: %v", tc.in, err)
			continue
		}
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("ParseTenor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "Y", "10", "-1Y", "5Q"} {
		if _, err := marketdata.ParseTenor(bad); !errors.Is(err, marketdata.ErrUnknownTenor) {
			t.Errorf("ParseTenor(%q) error = %v, want ErrUnknownTenor", bad, err)
		}
	}
}

func TestStandardTenors_Ordered(t *testing.T) {
	t.Parallel()

	prev := 0.0
	for _, tenor := range marketdata.StandardTenors {
		years, err := tenor.Years()
		if err != nil {
			t.Fatalf("%s: %v", tenor, err)
		}
		if years <= prev {
			t.Fatalf("%s out of order: %v after %v", tenor, years, prev)
		}
		prev = years
	}
}

func TestSnapshot_MissingAndObservations(t *testing.T) {
	t.Parallel()

	snap := marketdata.NewSnapshot(day(2026, 8, 21), map[marketdata.Tenor]float64{
		marketdata.Tenor1Y:  0.040,
		marketdata.Tenor10Y: 0.050,
		marketdata.Tenor5Y:  0.045,
	})

	missing := snap.Missing()
	if len(missing) != len(marketdata.StandardTenors)-3 {
		t.Fatalf("Missing() = %v", missing)
	}
	for _, m := range missing {
		if m == marketdata.Tenor1Y || m == marketdata.Tenor5Y || m == marketdata.Tenor10Y {
			t.Fatalf("present tenor %s reported missing", m)
		}
	}

	grid, err := snap.Observations()
	if err != nil {
		t.Fatalf("Observations error: %v", err)
	}
	if len(grid) != 3 {
		t.Fatalf("expected 3 observations, got %d", len(grid))
	}
	// Sorted by maturity, absent tenors skipped.
	if grid[0].Tenor != 1 || grid[1].Tenor != 5 || grid[2].Tenor != 10 {
		t.Fatalf("unexpected grid order: %+v", grid)
	}
	if grid[1].Yield != 0.045 {
		t.Fatalf("grid[1].Yield = %v", grid[1].Yield)
	}
}

func TestSnapshot_Immutable(t *testing.T) {
	t.Parallel()

	in := map[marketdata.Tenor]float64{marketdata.Tenor5Y: 0.045}
	snap := marketdata.NewSnapshot(day(2026, 8, 21), in)
	in[marketdata.Tenor5Y] = 0.999

	if y, _ := snap.Yield(marketdata.Tenor5Y); y != 0.045 {
		t.Fatalf("snapshot shares caller's map: %v", y)
	}
}

func TestHistory_ForwardFill(t *testing.T) {
	t.Parallel()

	h, err := marketdata.NewHistory([]marketdata.Snapshot{
		marketdata.NewSnapshot(day(2026, 8, 19), map[marketdata.Tenor]float64{
			marketdata.Tenor1Y:  0.040,
			marketdata.Tenor10Y: 0.050,
		}),
		marketdata.NewSnapshot(day(2026, 8, 20), map[marketdata.Tenor]float64{
			marketdata.Tenor1Y: 0.041,
			// 10Y did not print; must carry 0.050 forward.
		}),
	})
	if err != nil {
		t.Fatalf("NewHistory error: %v", err)
	}

	snap, err := h.AsOf(day(2026, 8, 20))
	if err != nil {
		t.Fatalf("AsOf error: %v", err)
	}
	if y, ok := snap.Yield(marketdata.Tenor1Y); !ok || y != 0.041 {
		t.Fatalf("1Y = %v, %v", y, ok)
	}
	if y, ok := snap.Yield(marketdata.Tenor10Y); !ok || y != 0.050 {
		t.Fatalf("10Y not forward-filled: %v, %v", y, ok)
	}
	// Never-observed tenors stay absent even after filling.
	if _, ok := snap.Yield(marketdata.Tenor30Y); ok {
		t.Fatal("30Y should be absent")
	}
}

func TestHistory_AsOfPadsToPreviousDate(t *testing.T) {
	t.Parallel()

	h, err := marketdata.NewHistory([]marketdata.Snapshot{
		marketdata.NewSnapshot(day(2026, 8, 21), map[marketdata.Tenor]float64{marketdata.Tenor5Y: 0.045}),
		marketdata.NewSnapshot(day(2026, 8, 18), map[marketdata.Tenor]float64{marketdata.Tenor5Y: 0.044}),
	})
	if err != nil {
		t.Fatalf("NewHistory error: %v", err)
	}

	// Weekend date between observations resolves to the prior business day.
	snap, err := h.AsOf(day(2026, 8, 19))
	if err != nil {
		t.Fatalf("AsOf error: %v", err)
	}
	if !snap.Date().Equal(day(2026, 8, 18)) {
		t.Fatalf("AsOf padded to %s", snap.Date())
	}

	if _, err := h.AsOf(day(2026, 8, 17)); !errors.Is(err, marketdata.ErrNoData) {
		t.Fatalf("AsOf before history error = %v, want ErrNoData", err)
	}

	if !h.Latest().Date().Equal(day(2026, 8, 21)) {
		t.Fatalf("Latest = %s", h.Latest().Date())
	}
}

func TestHistory_RejectsDuplicateDates(t *testing.T) {
	t.Parallel()

	_, err := marketdata.NewHistory([]marketdata.Snapshot{
		marketdata.NewSnapshot(day(2026, 8, 21), nil),
		marketdata.NewSnapshot(day(2026, 8, 21), nil),
	})
	if err == nil {
		t.Fatal("expected duplicate date error")
	}
}

func TestHistory_Empty(t *testing.T) {
	t.Parallel()

	if _, err := marketdata.NewHistory(nil); !errors.Is(err, marketdata.ErrNoData) {
		t.Fatalf("NewHistory(nil) error = %v, want ErrNoData", err)
	}
}
