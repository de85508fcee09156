package marketdata

import (
	"fmt"
	"sort"
	"time"
)

// History is an immutable, date-sorted table of snapshots. Gaps in a tenor's
// series are forward-filled from the most recent prior observation at
// construction time, matching how daily Treasury series carry the last print
// over holidays. A tenor that has never printed stays absent.
type History struct {
	snaps []Snapshot // sorted by date ascending, forward-filled
}

// NewHistory builds a history from snapshots in any order. Duplicate dates
// are rejected.
func NewHistory(snaps []Snapshot) (*History, error) {
	if len(snaps) == 0 {
		return nil, fmt.Errorf("NewHistory: %w", ErrNoData)
	}

	sorted := make([]Snapshot, len(snaps))
	copy(sorted, snaps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].date.Before(sorted[j].date) })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].date.Equal(sorted[i-1].date) {
			return nil, fmt.Errorf("NewHistory: duplicate date %s", sorted[i].date.Format("2006-01-02"))
		}
		sorted[i] = sorted[i].merge(sorted[i-1])
	}

	return &History{snaps: sorted}, nil
}

// Dates returns the observation dates in ascending order.
func (h *History) Dates() []time.Time {
	out := make([]time.Time, len(h.snaps))
	for i, s := range h.snaps {
		out[i] = s.date
	}
	return out
}

// Snapshots returns the forward-filled snapshots in date order.
func (h *History) Snapshots() []Snapshot {
	out := make([]Snapshot, len(h.snaps))
	copy(out, h.snaps)
	return out
}

// AsOf returns the snapshot for the given date, or the nearest previous one
// when the exact date is not present. Dates before the first observation fail
// with ErrNoData.
func (h *History) AsOf(date time.Time) (Snapshot, error) {
	idx := sort.Search(len(h.snaps), func(i int) bool {
		return h.snaps[i].date.After(date)
	})
	if idx == 0 {
		return Snapshot{}, fmt.Errorf("AsOf: %w before %s", ErrNoData, h.snaps[0].date.Format("2006-01-02"))
	}
	return h.snaps[idx-1], nil
}

// Latest returns the most recent snapshot.
func (h *History) Latest() Snapshot {
	return h.snaps[len(h.snaps)-1]
}
