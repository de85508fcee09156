// Package fred retrieves daily Treasury par yields from the St. Louis Fed
// fredgraph CSV endpoint, one series per tenor.
package fred

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/meenmo/curvelab/marketdata"
)

// SeriesByTenor maps each standard tenor to its FRED series ID.
var SeriesByTenor = map[marketdata.Tenor]string{
	marketdata.Tenor1M:  "DGS1MO",
	marketdata.Tenor3M:  "DGS3MO",
	marketdata.Tenor6M:  "DGS6MO",
	marketdata.Tenor1Y:  "DGS1",
	marketdata.Tenor2Y:  "DGS2",
	marketdata.Tenor3Y:  "DGS3",
	marketdata.Tenor5Y:  "DGS5",
	marketdata.Tenor7Y:  "DGS7",
	marketdata.Tenor10Y: "DGS10",
	marketdata.Tenor20Y: "DGS20",
	marketdata.Tenor30Y: "DGS30",
}

// ErrBadFormat is returned when a series response is not the expected
// two-column CSV.
var ErrBadFormat = errors.New("unexpected CSV format")

const defaultBaseURL = "https://fred.stlouisfed.org/graph/fredgraph.csv"

// Config holds the client settings.
type Config struct {
	// BaseURL is the fredgraph CSV endpoint. Empty selects the production
	// endpoint.
	BaseURL string
	// Start drops observations before this date. Zero keeps everything.
	Start time.Time
	// Timeout bounds each series request. Zero selects 30s.
	Timeout time.Duration
}

// Client fetches FRED series.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a client with defaults applied.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// Observation is one dated value of a series, in percent as published.
type Observation struct {
	Date  time.Time
	Value float64
}

// FetchSeries downloads one series and parses its observations. Missing
// prints (".") are skipped; the date column may be named DATE,
// observation_date or date depending on the endpoint version.
func (c *Client) FetchSeries(ctx context.Context, seriesID string) ([]Observation, error) {
	u := fmt.Sprintf("%s?id=%s", c.cfg.BaseURL, url.QueryEscape(seriesID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("FetchSeries %s: %w", seriesID, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("FetchSeries %s: %w", seriesID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("FetchSeries %s: unexpected status %s", seriesID, resp.Status)
	}

	obs, err := parseSeriesCSV(resp.Body, seriesID)
	if err != nil {
		return nil, fmt.Errorf("FetchSeries %s: %w", seriesID, err)
	}
	return obs, nil
}

func parseSeriesCSV(r io.Reader, seriesID string) ([]Observation, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}

	dateCol, valueCol := -1, -1
	for i, name := range header {
		switch {
		case name == "DATE" || name == "observation_date" || name == "date":
			dateCol = i
		case strings.EqualFold(name, seriesID):
			valueCol = i
		}
	}
	if dateCol < 0 || valueCol < 0 {
		return nil, fmt.Errorf("%w: columns %v", ErrBadFormat, header)
	}

	var out []Observation
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
		}
		if len(record) <= dateCol || len(record) <= valueCol {
			continue
		}

		date, err := time.Parse("2006-01-02", record[dateCol])
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", ErrBadFormat, record[dateCol])
		}

		raw := strings.TrimSpace(record[valueCol])
		if raw == "" || raw == "." {
			// FRED publishes "." on days a series did not print.
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad value %q on %s", ErrBadFormat, raw, record[dateCol])
		}
		out = append(out, Observation{Date: date, Value: value})
	}
	return out, nil
}

// FetchHistory downloads every tenor series, converts percent to decimal,
// applies the start filter and assembles the snapshots into a history.
// A series that fails to download fails the whole fetch; partial curves are
// worse than no data.
func (c *Client) FetchHistory(ctx context.Context) (*marketdata.History, error) {
	byDate := make(map[time.Time]map[marketdata.Tenor]float64)

	for _, tenor := range marketdata.StandardTenors {
		seriesID := SeriesByTenor[tenor]
		obs, err := c.FetchSeries(ctx, seriesID)
		if err != nil {
			return nil, fmt.Errorf("FetchHistory: %w", err)
		}
		log.Debug().Str("series", seriesID).Int("observations", len(obs)).Msg("fetched FRED series")

		for _, o := range obs {
			if !c.cfg.Start.IsZero() && o.Date.Before(c.cfg.Start) {
				continue
			}
			row, ok := byDate[o.Date]
			if !ok {
				row = make(map[marketdata.Tenor]float64, len(marketdata.StandardTenors))
				byDate[o.Date] = row
			}
			row[tenor] = o.Value / 100.0
		}
	}

	if len(byDate) == 0 {
		return nil, fmt.Errorf("FetchHistory: %w", marketdata.ErrNoData)
	}

	snaps := make([]marketdata.Snapshot, 0, len(byDate))
	for date, yields := range byDate {
		snaps = append(snaps, marketdata.NewSnapshot(date, yields))
	}

	h, err := marketdata.NewHistory(snaps)
	if err != nil {
		return nil, fmt.Errorf("FetchHistory: %w", err)
	}
	log.Info().Int("dates", len(snaps)).Msg("assembled yield history")
	return h, nil
}
