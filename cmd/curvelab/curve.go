package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meenmo/curvelab/config"
	"github.com/meenmo/curvelab/curve"
	"github.com/meenmo/curvelab/engine"
	"github.com/meenmo/curvelab/marketdata"
	"github.com/meenmo/curvelab/marketdata/store"
	"github.com/meenmo/curvelab/risk"
	"github.com/meenmo/curvelab/shock"
)

func newCurveCmd(cfgPath *string) *cobra.Command {
	var (
		dateStr     string
		methodStr   string
		shockStr    string
		magnitudeBP float64
		orientStr   string
	)

	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Print the yield curve for a date, optionally under a shock",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}

			eng, date, method, err := engineForDate(cmd.Context(), cfg, dateStr, methodStr)
			if err != nil {
				return err
			}

			base, err := eng.CurveForDate(date, method)
			if err != nil {
				return err
			}

			shocked := base
			if shockStr != "" {
				spec, err := shockSpecFromFlags(shockStr, magnitudeBP, orientStr)
				if err != nil {
					return err
				}
				if shocked, err = eng.ApplyShock(base, spec); err != nil {
					return err
				}
			}

			fmt.Printf("Curve as of %s (%s)\n", date.Format("2006-01-02"), method)
			fmt.Printf("%-6s %10s %10s %10s\n", "tenor", "base %", "shocked %", "delta bp")
			for _, tenor := range marketdata.StandardTenors {
				years, err := tenor.Years()
				if err != nil {
					return err
				}
				b := base.Yield(years)
				s := shocked.Yield(years)
				fmt.Printf("%-6s %10.4f %10.4f %10.2f\n", tenor, b*100, s*100, (s-b)*10000)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "curve date YYYY-MM-DD (default: latest stored)")
	cmd.Flags().StringVar(&methodStr, "method", "", "interpolation: linear or cubic (default from config)")
	cmd.Flags().StringVar(&shockStr, "shock", "", "shock kind: parallel, steepen, flatten, twist, butterfly")
	cmd.Flags().Float64Var(&magnitudeBP, "bp", 25, "shock magnitude in basis points")
	cmd.Flags().StringVar(&orientStr, "orientation", "", "shock orientation (short-up, short-down, belly-up, belly-down, anchored, symmetric)")
	return cmd
}

func shockSpecFromFlags(kindStr string, magnitudeBP float64, orientStr string) (shock.Spec, error) {
	kind, err := shock.ParseKind(kindStr)
	if err != nil {
		return shock.Spec{}, err
	}
	orient, err := shock.ParseOrientation(orientStr)
	if err != nil {
		return shock.Spec{}, err
	}
	return shock.Spec{Kind: kind, MagnitudeBP: magnitudeBP, Orientation: orient}, nil
}

// engineForDate loads stored history and resolves the requested date and
// interpolation method, falling back to config defaults.
func engineForDate(ctx context.Context, cfg *config.Config, dateStr, methodStr string) (*engine.Engine, time.Time, curve.Method, error) {
	if methodStr == "" {
		methodStr = cfg.Engine.Interpolation
	}
	method, err := curve.ParseMethod(methodStr)
	if err != nil {
		return nil, time.Time{}, 0, err
	}

	db, err := store.Open(ctx, cfg.Database.DSN, cfg.Database.QueryTimeout)
	if err != nil {
		return nil, time.Time{}, 0, err
	}
	defer db.Close()

	history, err := db.LoadHistory(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, time.Time{}, 0, err
	}

	date := history.Latest().Date()
	if dateStr != "" {
		if date, err = time.Parse("2006-01-02", dateStr); err != nil {
			return nil, time.Time{}, 0, fmt.Errorf("--date: %w", err)
		}
	}

	eng, err := engine.New(history, risk.Params{BumpBP: cfg.Engine.BumpBP})
	if err != nil {
		return nil, time.Time{}, 0, err
	}
	return eng, date, method, nil
}
