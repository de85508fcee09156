package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meenmo/curvelab/bond"
	"github.com/meenmo/curvelab/config"
)

func newRiskCmd(cfgPath *string) *cobra.Command {
	var (
		dateStr   string
		methodStr string
		maturity  float64
		couponPct float64
		frequency int
		face      float64
	)

	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Compute price, DV01, duration and convexity for a bond",
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

			spec := bond.Spec{
				MaturityYears: maturity,
				CouponRate:    couponPct / 100.0,
				Frequency:     frequency,
				FaceValue:     face,
			}
			metrics, err := eng.Risk(base, spec)
			if err != nil {
				return err
			}

			fmt.Printf("Curve date:        %s (%s)\n", date.Format("2006-01-02"), method)
			fmt.Printf("Bond:              %.4gY %.4g%% freq=%d face=%.4g\n", maturity, couponPct, frequency, spec.FaceValue)
			fmt.Printf("Price:             %12.6f\n", metrics.Price)
			fmt.Printf("DV01 (per 1bp):    %12.6f\n", metrics.DV01)
			fmt.Printf("Modified duration: %12.6f\n", metrics.ModifiedDuration)
			fmt.Printf("Convexity:         %12.6f\n", metrics.Convexity)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "curve date YYYY-MM-DD (default: latest stored)")
	cmd.Flags().StringVar(&methodStr, "method", "", "interpolation: linear or cubic (default from config)")
	cmd.Flags().Float64Var(&maturity, "maturity", 5, "bond maturity in years")
	cmd.Flags().Float64Var(&couponPct, "coupon", 5, "annual coupon rate in percent")
	cmd.Flags().IntVar(&frequency, "frequency", 2, "coupon payments per year")
	cmd.Flags().Float64Var(&face, "face", 100, "face value")
	return cmd
}
