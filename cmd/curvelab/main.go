// Command curvelab fetches daily Treasury yields, caches them in PostgreSQL
// and evaluates curve shocks and bond risk from the command line.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("curvelab failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "curvelab",
		Short:         "Yield curve deformation and bond risk toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "config file path")

	root.AddCommand(newFetchCmd(&cfgPath))
	root.AddCommand(newCurveCmd(&cfgPath))
	root.AddCommand(newRiskCmd(&cfgPath))
	return root
}
