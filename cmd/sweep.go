package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/BielJM1/MRTAOptima/sim"
)

var (
	// Sweep-only CLI flags
	seedFrom int64  // First seed of the sweep (inclusive)
	seedTo   int64  // Last seed of the sweep (inclusive)
	sweepOut string // CSV file the per-run results are written to
)

// sweepCmd executes one simulation per seed and aggregates the results
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the simulation across a seed range and aggregate results",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := sim.ExperimentConfig{
			Scenario: scenarioConfig(),
			Stimulus: stimulusConfig(),
			Policy:   policyConfig(),
			Run:      runConfig(),
			SeedFrom: seedFrom,
			SeedTo:   seedTo,
		}

		logrus.Infof("Starting sweep over seeds [%d, %d]", seedFrom, seedTo)

		results, summary, err := sim.RunSweep(cfg)
		if err != nil {
			logrus.Fatalf("sweep aborted: %v", err)
		}
		summary.Print()

		if sweepOut != "" {
			file, err := os.Create(sweepOut)
			if err != nil {
				logrus.Fatalf("unable to create results file %s: %v", sweepOut, err)
			}
			defer file.Close()
			if err := sim.WriteSweepCSV(file, results); err != nil {
				logrus.Fatalf("unable to write results file %s: %v", sweepOut, err)
			}
			logrus.Infof("Results written to %s", sweepOut)
		}

		logrus.Info("Sweep complete.")
	},
}

// init sets up sweep-only flags; shared flags are registered in root.go
func init() {
	sweepCmd.Flags().Int64Var(&seedFrom, "seed-from", 1, "First seed of the sweep (inclusive)")
	sweepCmd.Flags().Int64Var(&seedTo, "seed-to", 10, "Last seed of the sweep (inclusive)")
	sweepCmd.Flags().StringVar(&sweepOut, "out", "", "Write per-run results as CSV to this file")
}
