package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/juanmaya19/problema-bancario/sim/analysis"
	"github.com/juanmaya19/problema-bancario/sim/replication"
)

var (
	// CLI flags for the scenario
	configPath     string   // YAML scenario file (optional)
	horizon        float64  // Operating horizon in minutes
	numTellers     int      // Number of tellers
	withdrawalProb float64  // Probability a teller is bound to withdrawals
	arrivalCutoff  float64  // Stop arrivals at this time (0 = never)
	assignment     []string // Fixed class per teller

	// CLI flags for replication and analysis
	seed          int64   // Master seed for all replications
	replications  int     // Number of independent runs
	parallelism   int     // Concurrent runs (0 = GOMAXPROCS)
	maxAcceptable float64 // Teller mean above which another teller is recommended
	outputFormat  string  // text or yaml

	// CLI flags for the environment
	logLevel string // Log verbosity level
	envFile  string // .env file with TELLERSIM_* overrides
)

var validOutputFormats = map[string]bool{"text": true, "yaml": true}

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "tellersim",
	Short: "Discrete-event simulator for bank tellers",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyEnvOverrides(cmd.Flags(), envFile); err != nil {
			return err
		}
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	},
	SilenceUsage: true,
}

// runCmd replicates the simulation and prints the analysis.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the teller simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !validOutputFormats[outputFormat] {
			return fmt.Errorf("unknown format %q; valid: text, yaml", outputFormat)
		}
		cfg, err := buildConfig(cmd.Flags())
		if err != nil {
			return err
		}
		logrus.Infof("Starting %d replications: %d tellers, horizon=%.1f min, seed=%d",
			replications, cfg.NumStations, cfg.Horizon, seed)

		startTime := time.Now()
		results, err := replication.Run(context.Background(), cfg, replication.Options{
			Replications: replications,
			Seed:         seed,
			Parallelism:  parallelism,
		})
		if err != nil {
			return err
		}
		report, err := analysis.Analyze(results, analysis.Options{MaxAcceptableMinutes: maxAcceptable})
		if err != nil {
			return err
		}

		switch outputFormat {
		case "yaml":
			if err := report.WriteYAML(cmd.OutOrStdout()); err != nil {
				return err
			}
		default:
			report.Print(cmd.OutOrStdout())
		}
		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
		return nil
	},
}

// configCmd prints the effective scenario as YAML, ready to edit and pass back with --config.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective scenario configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd.Flags())
		if err != nil {
			return err
		}
		return writeConfig(cmd.OutOrStdout(), cfg)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional .env file with TELLERSIM_* flag overrides")

	for _, c := range []*cobra.Command{runCmd, configCmd} {
		c.Flags().StringVar(&configPath, "config", "", "YAML scenario file (defaults to the built-in branch)")
		c.Flags().Float64Var(&horizon, "horizon", 480, "Operating horizon in minutes")
		c.Flags().IntVar(&numTellers, "tellers", 3, "Number of tellers")
		c.Flags().Float64Var(&withdrawalProb, "withdrawal-prob", 0.7, "Probability a teller is bound to withdrawals")
		c.Flags().Float64Var(&arrivalCutoff, "arrival-cutoff", 0, "Stop new arrivals at this minute (0 = until horizon)")
		c.Flags().StringSliceVar(&assignment, "assignment", nil, "Fixed class per teller, e.g. withdrawal,withdrawal,payment")
	}

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Master seed for all replications")
	runCmd.Flags().IntVar(&replications, "replications", 10, "Number of independent replications")
	runCmd.Flags().IntVar(&parallelism, "parallelism", 0, "Replications run concurrently (0 = GOMAXPROCS)")
	runCmd.Flags().Float64Var(&maxAcceptable, "max-acceptable-minutes", analysis.DefaultMaxAcceptableMinutes, "Teller mean above which another teller is recommended")
	runCmd.Flags().StringVar(&outputFormat, "format", "text", "Report format (text, yaml)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}
