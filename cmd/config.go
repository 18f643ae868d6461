package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/juanmaya19/problema-bancario/sim"
)

// envPrefix is prepended to upper-cased flag names to form override variables,
// e.g. --withdrawal-prob is read from TELLERSIM_WITHDRAWAL_PROB.
const envPrefix = "TELLERSIM_"

// envVarName returns the environment variable that can supply flag name.
func envVarName(name string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// applyEnvOverrides loads path into the process environment (without
// replacing variables already set) and then fills every flag the user did not
// pass on the command line from its TELLERSIM_* variable.
// A missing file is only an error when --env-file was given explicitly.
func applyEnvOverrides(flags *pflag.FlagSet, path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) || flags.Changed("env-file") {
				return fmt.Errorf("loading env file %s: %w", path, err)
			}
			logrus.Debugf("No env file at %s (using environment variables)", path)
		}
	}
	var setErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if setErr != nil || f.Changed || f.Name == "help" {
			return
		}
		v, ok := os.LookupEnv(envVarName(f.Name))
		if !ok {
			return
		}
		if err := flags.Set(f.Name, v); err != nil {
			setErr = fmt.Errorf("%s=%q: %w", envVarName(f.Name), v, err)
		}
	})
	return setErr
}

// loadScenario reads a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func loadScenario(path string) (sim.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sim.Config{}, fmt.Errorf("reading scenario: %w", err)
	}
	var cfg sim.Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return sim.Config{}, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return cfg, nil
}

// buildConfig starts from the built-in scenario or --config, then applies the
// scenario flags that were set explicitly (on the command line or through the
// environment). The result is validated.
func buildConfig(flags *pflag.FlagSet) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		loaded, err := loadScenario(configPath)
		if err != nil {
			return sim.Config{}, err
		}
		cfg = loaded
		logrus.Infof("Loaded scenario from %s", configPath)
	}
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if flags.Changed("tellers") {
		cfg.NumStations = numTellers
	}
	if flags.Changed("withdrawal-prob") {
		cfg.WithdrawalProb = withdrawalProb
	}
	if flags.Changed("arrival-cutoff") {
		cfg.ArrivalCutoff = arrivalCutoff
	}
	if flags.Changed("assignment") {
		cfg.Assignment = make([]sim.TransactionClass, len(assignment))
		for i, a := range assignment {
			cfg.Assignment[i] = sim.TransactionClass(strings.TrimSpace(a))
		}
	}
	if err := cfg.Validate(); err != nil {
		return sim.Config{}, err
	}
	return cfg, nil
}

// writeConfig encodes cfg as a scenario file accepted by loadScenario.
func writeConfig(w io.Writer, cfg sim.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}
	return enc.Close()
}
