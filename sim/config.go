package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// ErrConfiguration is the sentinel wrapped by every ConfigError.
var ErrConfiguration = errors.New("invalid configuration")

// ConfigError reports a configuration value that prevents a run from starting.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Unwrap lets callers match any ConfigError with errors.Is(err, ErrConfiguration).
func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// KindProfile holds the parameters of one customer kind within a transaction class.
type KindProfile struct {
	MeanService      float64 `yaml:"mean_service"`      // mean service duration (minutes)
	MeanInterArrival float64 `yaml:"mean_interarrival"` // mean gap before this kind arrives (minutes)
	Probability      float64 `yaml:"probability"`       // selection weight within the class
}

// ClassTable maps every customer kind to its profile for one transaction class.
type ClassTable map[CustomerKind]KindProfile

// Config groups every parameter of a single run.
type Config struct {
	Horizon        float64                         `yaml:"horizon_minutes"`                  // run length in minutes, exclusive bound
	NumStations    int                             `yaml:"num_stations"`                     // number of tellers
	WithdrawalProb float64                         `yaml:"withdrawal_probability"`           // chance a teller is bound to withdrawals
	ArrivalCutoff  float64                         `yaml:"arrival_cutoff_minutes,omitempty"` // 0 = arrivals until horizon
	Assignment     []TransactionClass              `yaml:"assignment,omitempty"`             // fixed class per teller; empty = coin flip
	Classes        map[TransactionClass]ClassTable `yaml:"classes"`
}

// DefaultConfig returns the bank branch studied originally: one 8-hour day,
// three tellers, 70% of them bound to withdrawals.
func DefaultConfig() Config {
	return Config{
		Horizon:        8 * 60,
		NumStations:    3,
		WithdrawalProb: 0.7,
		Classes: map[TransactionClass]ClassTable{
			ClassWithdrawal: {
				KindFast:     {MeanService: 1, MeanInterArrival: 1, Probability: 0.23},
				KindNormal:   {MeanService: 2, MeanInterArrival: 2, Probability: 0.40},
				KindSlow:     {MeanService: 3, MeanInterArrival: 3, Probability: 0.17},
				KindVerySlow: {MeanService: 4, MeanInterArrival: 3, Probability: 0.20},
			},
			ClassPayment: {
				KindFast:     {MeanService: 3, MeanInterArrival: 1, Probability: 0.10},
				KindNormal:   {MeanService: 3, MeanInterArrival: 2, Probability: 0.20},
				KindSlow:     {MeanService: 5, MeanInterArrival: 3, Probability: 0.30},
				KindVerySlow: {MeanService: 7, MeanInterArrival: 4, Probability: 0.40},
			},
		},
	}
}

// Profile returns the parameters for kind within class.
// The second result is false when the table has no such entry.
func (c *Config) Profile(class TransactionClass, kind CustomerKind) (KindProfile, bool) {
	table, ok := c.Classes[class]
	if !ok {
		return KindProfile{}, false
	}
	p, ok := table[kind]
	return p, ok
}

// KindChoices returns the categorical table for class in AllKinds order.
func (c *Config) KindChoices(class TransactionClass) []Choice {
	choices := make([]Choice, 0, len(AllKinds))
	for _, kind := range AllKinds {
		p, ok := c.Profile(class, kind)
		if !ok {
			continue
		}
		choices = append(choices, Choice{Label: string(kind), Weight: p.Probability})
	}
	return choices
}

// Validate checks that a run can start with this configuration.
// Probabilities within a class are not required to sum to 1.0; a mismatch is
// only logged.
func (c *Config) Validate() error {
	if c.NumStations <= 0 {
		return &ConfigError{Field: "num_stations", Reason: fmt.Sprintf("must be positive, got %d", c.NumStations)}
	}
	if err := validateFinitePositive("horizon_minutes", c.Horizon); err != nil {
		return err
	}
	if math.IsNaN(c.WithdrawalProb) || c.WithdrawalProb < 0 || c.WithdrawalProb > 1 {
		return &ConfigError{Field: "withdrawal_probability", Reason: fmt.Sprintf("must be in [0, 1], got %f", c.WithdrawalProb)}
	}
	if math.IsNaN(c.ArrivalCutoff) || math.IsInf(c.ArrivalCutoff, 0) || c.ArrivalCutoff < 0 {
		return &ConfigError{Field: "arrival_cutoff_minutes", Reason: fmt.Sprintf("must be a non-negative finite number, got %f", c.ArrivalCutoff)}
	}
	if len(c.Assignment) > 0 && len(c.Assignment) != c.NumStations {
		return &ConfigError{Field: "assignment", Reason: fmt.Sprintf("has %d entries for %d stations", len(c.Assignment), c.NumStations)}
	}
	for i, class := range c.Assignment {
		if !validClasses[class] {
			return &ConfigError{Field: fmt.Sprintf("assignment[%d]", i), Reason: fmt.Sprintf("unknown class %q; valid: withdrawal, payment", class)}
		}
	}
	for class := range c.Classes {
		if !validClasses[class] {
			return &ConfigError{Field: "classes", Reason: fmt.Sprintf("unknown class %q; valid: withdrawal, payment", class)}
		}
	}
	for _, class := range AllClasses {
		if err := c.validateClass(class); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateClass(class TransactionClass) error {
	table, ok := c.Classes[class]
	if !ok {
		return &ConfigError{Field: "classes." + string(class), Reason: "missing kind table"}
	}
	for kind := range table {
		if !validKinds[kind] {
			return &ConfigError{Field: "classes." + string(class), Reason: fmt.Sprintf("unknown kind %q; valid: fast, normal, slow, very_slow", kind)}
		}
	}
	total := 0.0
	for _, kind := range AllKinds {
		prefix := fmt.Sprintf("classes.%s.%s", class, kind)
		p, ok := table[kind]
		if !ok {
			return &ConfigError{Field: prefix, Reason: "missing entry"}
		}
		if err := validateFinitePositive(prefix+".mean_service", p.MeanService); err != nil {
			return err
		}
		if err := validateFinitePositive(prefix+".mean_interarrival", p.MeanInterArrival); err != nil {
			return err
		}
		if math.IsNaN(p.Probability) || math.IsInf(p.Probability, 0) || p.Probability < 0 {
			return &ConfigError{Field: prefix + ".probability", Reason: fmt.Sprintf("must be a non-negative finite number, got %f", p.Probability)}
		}
		total += p.Probability
	}
	if total <= 0 {
		return &ConfigError{Field: "classes." + string(class), Reason: "all kind probabilities are zero"}
	}
	if math.Abs(total-1.0) > 1e-6 {
		logrus.Warnf("kind probabilities for class %q sum to %.4f, not 1.0", class, total)
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return &ConfigError{Field: name, Reason: fmt.Sprintf("must be a finite number, got %f", val)}
	}
	if val <= 0 {
		return &ConfigError{Field: name, Reason: fmt.Sprintf("must be positive, got %f", val)}
	}
	return nil
}
