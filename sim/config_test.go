package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 480.0, cfg.Horizon)
	assert.Equal(t, 3, cfg.NumStations)
	assert.Equal(t, 0.7, cfg.WithdrawalProb)

	for _, class := range AllClasses {
		total := 0.0
		for _, kind := range AllKinds {
			p, ok := cfg.Profile(class, kind)
			require.True(t, ok, "%s/%s missing", class, kind)
			total += p.Probability
		}
		assert.InDelta(t, 1.0, total, 1e-9, "class %s", class)
	}
}

func TestConfig_Validate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"zero stations", func(c *Config) { c.NumStations = 0 }, "num_stations"},
		{"negative stations", func(c *Config) { c.NumStations = -2 }, "num_stations"},
		{"zero horizon", func(c *Config) { c.Horizon = 0 }, "horizon_minutes"},
		{"negative horizon", func(c *Config) { c.Horizon = -1 }, "horizon_minutes"},
		{"infinite horizon", func(c *Config) { c.Horizon = math.Inf(1) }, "horizon_minutes"},
		{"withdrawal prob above one", func(c *Config) { c.WithdrawalProb = 1.2 }, "withdrawal_probability"},
		{"negative cutoff", func(c *Config) { c.ArrivalCutoff = -5 }, "arrival_cutoff_minutes"},
		{"assignment length mismatch", func(c *Config) { c.Assignment = []TransactionClass{ClassPayment} }, "assignment"},
		{"unknown assignment class", func(c *Config) {
			c.Assignment = []TransactionClass{ClassPayment, "deposit", ClassWithdrawal}
		}, "assignment[1]"},
		{"missing class table", func(c *Config) { delete(c.Classes, ClassPayment) }, "classes.payment"},
		{"missing kind entry", func(c *Config) { delete(c.Classes[ClassWithdrawal], KindSlow) }, "classes.withdrawal.slow"},
		{"unknown kind", func(c *Config) {
			c.Classes[ClassWithdrawal]["turbo"] = KindProfile{MeanService: 1, MeanInterArrival: 1}
		}, "classes.withdrawal"},
		{"zero service mean", func(c *Config) {
			p := c.Classes[ClassPayment][KindFast]
			p.MeanService = 0
			c.Classes[ClassPayment][KindFast] = p
		}, "classes.payment.fast.mean_service"},
		{"negative interarrival mean", func(c *Config) {
			p := c.Classes[ClassPayment][KindNormal]
			p.MeanInterArrival = -1
			c.Classes[ClassPayment][KindNormal] = p
		}, "classes.payment.normal.mean_interarrival"},
		{"negative probability", func(c *Config) {
			p := c.Classes[ClassWithdrawal][KindFast]
			p.Probability = -0.1
			c.Classes[ClassWithdrawal][KindFast] = p
		}, "classes.withdrawal.fast.probability"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration), "error %v does not wrap ErrConfiguration", err)
			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.wantField, cerr.Field)
		})
	}
}

func TestConfig_Validate_ProbabilitySumNotEnforced(t *testing.T) {
	// GIVEN kind probabilities that sum to 0.5
	cfg := DefaultConfig()
	for kind, p := range cfg.Classes[ClassPayment] {
		p.Probability = 0.125
		cfg.Classes[ClassPayment][kind] = p
	}
	// THEN the configuration is still accepted
	assert.NoError(t, cfg.Validate())
}

func TestNewSimulator_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumStations = 0
	s, err := NewSimulator(cfg, MeanVariates{})
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestConfig_KindChoicesInTableOrder(t *testing.T) {
	cfg := DefaultConfig()
	choices := cfg.KindChoices(ClassPayment)
	require.Len(t, choices, 4)
	for i, kind := range AllKinds {
		assert.Equal(t, string(kind), choices[i].Label)
	}
	assert.Equal(t, 0.40, choices[3].Weight)
}
