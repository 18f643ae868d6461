package sim

import "math/rand"

// VariateSource supplies every random draw the engine makes.
// Implementations must be deterministic for a given internal state so that a
// fixed stream reproduces a run exactly.
type VariateSource interface {
	// Exponential returns a draw from an exponential distribution with the given mean.
	Exponential(mean float64) float64
	// Categorical returns the label of one choice, picked with probability
	// proportional to its weight.
	Categorical(choices []Choice) string
}

// Choice is one labelled entry of a categorical probability table.
type Choice struct {
	Label  string
	Weight float64
}

// SelectWeighted picks a label by cumulative-weight scan given a uniform draw u in [0, 1).
// Weights are expected to sum to about 1.0. Entries with non-positive weight are
// never selected. When u falls past the cumulative total, the last positive-weight
// entry is returned. Returns "" when no entry has positive weight.
func SelectWeighted(choices []Choice, u float64) string {
	cumulative := 0.0
	last := ""
	for _, c := range choices {
		if c.Weight <= 0 {
			continue
		}
		cumulative += c.Weight
		last = c.Label
		if u < cumulative {
			return c.Label
		}
	}
	return last
}

// RandVariates draws from a *rand.Rand stream.
// Thread-safety: NOT thread-safe, like the *rand.Rand it wraps.
type RandVariates struct {
	rng *rand.Rand
}

// NewRandVariates wraps rng. Panics if rng is nil.
func NewRandVariates(rng *rand.Rand) *RandVariates {
	if rng == nil {
		panic("NewRandVariates: rng must not be nil")
	}
	return &RandVariates{rng: rng}
}

func (v *RandVariates) Exponential(mean float64) float64 {
	return v.rng.ExpFloat64() * mean
}

func (v *RandVariates) Categorical(choices []Choice) string {
	return SelectWeighted(choices, v.rng.Float64())
}

// MeanVariates is a deterministic source: every exponential draw returns its
// mean exactly, and every categorical draw uses the fixed uniform value U.
// With U = 0 the first positive-weight choice always wins.
type MeanVariates struct {
	U float64
}

func (v MeanVariates) Exponential(mean float64) float64 {
	return mean
}

func (v MeanVariates) Categorical(choices []Choice) string {
	return SelectWeighted(choices, v.U)
}
