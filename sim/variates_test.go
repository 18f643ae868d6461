package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectWeighted_CumulativeScan(t *testing.T) {
	choices := []Choice{
		{Label: "fast", Weight: 0.23},
		{Label: "normal", Weight: 0.40},
		{Label: "slow", Weight: 0.17},
		{Label: "very_slow", Weight: 0.20},
	}
	tests := []struct {
		name string
		u    float64
		want string
	}{
		{"zero picks first", 0, "fast"},
		{"just below first boundary", 0.2299, "fast"},
		{"first boundary belongs to next", 0.23, "normal"},
		{"inside second", 0.5, "normal"},
		{"inside third", 0.7, "slow"},
		{"inside last", 0.9, "very_slow"},
		{"past total falls back to last", 1.5, "very_slow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectWeighted(choices, tt.u))
		})
	}
}

func TestSelectWeighted_ZeroWeightsNeverSelected(t *testing.T) {
	choices := []Choice{
		{Label: "fast", Weight: 0},
		{Label: "normal", Weight: 1},
		{Label: "slow", Weight: 0},
	}
	for _, u := range []float64{0, 0.3, 0.999999, 1, 2} {
		assert.Equal(t, "normal", SelectWeighted(choices, u), "u=%v", u)
	}
}

func TestSelectWeighted_NoPositiveWeight(t *testing.T) {
	assert.Equal(t, "", SelectWeighted(nil, 0.5))
	assert.Equal(t, "", SelectWeighted([]Choice{{Label: "a", Weight: 0}}, 0.5))
}

func TestRandVariates_ExponentialMeanMatchesParam(t *testing.T) {
	v := NewRandVariates(rand.New(rand.NewSource(42)))
	n := 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		x := v.Exponential(3)
		if x < 0 {
			t.Fatalf("draw %d: got negative %v", i, x)
		}
		sum += x
	}
	mean := sum / float64(n)
	if math.Abs(mean-3)/3 > 0.05 {
		t.Errorf("exponential mean = %.3f, want ≈ 3 (within 5%%)", mean)
	}
}

func TestRandVariates_CategoricalFrequencies(t *testing.T) {
	v := NewRandVariates(rand.New(rand.NewSource(7)))
	choices := []Choice{{Label: "withdrawal", Weight: 0.7}, {Label: "payment", Weight: 0.3}}
	n := 20000
	counts := map[string]int{}
	for i := 0; i < n; i++ {
		counts[v.Categorical(choices)]++
	}
	share := float64(counts["withdrawal"]) / float64(n)
	assert.InDelta(t, 0.7, share, 0.02)
	assert.Equal(t, n, counts["withdrawal"]+counts["payment"])
}

func TestRandVariates_SameSeedSameSequence(t *testing.T) {
	a := NewRandVariates(rand.New(rand.NewSource(99)))
	b := NewRandVariates(rand.New(rand.NewSource(99)))
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Exponential(2), b.Exponential(2))
	}
}

func TestNewRandVariates_NilPanics(t *testing.T) {
	assert.Panics(t, func() { NewRandVariates(nil) })
}

func TestMeanVariates_ReturnsMeans(t *testing.T) {
	v := MeanVariates{}
	assert.Equal(t, 2.5, v.Exponential(2.5))
	assert.Equal(t, "b", v.Categorical([]Choice{{Label: "a", Weight: 0}, {Label: "b", Weight: 1}}))

	high := MeanVariates{U: 0.99}
	assert.Equal(t, "b", high.Categorical([]Choice{{Label: "a", Weight: 0.5}, {Label: "b", Weight: 0.5}}))
}
