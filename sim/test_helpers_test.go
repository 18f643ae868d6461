package sim

import "testing"

// singleKindConfig returns a one-station withdrawal scenario in which every
// customer is of the given kind.
func singleKindConfig(horizon float64, kind CustomerKind, interArrival, service float64) Config {
	table := ClassTable{}
	for _, k := range AllKinds {
		table[k] = KindProfile{MeanService: 1, MeanInterArrival: 1, Probability: 0}
	}
	table[kind] = KindProfile{MeanService: service, MeanInterArrival: interArrival, Probability: 1}
	return Config{
		Horizon:        horizon,
		NumStations:    1,
		WithdrawalProb: 1,
		Classes: map[TransactionClass]ClassTable{
			ClassWithdrawal: table,
			ClassPayment:    DefaultConfig().Classes[ClassPayment],
		},
	}
}

// mustNewSimulator creates a Simulator or fails the test.
func mustNewSimulator(t *testing.T, cfg Config, v VariateSource) *Simulator {
	t.Helper()
	s, err := NewSimulator(cfg, v)
	if err != nil {
		t.Fatalf("NewSimulator() failed: %v", err)
	}
	return s
}

// seeded returns a RandVariates on a fresh stream.
func seeded(seed int64) *RandVariates {
	return NewRandVariates(NewPartitionedRNG(NewSimulationKey(seed)).ForSubsystem(SubsystemReplication(0)))
}
