// Package sim provides the discrete-event simulation engine for bank tellers.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - customer.go: Customer lifecycle (waiting_for_station → in_service → done)
//   - station.go: the single-capacity teller slot with its FIFO wait queue
//   - event.go: Event types that drive the simulation (Arrival, ServiceStart, Departure)
//   - simulator.go: the event loop and the horizon cutoff
//
// # Model
//
// Each teller (Station) is bound to one TransactionClass for a whole run. Every
// station owns an arrival process that draws a CustomerKind from the class's
// probability table, waits an exponentially distributed gap, then spawns a
// customer who queues for the station. Service takes an exponentially
// distributed time whose mean depends on the kind. The run stops at the
// horizon; customers still waiting or in service at that instant are abandoned
// and never counted as completed.
//
// # Randomness
//
// All draws go through a VariateSource. RandVariates wraps a *rand.Rand; the
// replication package derives one independent stream per replication from a
// PartitionedRNG. MeanVariates returns distribution means and is used to hand-check
// event traces in tests.
//
// Sub-packages:
//   - sim/replication/: repeated independent runs
//   - sim/analysis/: statistical reduction and staffing recommendations
package sim
