// sim/simulator.go
package sim

import (
	"container/heap"

	"github.com/sirupsen/logrus"
)

// scheduledEvent pairs an event with its submission sequence number.
type scheduledEvent struct {
	ev  Event
	seq uint64
}

// EventQueue implements heap.Interface and orders events by timestamp,
// breaking ties by submission order so that equal-time events run FIFO.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []scheduledEvent

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	ti, tj := eq[i].ev.Timestamp(), eq[j].ev.Timestamp()
	if ti != tj {
		return ti < tj
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(scheduledEvent))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	old[n-1] = scheduledEvent{}
	*eq = old[0 : n-1]
	return item
}

// Simulator holds the clock, the stations and the event loop of one run.
// It is single-use: Run panics if called twice.
type Simulator struct {
	Clock         float64
	Horizon       float64
	ArrivalCutoff float64
	// EventQueue has all pending wake-ups: arrivals, service starts, departures
	EventQueue EventQueue
	Stations   []*Station
	Records    *ServiceRecords

	config         Config
	variates       VariateSource
	nextSeq        uint64
	nextCustomerID int
	hasRun         bool
}

// NewSimulator validates cfg and builds the stations. Each station's class is
// taken from cfg.Assignment when set, otherwise drawn with a weighted coin flip
// (withdrawal with probability cfg.WithdrawalProb). Stations are numbered 1..N.
// Returns a *ConfigError (wrapping ErrConfiguration) if cfg is invalid.
func NewSimulator(cfg Config, variates VariateSource) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if variates == nil {
		panic("NewSimulator: variates must not be nil")
	}
	s := &Simulator{
		Horizon:       cfg.Horizon,
		ArrivalCutoff: cfg.ArrivalCutoff,
		EventQueue:    make(EventQueue, 0),
		Stations:      make([]*Station, cfg.NumStations),
		config:        cfg,
		variates:      variates,
	}
	ids := make([]int, cfg.NumStations)
	for i := range s.Stations {
		ids[i] = i + 1
		s.Stations[i] = NewStation(i+1, s.assignClass(i))
	}
	s.Records = NewServiceRecords(ids)
	return s, nil
}

func (sim *Simulator) assignClass(idx int) TransactionClass {
	if len(sim.config.Assignment) > 0 {
		return sim.config.Assignment[idx]
	}
	label := sim.variates.Categorical([]Choice{
		{Label: string(ClassWithdrawal), Weight: sim.config.WithdrawalProb},
		{Label: string(ClassPayment), Weight: 1 - sim.config.WithdrawalProb},
	})
	return TransactionClass(label)
}

// Schedule pushes an event into the simulator's EventQueue.
func (sim *Simulator) Schedule(ev Event) {
	heap.Push(&sim.EventQueue, scheduledEvent{ev: ev, seq: sim.nextSeq})
	sim.nextSeq++
}

// Run starts one arrival process per station and executes events in
// chronological order until the next event would fire at or after the horizon.
// Work still pending at that point is abandoned: it is neither completed nor
// rolled back.
func (sim *Simulator) Run() *ReplicationResult {
	sim.start()
	for sim.HasPendingEvents() && sim.PeekNextEventTime() < sim.Horizon {
		sim.ProcessNextEvent()
	}
	sim.Clock = sim.Horizon
	logrus.Infof("[t=%10.4f] Run ended with %d completions, %d events pending",
		sim.Clock, sim.Records.Total(), len(sim.EventQueue))
	return sim.result()
}

// start schedules the first arrival of every station, in station order.
func (sim *Simulator) start() {
	if sim.hasRun {
		panic("Simulator.Run() called more than once")
	}
	sim.hasRun = true
	logrus.Infof("Starting run: %d stations, horizon=%.1f min", len(sim.Stations), sim.Horizon)
	for _, st := range sim.Stations {
		sim.scheduleNextArrival(st)
	}
}

// HasPendingEvents reports whether any event is scheduled.
func (sim *Simulator) HasPendingEvents() bool {
	return len(sim.EventQueue) > 0
}

// PeekNextEventTime returns the timestamp of the next event.
// Panics if no event is pending.
func (sim *Simulator) PeekNextEventTime() float64 {
	return sim.EventQueue[0].ev.Timestamp()
}

// ProcessNextEvent pops the earliest event, advances the clock to it and
// executes it. Returns the executed event.
func (sim *Simulator) ProcessNextEvent() Event {
	// get the next event to be simulated
	next := heap.Pop(&sim.EventQueue).(scheduledEvent)
	// advance the clock
	sim.Clock = next.ev.Timestamp()
	logrus.Tracef("[t=%10.4f] Executing %T", sim.Clock, next.ev)
	// process the event
	next.ev.Execute(sim)
	return next.ev
}

// scheduleNextArrival draws the next customer kind and gap for st and
// suspends its arrival process until then.
func (sim *Simulator) scheduleNextArrival(st *Station) {
	kind := CustomerKind(sim.variates.Categorical(sim.config.KindChoices(st.Class)))
	profile, _ := sim.config.Profile(st.Class, kind)
	gap := sim.variates.Exponential(profile.MeanInterArrival)
	sim.Schedule(&ArrivalEvent{time: sim.Clock + gap, Station: st, Kind: kind})
}

func (sim *Simulator) newCustomer(st *Station, kind CustomerKind) *Customer {
	sim.nextCustomerID++
	st.arrivals++
	return &Customer{
		ID:          sim.nextCustomerID,
		StationID:   st.ID,
		Class:       st.Class,
		Kind:        kind,
		State:       StateWaiting,
		ArrivalTime: sim.Clock,
	}
}

// requestService starts a customer's service process. A free slot is taken
// immediately and the customer resumes at the current instant; otherwise the
// customer waits in the station's queue until a departure hands it the slot.
func (sim *Simulator) requestService(c *Customer) {
	st := sim.Stations[c.StationID-1]
	if st.Acquire(c) {
		sim.Schedule(&ServiceStartEvent{time: sim.Clock, Customer: c})
		return
	}
	logrus.Tracef("%v waits at station %d behind %d", c, st.ID, st.QueueLen()-1)
}

func (sim *Simulator) result() *ReplicationResult {
	res := &ReplicationResult{
		Assignment: make(map[int]TransactionClass, len(sim.Stations)),
		Records:    sim.Records,
		Arrivals:   make(map[int]int, len(sim.Stations)),
		Abandoned:  make(map[int]int, len(sim.Stations)),
		EndTime:    sim.Clock,
	}
	for _, st := range sim.Stations {
		res.Assignment[st.ID] = st.Class
		res.Arrivals[st.ID] = st.Arrivals()
		res.Abandoned[st.ID] = st.Arrivals() - sim.Records.StationTotal(st.ID)
	}
	return res
}
