package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event must have a Timestamp (in minutes) and an Execute method
// that advances simulation state when invoked.
type Event interface {
	Timestamp() float64
	Execute(*Simulator)
}

// ArrivalEvent is the wake-up of a station's arrival process. The kind of the
// arriving customer was drawn when the gap was scheduled.
type ArrivalEvent struct {
	time    float64
	Station *Station
	Kind    CustomerKind
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() float64 {
	return e.time
}

// Execute spawns one customer for the station, then schedules the next arrival.
// Once the arrival cutoff is reached the process stops without spawning.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	if sim.ArrivalCutoff > 0 && e.time >= sim.ArrivalCutoff {
		logrus.Debugf("<< Arrival process for station %d stopped at %.3f (cutoff %.3f)", e.Station.ID, e.time, sim.ArrivalCutoff)
		return
	}
	c := sim.newCustomer(e.Station, e.Kind)
	logrus.Debugf("<< Arrival: %v at station %d at %.3f", c, e.Station.ID, e.time)
	sim.requestService(c)
	sim.scheduleNextArrival(e.Station)
}

// ServiceStartEvent resumes a customer that has been granted its station's slot.
type ServiceStartEvent struct {
	time     float64
	Customer *Customer
}

// Timestamp returns the scheduled time of the ServiceStartEvent.
func (e *ServiceStartEvent) Timestamp() float64 {
	return e.time
}

// Execute draws the service duration and schedules the departure.
func (e *ServiceStartEvent) Execute(sim *Simulator) {
	c := e.Customer
	c.State = StateInService
	c.ServiceStart = e.time
	profile, _ := sim.config.Profile(c.Class, c.Kind)
	duration := sim.variates.Exponential(profile.MeanService)
	logrus.Tracef("<< ServiceStart: %v at station %d at %.3f for %.3f", c, c.StationID, e.time, duration)
	sim.Schedule(&DepartureEvent{time: e.time + duration, Customer: c})
}

// DepartureEvent ends a customer's service.
type DepartureEvent struct {
	time     float64
	Customer *Customer
}

// Timestamp returns the scheduled time of the DepartureEvent.
func (e *DepartureEvent) Timestamp() float64 {
	return e.time
}

// Execute releases the slot, resumes the next waiter at the same instant and
// records the completion.
func (e *DepartureEvent) Execute(sim *Simulator) {
	c := e.Customer
	st := sim.Stations[c.StationID-1]
	if next := st.Release(c); next != nil {
		sim.Schedule(&ServiceStartEvent{time: e.time, Customer: next})
	}
	c.State = StateDone
	c.CompletionTime = e.time
	sim.Records.RecordCompletion(c.StationID, c.Class, c.Kind, e.time)
	logrus.Debugf("<< Departure: %v from station %d at %.3f", c, c.StationID, e.time)
}
