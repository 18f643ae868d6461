// Defines the Customer struct that models one person visiting a teller.
// Tracks arrival, service start and completion times for a single visit.

package sim

import "fmt"

// CustomerState represents the lifecycle state of a customer.
type CustomerState string

const (
	StateWaiting   CustomerState = "waiting_for_station"
	StateInService CustomerState = "in_service"
	StateDone      CustomerState = "done"
)

// Customer is created by an arrival process and consumed by exactly one
// service process. Customers still waiting or in service when the horizon is
// reached never reach StateDone.
type Customer struct {
	ID        int              // unique within a run, assigned in arrival order
	StationID int              // teller this customer queues for
	Class     TransactionClass // class of the teller, fixed for the run
	Kind      CustomerKind

	State          CustomerState
	ArrivalTime    float64 // minutes
	ServiceStart   float64 // minutes; meaningful once in service
	CompletionTime float64 // minutes; meaningful once done
}

func (c *Customer) String() string {
	return fmt.Sprintf("customer_%d(%s/%s)", c.ID, c.Class, c.Kind)
}
