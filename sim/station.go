package sim

import "fmt"

// Station is one teller: a mutual-exclusion slot of capacity 1 with an
// unbounded FIFO wait queue. Stations never share customers.
type Station struct {
	ID    int              // 1..N
	Class TransactionClass // bound for the whole run

	holder *Customer
	waitQ  *WaitQueue

	arrivals int // customers spawned by this station's arrival process
}

// NewStation creates an idle station bound to class.
func NewStation(id int, class TransactionClass) *Station {
	return &Station{
		ID:    id,
		Class: class,
		waitQ: &WaitQueue{},
	}
}

// Acquire requests the slot for c. If the slot is free it is granted at once
// and Acquire returns true; otherwise c joins the back of the wait queue and
// Acquire returns false.
func (st *Station) Acquire(c *Customer) bool {
	if st.holder == nil {
		st.holder = c
		return true
	}
	st.waitQ.Enqueue(c)
	return false
}

// Release frees the slot held by c and hands it to the head of the wait queue.
// Returns the customer now holding the slot, or nil if nobody was waiting.
// Panics if c does not hold the slot.
func (st *Station) Release(c *Customer) *Customer {
	if st.holder != c {
		panic(fmt.Sprintf("Station %d: release by %v, holder is %v", st.ID, c, st.holder))
	}
	st.holder = st.waitQ.Dequeue()
	return st.holder
}

// Holder returns the customer currently holding the slot, or nil when idle.
func (st *Station) Holder() *Customer {
	return st.holder
}

// Busy reports whether the slot is held.
func (st *Station) Busy() bool {
	return st.holder != nil
}

// QueueLen returns the number of customers waiting for the slot.
func (st *Station) QueueLen() int {
	return st.waitQ.Len()
}

// Arrivals returns the number of customers spawned for this station so far.
func (st *Station) Arrivals() int {
	return st.arrivals
}
