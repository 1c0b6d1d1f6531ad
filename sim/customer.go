// Defines the Customer record that tracks one individual's lifecycle through the queueing system.
// Timestamps are stamped by event handling only, in increasing simulated-time order.

package sim

import "fmt"

// CustomerState represents the lifecycle state of a customer.
type CustomerState string

const (
	StatePending   CustomerState = "pending"
	StateWaiting   CustomerState = "waiting"
	StateInService CustomerState = "in_service"
	StateCompleted CustomerState = "completed"
	StateBalked    CustomerState = "balked"
)

// NoServer marks a customer that has not been assigned to any server.
const NoServer = -1

// Customer models a single customer's lifecycle in the simulation.
// All times are simulated-time scalars and default to 0.
type Customer struct {
	ID int // Position in the pre-allocated customer pool

	ArrivalTime  float64 // Time the customer entered the system
	WaitStart    float64 // Time the customer joined the wait line (0 if never queued)
	WaitEnd      float64 // Time the customer left the wait line for a server (0 if never queued)
	ServiceStart float64 // Time a server started serving the customer
	ServiceEnd   float64 // Time the server finished serving the customer

	State   CustomerState // pending, waiting, in_service, completed, balked
	Queued  bool          // Set once admitted to the wait line, even if dequeued at the same instant
	Initial bool          // Already in service at t=0; never had an arrival event
	Server  int           // Roster index of the serving server, NoServer until assigned
}

// NewCustomer creates a pending customer with the given pool ID.
func NewCustomer(id int) *Customer {
	return &Customer{ID: id, State: StatePending, Server: NoServer}
}

// NewCustomers pre-allocates a pool of n pending customers with IDs 0..n-1.
func NewCustomers(n int) []*Customer {
	customers := make([]*Customer, n)
	for i := range customers {
		customers[i] = NewCustomer(i)
	}
	return customers
}

// WaitTime is the time spent in the wait line.
func (c *Customer) WaitTime() float64 {
	return c.WaitEnd - c.WaitStart
}

// ServiceTime is the time spent being served.
func (c *Customer) ServiceTime() float64 {
	return c.ServiceEnd - c.ServiceStart
}

// TotalTime is the time spent in the system: waiting plus service.
func (c *Customer) TotalTime() float64 {
	return c.WaitTime() + c.ServiceTime()
}

// Balked reports whether the customer left without being served.
func (c *Customer) Balked() bool {
	return c.State == StateBalked
}

// Completed reports whether service finished for the customer.
func (c *Customer) Completed() bool {
	return c.State == StateCompleted
}

func (c Customer) String() string {
	return fmt.Sprintf("Customer: (ID: %d, State: %s, ArrivalTime: %.2f, Wait: %.2f, Service: %.2f)",
		c.ID, c.State, c.ArrivalTime, c.WaitTime(), c.ServiceTime())
}
