package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomerState_Constants_HaveExpectedStringValues(t *testing.T) {
	assert.Equal(t, CustomerState("pending"), StatePending)
	assert.Equal(t, CustomerState("waiting"), StateWaiting)
	assert.Equal(t, CustomerState("in_service"), StateInService)
	assert.Equal(t, CustomerState("completed"), StateCompleted)
	assert.Equal(t, CustomerState("balked"), StateBalked)
}

func TestNewCustomer_Defaults(t *testing.T) {
	c := NewCustomer(7)
	assert.Equal(t, 7, c.ID)
	assert.Equal(t, StatePending, c.State)
	assert.Equal(t, NoServer, c.Server)
	assert.False(t, c.Balked())
	assert.False(t, c.Queued)
	assert.Zero(t, c.TotalTime())
}

func TestCustomer_DerivedTimes(t *testing.T) {
	c := &Customer{WaitStart: 2, WaitEnd: 5, ServiceStart: 5, ServiceEnd: 9}
	assert.Equal(t, 3.0, c.WaitTime())
	assert.Equal(t, 4.0, c.ServiceTime())
	assert.Equal(t, 7.0, c.TotalTime())
}

func TestNewCustomers_SequentialIDs(t *testing.T) {
	pool := NewCustomers(4)
	assert.Equal(t, []int{0, 1, 2, 3}, ids(pool))
}

func TestCustomer_String_IncludesState(t *testing.T) {
	c := NewCustomer(1)
	c.State = StateBalked
	assert.Contains(t, c.String(), "balked")
}
