// Implements the WaitQueue, the bounded-or-unbounded FIFO line customers join
// when every server is busy.

package sim

import (
	"fmt"
	"strconv"
	"strings"
)

// Capacity is the maximum wait line length. Unbounded disables the limit;
// zero models a pure loss system.
type Capacity int

// Unbounded is the sentinel capacity of a wait line that never rejects.
const Unbounded Capacity = -1

// IsUnbounded reports whether c is the unbounded sentinel.
func (c Capacity) IsUnbounded() bool {
	return c == Unbounded
}

func (c Capacity) String() string {
	if c.IsUnbounded() {
		return "unbounded"
	}
	return strconv.Itoa(int(c))
}

// ParseCapacity accepts "unbounded" (or "inf") or a non-negative integer.
func ParseCapacity(s string) (Capacity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unbounded", "inf", "infinite":
		return Unbounded, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid capacity %q: want a non-negative integer or \"unbounded\"", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid capacity %d: must be >= 0 (use \"unbounded\" for no limit)", n)
	}
	return Capacity(n), nil
}

// WaitQueue represents a FIFO queue of customers waiting for a free server.
// The queue holds references to customer records owned by the simulator.
type WaitQueue struct {
	queue    []*Customer // FIFO queue of customers
	capacity Capacity
}

// NewWaitQueue creates an empty wait line with the given capacity.
func NewWaitQueue(capacity Capacity) *WaitQueue {
	return &WaitQueue{capacity: capacity}
}

// Capacity returns the configured capacity.
func (wq *WaitQueue) Capacity() Capacity {
	return wq.capacity
}

// Full reports whether another customer would be rejected.
func (wq *WaitQueue) Full() bool {
	if wq.capacity.IsUnbounded() {
		return false
	}
	return len(wq.queue) >= int(wq.capacity)
}

// Enqueue adds a customer to the back of the wait line.
// Returns false, leaving the queue unchanged, when the line is full.
func (wq *WaitQueue) Enqueue(c *Customer) bool {
	if c == nil {
		panic("Enqueue: customer must not be nil")
	}
	if wq.Full() {
		return false
	}
	wq.queue = append(wq.queue, c)
	return true
}

// Dequeue removes and returns the customer at the front of the line.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() *Customer {
	if len(wq.queue) == 0 {
		return nil
	}
	head := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return head
}

// Peek returns the customer at the front of the line without removing it.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Peek() *Customer {
	if len(wq.queue) == 0 {
		return nil
	}
	return wq.queue[0]
}

// Len returns the number of customers in the line.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Items returns the queue contents in FIFO order.
// The returned slice is the queue's internal storage; callers MUST NOT modify it.
func (wq *WaitQueue) Items() []*Customer {
	return wq.queue
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, c := range wq.queue {
		sb.WriteString(strconv.Itoa(c.ID))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
