package status

import "github.com/sweeney/matrix-timer/internal/logic"

// DefaultHistory is the number of recent events a Tracker keeps.
const DefaultHistory = 8

// eventRing is a fixed-capacity FIFO of timer events. Once full, each push
// overwrites the oldest event.
// Not safe for concurrent use; the Tracker holds its lock.
type eventRing struct {
	buf      []logic.Event
	capacity int
	head     int // next write position
	count    int
}

func newEventRing(capacity int) *eventRing {
	return &eventRing{
		buf:      make([]logic.Event, capacity),
		capacity: capacity,
	}
}

func (r *eventRing) push(ev logic.Event) {
	r.buf[r.head] = ev
	r.head = (r.head + 1) % r.capacity
	if r.count < r.capacity {
		r.count++
	}
}

// items returns the buffered events, oldest first, without removing them.
func (r *eventRing) items() []logic.Event {
	if r.count == 0 {
		return nil
	}

	result := make([]logic.Event, r.count)
	// Oldest item is at (head - count) mod capacity
	start := (r.head - r.count + r.capacity) % r.capacity
	for i := 0; i < r.count; i++ {
		result[i] = r.buf[(start+i)%r.capacity]
	}
	return result
}

func (r *eventRing) len() int {
	return r.count
}
