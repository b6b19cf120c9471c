package event

import "sync"

// compactThreshold is how many consumed slots may accumulate at the front
// of the buffer before it is shifted down.
const compactThreshold = 64

// Sink accepts events from producers. Send must never block.
type Sink interface {
	Send(ev Event)
}

// Queue is an unbounded multi-producer, single-consumer FIFO.
//
// Send is safe from any number of goroutines and never blocks; there is no
// backpressure, so a producer that floods the queue grows it without
// limit. TryRecv and Ready are meant for a single consumer.
type Queue struct {
	mu    sync.Mutex
	items []Event
	head  int
	ready chan struct{}
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{
		ready: make(chan struct{}, 1),
	}
}

// Send appends ev and wakes the consumer if it is waiting on Ready
func (q *Queue) Send(ev Event) {
	q.mu.Lock()
	q.items = append(q.items, ev)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// TryRecv removes and returns the oldest event without blocking
func (q *Queue) TryRecv() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head >= len(q.items) {
		return nil, false
	}
	ev := q.items[q.head]
	q.items[q.head] = nil
	q.head++

	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head >= compactThreshold && q.head*2 >= len(q.items):
		n := copy(q.items, q.items[q.head:])
		for i := n; i < len(q.items); i++ {
			q.items[i] = nil
		}
		q.items = q.items[:n]
		q.head = 0
	}
	return ev, true
}

// Len returns the number of buffered events
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Ready returns a channel that receives after Send. A receive is a hint
// only; the consumer must still poll with TryRecv.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}
