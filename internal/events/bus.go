package events

import "sync/atomic"

// Event is published once per processed audio chunk, highlight or not,
// giving observers a live transcript feed.
type Event struct {
	Transcript  string `json:"transcript"`
	IsHighlight bool   `json:"is_highlight"`
	Reason      string `json:"reason,omitempty"`
}

// Bus is a bounded multi-producer queue of Events. Publish never blocks:
// when the queue is full the oldest event is dropped so a slow or absent
// observer can never stall the pipeline. Each event is drained exactly once.
type Bus interface {
	Publish(e Event)
	// Events is the drain side: a single logical consumer receives
	// published events in publish order
	Events() <-chan Event
	// Dropped reports how many events were discarded to make room
	Dropped() uint64
}

type implBus struct {
	ch      chan Event
	dropped atomic.Uint64
}

// New creates a Bus holding at most size undrained events
func New(size int) Bus {
	if size <= 0 {
		size = 256
	}
	return &implBus{
		ch: make(chan Event, size),
	}
}

func (b *implBus) Publish(e Event) {
	for {
		select {
		case b.ch <- e:
			return
		default:
		}
		// Queue full: drop the oldest queued event and retry
		select {
		case <-b.ch:
			b.dropped.Add(1)
		default:
		}
	}
}

func (b *implBus) Events() <-chan Event {
	return b.ch
}

func (b *implBus) Dropped() uint64 {
	return b.dropped.Load()
}
