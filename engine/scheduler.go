package engine

import (
	"container/heap"
	"fmt"
	"math"
)

// scheduledEvent is one entry in the scheduler's min-heap, ordered
// lexicographically by (FireTime, Seq). Seq is the sole tiebreaker —
// raw floats are never compared for equality to decide order.
type scheduledEvent struct {
	Event    Event
	FireTime float64
	Seq      int64
}

// eventHeap implements container/heap.Interface as a binary min-heap,
// the same shape LarryRuane-minesim uses for its own event list.
type eventHeap []scheduledEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].FireTime != h[j].FireTime {
		return h[i].FireTime < h[j].FireTime
	}
	return h[i].Seq < h[j].Seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(scheduledEvent))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Handler executes one event against the network, scheduling any
// follow-up events through the Scheduler passed to it.
type Handler func(s *Scheduler, ev Event)

// Scheduler owns the pending event queue and the simulated-time
// clock. It is the sole driver of control flow: scheduler -> handler
// -> scheduler, with no suspension points inside a handler.
type Scheduler struct {
	queue          eventHeap
	simulationTime float64
	insertedEvents int64
	dispatch       Handler
}

// NewScheduler creates an empty Scheduler. dispatch is invoked once
// per popped event and is responsible for the Kind type switch.
func NewScheduler(dispatch Handler) *Scheduler {
	s := &Scheduler{dispatch: dispatch}
	heap.Init(&s.queue)
	return s
}

// SetDispatch binds the handler invoked for each popped event. It
// exists to break the construction cycle between Scheduler and
// Network: a Network needs a Scheduler to schedule its initial
// MineTicks, and a Scheduler needs a Network-bound dispatch function.
// Callers build the Scheduler with a nil dispatch, construct the
// Network against it, then bind the Network's own Dispatch method.
func (s *Scheduler) SetDispatch(h Handler) { s.dispatch = h }

// Now returns the simulated time of the most recently executed event.
func (s *Scheduler) Now() float64 { return s.simulationTime }

// Schedule inserts event to fire at Now()+delay. delay must be >= 0.
// seq is assigned as the next monotonically increasing insertion
// number, guaranteeing deterministic tie-breaking against any other
// event scheduled at the same simulated instant.
func (s *Scheduler) Schedule(event Event, delay float64) {
	if delay < 0 {
		panic(fmt.Sprintf("engine: Schedule called with negative delay=%g", delay))
	}
	heap.Push(&s.queue, scheduledEvent{
		Event:    event,
		FireTime: s.simulationTime + delay,
		Seq:      s.insertedEvents,
	})
	s.insertedEvents++
}

// Peek returns the next event to fire without removing it.
func (s *Scheduler) Peek() (Event, bool) {
	if len(s.queue) == 0 {
		return Event{}, false
	}
	return s.queue[0].Event, true
}

// PeekFireTime returns the fire time of the next event, or +Inf if
// the queue is empty.
func (s *Scheduler) PeekFireTime() float64 {
	if len(s.queue) == 0 {
		return math.Inf(1)
	}
	return s.queue[0].FireTime
}

// Run drains the queue, dispatching each event in turn, until the
// queue is empty or the next event's fire time exceeds stopTime.
// Before and After observer hooks bracket every dispatch; a non-nil
// error from any hook stops the loop and is returned to the caller.
func (s *Scheduler) Run(stopTime float64, observers []Observer) error {
	for len(s.queue) > 0 && s.queue[0].FireTime <= stopTime {
		next := heap.Pop(&s.queue).(scheduledEvent)
		if next.FireTime < s.simulationTime {
			panic(fmt.Sprintf("engine: scheduler invariant violated: popped fire_time %g < simulation_time %g", next.FireTime, s.simulationTime))
		}
		s.simulationTime = next.FireTime

		for _, obs := range observers {
			if err := obs.Before(s, next.Event); err != nil {
				return fmt.Errorf("observer before-hook: %w", err)
			}
		}

		s.dispatch(s, next.Event)

		for _, obs := range observers {
			if err := obs.After(s, next.Event); err != nil {
				return fmt.Errorf("observer after-hook: %w", err)
			}
		}
	}
	for _, obs := range observers {
		if err := obs.Finalize(); err != nil {
			return fmt.Errorf("observer finalize: %w", err)
		}
	}
	return nil
}
