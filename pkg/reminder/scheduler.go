// Package reminder schedules one-shot notifications for calendar events.
//
// Every call to Schedule creates a ticket that starts Pending and makes exactly
// one transition to a terminal state: Fired when its timer elapses, or
// Cancelled when retracted first. The ticket's timer is released after the
// transition on every path, including a deliver callback that errors or panics.
package reminder

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/borgmon/remindcal/pkg/models"
	"github.com/google/uuid"
)

// DefaultMinimumDelay is the smallest delay a ticket timer is armed for,
// so overdue reminders still fire asynchronously.
const DefaultMinimumDelay = time.Millisecond

// DefaultRetention is how many terminal tickets stay queryable by ID
const DefaultRetention = 256

// DeliverFunc surfaces a reminder to the user
type DeliverFunc func(title, description string) error

// Ticket is a read-only view of a scheduled reminder
type Ticket struct {
	ID       string
	Snapshot models.Snapshot
	FireAt   time.Time
	State    models.TicketState

	done <-chan struct{}
}

// Done is closed once the ticket reached a terminal state and released its resources
func (t Ticket) Done() <-chan struct{} {
	return t.done
}

type ticket struct {
	id       string
	snapshot models.Snapshot
	fireAt   time.Time
	state    models.TicketState
	deliver  DeliverFunc
	timer    Timer
	done     chan struct{}
}

func (t *ticket) view() Ticket {
	return Ticket{
		ID:       t.id,
		Snapshot: t.snapshot,
		FireAt:   t.fireAt,
		State:    t.state,
		done:     t.done,
	}
}

// Scheduler arms and tracks reminder tickets
type Scheduler struct {
	clock     Clock
	minDelay  time.Duration
	onRelease func(Ticket)

	mu sync.Mutex

	// Map of ticket ID to live (Pending) ticket
	pending map[string]*ticket

	// Last retention terminal tickets by ID, oldest first in finishedOrder
	finished      map[string]Ticket
	finishedOrder []string
	retention     int

	inflight sync.WaitGroup
	stopped  bool
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithMinimumDelay sets the floor for timer delays. Values below 1ms are raised to 1ms.
func WithMinimumDelay(d time.Duration) Option {
	return func(s *Scheduler) {
		if d < DefaultMinimumDelay {
			d = DefaultMinimumDelay
		}
		s.minDelay = d
	}
}

// WithRetention sets how many terminal tickets Ticket and State still report.
// Older ones are forgotten and look unknown. Values below 1 are raised to 1.
func WithRetention(n int) Option {
	return func(s *Scheduler) {
		if n < 1 {
			n = 1
		}
		s.retention = n
	}
}

// WithReleaseHook registers a callback invoked after a ticket releases its resources
func WithReleaseHook(hook func(Ticket)) Option {
	return func(s *Scheduler) {
		s.onRelease = hook
	}
}

// New creates a Scheduler using clock for time and timers
func New(clock Clock, opts ...Option) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	s := &Scheduler{
		clock:     clock,
		minDelay:  DefaultMinimumDelay,
		pending:   make(map[string]*ticket),
		finished:  make(map[string]Ticket),
		retention: DefaultRetention,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule arms a reminder for fireAt. A past fireAt fires after the minimum delay.
func (s *Scheduler) Schedule(snap models.Snapshot, fireAt time.Time, deliver DeliverFunc) Ticket {
	t := &ticket{
		id:       uuid.NewString(),
		snapshot: snap,
		fireAt:   fireAt,
		state:    models.TicketPending,
		deliver:  deliver,
		done:     make(chan struct{}),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		// Scheduler is shut down, the ticket never arms
		t.state = models.TicketCancelled
		close(t.done)
		s.retainLocked(t.view())
		return t.view()
	}

	delay := fireAt.Sub(s.clock.Now())
	if delay < s.minDelay {
		delay = s.minDelay
	}

	s.pending[t.id] = t
	// The timer goroutine blocks on s.mu until Schedule returns
	t.timer = s.clock.AfterFunc(delay, func() { s.fire(t) })

	log.Printf("[REMINDER] Scheduled %s for event %d (\"%s\") at %s",
		t.id, snap.EventID, snap.Title, fireAt.Format("2006-01-02 15:04:05"))

	return t.view()
}

// fire delivers a ticket if it is still pending
func (s *Scheduler) fire(t *ticket) {
	s.mu.Lock()
	if t.state != models.TicketPending {
		s.mu.Unlock()
		return
	}
	t.state = models.TicketFired
	s.inflight.Add(1)
	s.mu.Unlock()

	defer s.inflight.Done()
	defer s.release(t)

	s.deliver(t)
}

// deliver invokes the callback, containing errors and panics
func (s *Scheduler) deliver(t *ticket) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[REMINDER] Delivery of %s panicked: %v", t.id, r)
		}
	}()

	if t.deliver == nil {
		return
	}
	if err := t.deliver(t.snapshot.Title, t.snapshot.Description); err != nil {
		log.Printf("[REMINDER] Delivery of %s failed: %v", t.id, err)
		return
	}
	log.Printf("[REMINDER] Delivered %s (\"%s\")", t.id, t.snapshot.Title)
}

// release stops the timer and drops the ticket from the live set
func (s *Scheduler) release(t *ticket) {
	t.timer.Stop()

	s.mu.Lock()
	delete(s.pending, t.id)
	view := t.view()
	s.retainLocked(view)
	s.mu.Unlock()

	close(t.done)

	if s.onRelease != nil {
		s.onRelease(view)
	}
}

// retainLocked records a terminal ticket, evicting the oldest past retention. Caller holds s.mu.
func (s *Scheduler) retainLocked(view Ticket) {
	s.finished[view.ID] = view
	s.finishedOrder = append(s.finishedOrder, view.ID)
	for len(s.finishedOrder) > s.retention {
		delete(s.finished, s.finishedOrder[0])
		s.finishedOrder = s.finishedOrder[1:]
	}
}

// cancelLocked moves a pending ticket to Cancelled. Caller holds s.mu.
func (s *Scheduler) cancelLocked(t *ticket) bool {
	if t.state != models.TicketPending {
		return false
	}
	t.state = models.TicketCancelled
	return true
}

// Cancel retracts a pending ticket. Cancelling a fired, cancelled or unknown
// ticket is a no-op and returns false.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	t, ok := s.pending[id]
	if !ok || !s.cancelLocked(t) {
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()

	s.release(t)
	log.Printf("[REMINDER] Cancelled %s", id)
	return true
}

// CancelEvent retracts every pending ticket for the given event and returns how many were cancelled
func (s *Scheduler) CancelEvent(eventID int64) int {
	s.mu.Lock()
	var cancelled []*ticket
	for _, t := range s.pending {
		if t.snapshot.EventID == eventID && s.cancelLocked(t) {
			cancelled = append(cancelled, t)
		}
	}
	s.mu.Unlock()

	for _, t := range cancelled {
		s.release(t)
	}
	if len(cancelled) > 0 {
		log.Printf("[REMINDER] Cancelled %d reminder(s) for event %d", len(cancelled), eventID)
	}
	return len(cancelled)
}

// Ticket returns the current view of a ticket. Terminal tickets are reported
// with their snapshot and closed Done channel until they fall out of retention.
func (s *Scheduler) Ticket(id string) (Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.pending[id]; ok {
		return t.view(), true
	}
	if view, ok := s.finished[id]; ok {
		return view, true
	}
	return Ticket{}, false
}

// State returns the state of a ticket, false once it is unknown or evicted
func (s *Scheduler) State(id string) (models.TicketState, bool) {
	t, ok := s.Ticket(id)
	return t.State, ok
}

// Pending returns all pending tickets sorted by fire time
func (s *Scheduler) Pending() []Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Ticket, 0, len(s.pending))
	for _, t := range s.pending {
		if t.state == models.TicketPending {
			result = append(result, t.view())
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].FireAt.Before(result[j].FireAt)
	})
	return result
}

// Stop cancels every pending ticket and waits for in-flight deliveries to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	var cancelled []*ticket
	for _, t := range s.pending {
		if s.cancelLocked(t) {
			cancelled = append(cancelled, t)
		}
	}
	s.mu.Unlock()

	for _, t := range cancelled {
		s.release(t)
	}
	s.inflight.Wait()
	log.Printf("[REMINDER] Scheduler stopped, %d pending reminder(s) cancelled", len(cancelled))
}
