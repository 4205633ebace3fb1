package models

import "time"

// TicketState tracks the lifecycle of a scheduled reminder
type TicketState string

const (
	TicketPending   TicketState = "Pending"   // Timer armed, not yet delivered
	TicketFired     TicketState = "Fired"     // Delivery was attempted
	TicketCancelled TicketState = "Cancelled" // Retracted before delivery
)

// Terminal reports whether no further transition is possible
func (s TicketState) Terminal() bool {
	return s == TicketFired || s == TicketCancelled
}

// Snapshot is the event data captured when a reminder is registered.
// It is a copy, so later edits to the event do not reach the reminder.
type Snapshot struct {
	EventID     int64
	Title       string
	Description string
	OccursAt    time.Time
}
