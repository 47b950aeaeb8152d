package events

import "time"

const (
	LeaveLifecycleTopic = "leave.request.lifecycle.v1"
	LeaveEscalatedTopic = "leave.request.escalated.v1"
)

// LeaveLifecycleEvent covers submitted / decided / cancelled transitions.
type LeaveLifecycleEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"` // tracing id, not the leave id
	LeaveID     string    `json:"leave_id"`
	BookingRef  string    `json:"booking_ref"`
	RequesterID string    `json:"requester_id"`
	ActorID     string    `json:"actor_id"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// LeaveEscalatedEvent is emitted by the escalation sweep for overdue pending
// approvals. Advisory only: nothing in the request row changes.
type LeaveEscalatedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	BookingRef string    `json:"booking_ref"`
	ApproverID string    `json:"approver_id"`
	DueAt      time.Time `json:"due_at"`
	OccurredAt time.Time `json:"occurred_at"`
}
