package leave

// Status is the stored lifecycle state of a leave request. ESCALATED is
// deliberately absent: escalation is derived display state, never stored.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPendingLM Status = "PENDING_LM"
	StatusPendingGM Status = "PENDING_GM"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// transitions is the single authoritative table. Terminal states have no
// outgoing edges.
var transitions = map[Status][]Status{
	StatusDraft:     {StatusPendingLM, StatusPendingGM},
	StatusPendingLM: {StatusPendingGM, StatusRejected, StatusCancelled},
	StatusPendingGM: {StatusApproved, StatusRejected, StatusCancelled},
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Pending reports whether the request is waiting on an approver.
func (s Status) Pending() bool {
	return s == StatusPendingLM || s == StatusPendingGM
}

// Terminal reports whether no further transition is legal.
func (s Status) Terminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingLM, StatusPendingGM,
		StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}
