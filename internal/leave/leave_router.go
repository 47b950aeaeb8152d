package leave

import (
	"time"

	"leavedesk/internal/employee"
	leaveerrors "leavedesk/internal/leave/errors"
	"leavedesk/internal/orgchart"

	"github.com/google/uuid"
)

// The router is pure: given the requester's role and approval chain it
// computes the next status and approver. The service layer owns loading,
// persistence and the compare-and-swap.

// Assignment is the result of routing a request to its next approver.
type Assignment struct {
	Status     Status
	ApproverID uuid.UUID
}

// RouteSubmit resolves the first approver on submission. Staff go to their
// line manager; a manager booking their own leave goes straight to the
// general manager. A nil resolved slot is a hard configuration error, not an
// escalation case.
func RouteSubmit(requesterRole string, chain orgchart.ApprovalChain) (Assignment, error) {
	switch requesterRole {
	case employee.RoleLineManager, employee.RoleGeneralManager:
		if chain.GeneralManagerID == nil {
			return Assignment{}, leaveerrors.ErrMissingApprover
		}
		return Assignment{Status: StatusPendingGM, ApproverID: *chain.GeneralManagerID}, nil
	default:
		// staff and any unrecognized role take the full chain
		if chain.LineManagerID == nil {
			return Assignment{}, leaveerrors.ErrMissingApprover
		}
		return Assignment{Status: StatusPendingLM, ApproverID: *chain.LineManagerID}, nil
	}
}

// RouteApproval resolves where an APPROVE decision sends the request.
// PENDING_LM advances to the general manager; PENDING_GM is terminal approval
// (the only transition that triggers ledger mutation, in the service layer).
func RouteApproval(current Status, chain orgchart.ApprovalChain) (Status, *uuid.UUID, error) {
	switch current {
	case StatusPendingLM:
		if chain.GeneralManagerID == nil {
			return "", nil, leaveerrors.ErrMissingApprover
		}
		return StatusPendingGM, chain.GeneralManagerID, nil
	case StatusPendingGM:
		return StatusApproved, nil, nil
	default:
		return "", nil, leaveerrors.ErrInvalidStatusTransition
	}
}

// EscalationStatus is the derived SLA view of a pending request. Stored
// status never changes because of time passing.
type EscalationStatus struct {
	IsEscalated bool      `json:"is_escalated"`
	DueAt       time.Time `json:"due_at"`
}

// ComputeEscalation is safe to call from any read path: it never blocks and
// never mutates.
func ComputeEscalation(status Status, assignedAt *time.Time, escalationDays int, now time.Time) EscalationStatus {
	if !status.Pending() || assignedAt == nil || escalationDays <= 0 {
		return EscalationStatus{}
	}
	dueAt := assignedAt.Add(time.Duration(escalationDays) * 24 * time.Hour)
	return EscalationStatus{
		IsEscalated: now.After(dueAt),
		DueAt:       dueAt,
	}
}
