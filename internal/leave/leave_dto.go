package leave

import (
	"time"

	"leavedesk/internal/balance"
)

type PlanRequest struct {
	LeaveTypeCode string `json:"leave_type_code" binding:"required"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	Strategy      string `json:"strategy" binding:"required,oneof=SMART CURRENT_ONLY CARRY_ONLY"`
}

type PlanResponse struct {
	WorkingDays int                 `json:"working_days"`
	Consumption balance.Consumption `json:"consumption"`
	Feasible    bool                `json:"feasible"`
	Reason      string              `json:"reason,omitempty"`
	Warnings    []string            `json:"warnings,omitempty"`
}

type CreateLeaveRequest struct {
	LeaveTypeCode string `json:"leave_type_code" binding:"required"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	Strategy      string `json:"strategy" binding:"required,oneof=SMART CURRENT_ONLY CARRY_ONLY"`
	Reason        string `json:"reason"`
}

type DecideLeaveRequest struct {
	Decision string `json:"decision" binding:"required,oneof=APPROVE REJECT"`
	Note     string `json:"note"`
}

type LeaveResponse struct {
	ID            string              `json:"id"`
	BookingRef    string              `json:"booking_ref"`
	RequesterID   string              `json:"requester_id"`
	LeaveTypeCode string              `json:"leave_type_code"`
	StartDate     string              `json:"start_date"`
	EndDate       string              `json:"end_date"`
	WorkingDays   int                 `json:"working_days"`
	Reason        string              `json:"reason,omitempty"`
	Status        string              `json:"status"`
	Year          int                 `json:"year"`
	Consumption   balance.Consumption `json:"consumption"`

	CurrentApproverID *string `json:"current_approver_id,omitempty"`
	AssignedAt        *string `json:"assigned_at,omitempty"`
	SubmittedAt       *string `json:"submitted_at,omitempty"`
	DecidedAt         *string `json:"decided_at,omitempty"`
	DecidedBy         *string `json:"decided_by,omitempty"`
	DecisionNote      *string `json:"decision_note,omitempty"`

	IsEscalated bool    `json:"is_escalated"`
	DueAt       *string `json:"due_at,omitempty"`
}

func mapToResponse(l LeaveRequest, esc EscalationStatus) LeaveResponse {
	resp := LeaveResponse{
		ID:            l.ID.String(),
		BookingRef:    l.BookingRef,
		RequesterID:   l.RequesterID.String(),
		LeaveTypeCode: l.LeaveTypeCode,
		StartDate:     l.StartDate.Format("2006-01-02"),
		EndDate:       l.EndDate.Format("2006-01-02"),
		WorkingDays:   l.WorkingDays,
		Reason:        l.Reason,
		Status:        string(l.Status),
		Year:          l.Year,
		Consumption:   l.Consumption(),
		DecisionNote:  l.DecisionNote,
		IsEscalated:   esc.IsEscalated,
	}
	if l.CurrentApproverID != nil {
		v := l.CurrentApproverID.String()
		resp.CurrentApproverID = &v
	}
	if l.AssignedAt != nil {
		v := l.AssignedAt.Format(time.RFC3339)
		resp.AssignedAt = &v
	}
	if l.SubmittedAt != nil {
		v := l.SubmittedAt.Format(time.RFC3339)
		resp.SubmittedAt = &v
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	if l.DecidedBy != nil {
		v := l.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if !esc.DueAt.IsZero() {
		v := esc.DueAt.Format(time.RFC3339)
		resp.DueAt = &v
	}
	return resp
}
