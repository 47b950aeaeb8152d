package audit

import "time"

type AuditLogResponse struct {
	ID          string `json:"id"`
	LeaveID     string `json:"leave_id"`
	BookingRef  string `json:"booking_ref"`
	EventType   string `json:"event_type"`
	Status      string `json:"status"`
	ActorID     string `json:"actor_id,omitempty"`
	RequesterID string `json:"requester_id,omitempty"`
	TraceID     string `json:"trace_id,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}

func mapToResponses(logs []AuditLog) []AuditLogResponse {
	resp := make([]AuditLogResponse, len(logs))
	for i, l := range logs {
		resp[i] = AuditLogResponse{
			ID:          l.ID.String(),
			LeaveID:     l.LeaveID.String(),
			BookingRef:  l.BookingRef,
			EventType:   l.EventType,
			Status:      l.Status,
			ActorID:     l.ActorID,
			RequesterID: l.RequesterID,
			TraceID:     l.TraceID,
			OccurredAt:  l.OccurredAt.Format(time.RFC3339),
		}
	}
	return resp
}
