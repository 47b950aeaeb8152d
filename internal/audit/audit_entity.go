package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditLog is the immutable trail of lifecycle transitions, written by the
// consumer from the lifecycle topic rather than inline with the request
// transaction.
type AuditLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	LeaveID     uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_logs_leave"`
	BookingRef  string    `gorm:"type:varchar(20);not null"`
	EventType   string    `gorm:"type:varchar(40);not null"`
	Status      string    `gorm:"type:varchar(20);not null"`
	ActorID     string    `gorm:"type:varchar(64)"`
	RequesterID string    `gorm:"type:varchar(64)"`
	// TraceID carries the originating HTTP request id when one was present.
	TraceID    string          `gorm:"type:varchar(64)"`
	Payload    json.RawMessage `gorm:"type:jsonb"`
	OccurredAt time.Time       `gorm:"not null;index:idx_audit_logs_occurred"`
	CreatedAt  time.Time
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
