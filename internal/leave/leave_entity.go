package leave

import (
	"time"

	"leavedesk/internal/balance"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BookingRef string    `gorm:"type:varchar(20);uniqueIndex"`

	RequesterID   uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_requester_dates"`
	LeaveTypeCode string    `gorm:"type:varchar(30);not null"`

	StartDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_requester_dates"`
	EndDate     time.Time `gorm:"type:date;not null;index:idx_leave_requests_requester_dates"`
	WorkingDays int       `gorm:"type:int;not null"`
	Reason      string    `gorm:"type:text"`

	Status Status `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_leave_requests_status"`

	// Policy year the stored consumption plan draws from.
	Year                    int `gorm:"not null"`
	ConsumptionCarryForward int `gorm:"type:int;not null;default:0"`
	ConsumptionCurrentYear  int `gorm:"type:int;not null;default:0"`

	CurrentApproverID *uuid.UUID `gorm:"type:uuid;index:idx_leave_requests_approver"`
	AssignedAt        *time.Time
	SubmittedAt       *time.Time
	DecidedAt         *time.Time
	DecidedBy         *uuid.UUID `gorm:"type:uuid"`
	DecisionNote      *string    `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (l *LeaveRequest) Consumption() balance.Consumption {
	return balance.Consumption{
		CarryForward: l.ConsumptionCarryForward,
		CurrentYear:  l.ConsumptionCurrentYear,
	}
}
