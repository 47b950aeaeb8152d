package balance

import (
	"time"

	"github.com/google/uuid"
)

// Account is the per-employee, per-policy-year balance row. It is created by
// the yearly rollover job, mutated only through Apply/Reverse, and superseded
// (never deleted) by the next year's row.
type Account struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_balance_accounts_employee_year"`
	Year       int       `gorm:"not null;uniqueIndex:idx_balance_accounts_employee_year"`

	EntitlementDays        int `gorm:"type:int;not null;default:0"`
	UsedDays               int `gorm:"type:int;not null;default:0"`
	CarriedForwardDays     int `gorm:"type:int;not null;default:0"`
	CarriedForwardUsedDays int `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	EntryDirectionApply   = "APPLY"
	EntryDirectionReverse = "REVERSE"
)

// Entry records one applied (or reversed) consumption, keyed uniquely by
// (request_id, direction) so a retried approve can never decrement twice.
type Entry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_balance_entries_request_direction"`
	Direction  string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_balance_entries_request_direction"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Year       int       `gorm:"not null"`

	CarryForwardDays int `gorm:"type:int;not null"`
	CurrentYearDays  int `gorm:"type:int;not null"`

	CreatedAt time.Time
}

// Consumption is the split of a request's working days across buckets.
type Consumption struct {
	CarryForward int `json:"carry_forward"`
	CurrentYear  int `json:"current_year"`
}

func (c Consumption) Total() int {
	return c.CarryForward + c.CurrentYear
}

// Remaining is what an employee can still take from each bucket.
type Remaining struct {
	CurrentYear  int `json:"current_year"`
	CarryForward int `json:"carry_forward"`
}
