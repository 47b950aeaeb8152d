package policy

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PayCategoryFull   = "FULL"
	PayCategoryHalf   = "HALF"
	PayCategoryUnpaid = "UNPAID"
)

// PolicyYear is the immutable per-year configuration row. Rows are created by
// the admin collaborator before the year starts and never edited mid-year.
type PolicyYear struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Year int       `gorm:"uniqueIndex;not null"`

	CarryForwardLimitDays int       `gorm:"type:int;not null;default:0"`
	CarryForwardExpiry    time.Time `gorm:"type:date;not null"`
	EscalationDays        int       `gorm:"type:int;not null;default:7"`

	// Fallback used when no grade rule matches and the leave type carries no
	// default of its own.
	AnnualEntitlementFallback *int `gorm:"type:int"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GradeEntitlement maps a grade range to annual leave days. Ranges are
// non-overlapping; Position fixes the scan order.
type GradeEntitlement struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Year     int       `gorm:"not null;index:idx_grade_entitlements_year"`
	GradeMin int       `gorm:"type:int;not null"`
	GradeMax int       `gorm:"type:int;not null"`

	AnnualDays int `gorm:"type:int;not null"`
	Position   int `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeaveTypeRule configures one leave type. The core only reads active rows.
type LeaveTypeRule struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code string    `gorm:"type:varchar(30);uniqueIndex;not null"`
	Name string    `gorm:"type:varchar(100);not null"`

	FixedDurationDays *int   `gorm:"type:int"`
	DefaultDays       *int   `gorm:"type:int"`
	PayCategory       string `gorm:"type:varchar(10);not null;default:'FULL'"`

	RequiresReason     bool `gorm:"not null;default:false"`
	RequiresAttachment bool `gorm:"not null;default:false"`
	Active             bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// FixedDayOnly reports whether the type admits no deviation from its fixed
// duration (single fixed-day types such as a birthday leave).
func (r LeaveTypeRule) FixedDayOnly() bool {
	return r.FixedDurationDays != nil && *r.FixedDurationDays == 1
}
