package employee

import (
	"time"

	"github.com/google/uuid"
)

// Role values mirror the identity collaborator's vocabulary.
const (
	RoleStaff          = "staff"
	RoleLineManager    = "line_manager"
	RoleGeneralManager = "general_manager"
	RoleAdmin          = "admin"
)

// Employee is a read-only snapshot of the profile service's row. This service
// never creates or edits employees.
type Employee struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FullName   string     `gorm:"type:varchar(150);not null"`
	Email      string     `gorm:"uniqueIndex"`
	Role       string     `gorm:"type:varchar(30);not null;default:'staff'"`
	Grade      int        `gorm:"type:int;not null;default:1"`
	ContractID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
